package utils

import (
	"fmt"
	"strings"
)

// BCType enumerates the boundary classifications a block face can carry in a
// radiation transport run
type BCType uint16

const (
	// BCNone indicates an unclassified face
	BCNone BCType = iota

	// BCBlock is a face shared with a neighboring block, filled by exchange
	BCBlock

	// Physical boundary conditions
	BCReflect  // Reflecting wall, intensities mirrored about the face normal
	BCOutflow  // Zero-gradient extrapolation
	BCVacuum   // No incoming intensity
	BCPeriodic // Periodic wraparound

	// Coordinate-singularity boundaries on the latitude axis
	BCPolar      // Polar axis crossing, azimuth advances by pi
	BCPolarWedge // Polar wedge symmetry about the axis

	// BCUser is an application-supplied boundary function
	BCUser
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:       "None",
		BCBlock:      "Block",
		BCReflect:    "Reflect",
		BCOutflow:    "Outflow",
		BCVacuum:     "Vacuum",
		BCPeriodic:   "Periodic",
		BCPolar:      "Polar",
		BCPolarWedge: "PolarWedge",
		BCUser:       "User",
	}

	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}

// BCNameMap maps input file boundary kind names to BCType
// Keys are lowercase for case-insensitive matching
var BCNameMap = map[string]BCType{
	"none":  BCNone,
	"block": BCBlock,

	// Reflecting variations
	"reflect":    BCReflect,
	"reflecting": BCReflect,
	"mirror":     BCReflect,

	// Open boundaries
	"outflow": BCOutflow,
	"outlet":  BCOutflow,
	"vacuum":  BCVacuum,

	"periodic": BCPeriodic,

	// Latitude singularities
	"polar":       BCPolar,
	"polar_wedge": BCPolarWedge,

	"user": BCUser,
}

// ParseBCName converts a boundary condition name string to BCType
// The matching is case-insensitive and trims whitespace
// Unknown names are reported rather than defaulted, since a misspelled kind
// would otherwise silently drop a boundary table
func ParseBCName(name string) (bc BCType, err error) {
	lowerName := strings.ToLower(strings.TrimSpace(name))

	var ok bool
	if bc, ok = BCNameMap[lowerName]; !ok {
		err = fmt.Errorf("unknown boundary condition name: %q", name)
	}
	return
}
