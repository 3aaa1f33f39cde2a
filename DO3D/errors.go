package DO3D

import "errors"

var (
	// ErrConfiguration reports invalid resolution, ghost width, or boundary
	// kind settings for a block
	ErrConfiguration = errors.New("invalid radiation configuration")

	// ErrDegenerateFrame reports a tetrad whose time like normalization
	// vanishes, or a provider failure at the requested point
	ErrDegenerateFrame = errors.New("degenerate local frame")

	// ErrAngleBracketNotFound reports a transformed direction falling outside
	// the searchable angular lattice
	ErrAngleBracketNotFound = errors.New("angle bracket not found")

	// ErrNoRemapTable reports a lookup for a face whose boundary kind built
	// no table
	ErrNoRemapTable = errors.New("no remap table for face")
)
