package DO3D

import (
	"fmt"

	"github.com/notargets/gorad/utils"
)

// FaceID identifies a spatial boundary face or polar cap of a block
type FaceID uint8

const (
	InnerX1 FaceID = iota
	OuterX1
	InnerX2
	OuterX2
	InnerX3
	OuterX3
	PoleNorth
	PoleSouth
	NumFaces
)

func (f FaceID) String() string {
	names := [NumFaces]string{
		"inner_x1", "outer_x1",
		"inner_x2", "outer_x2",
		"inner_x3", "outer_x3",
		"pole_north", "pole_south",
	}
	if f < NumFaces {
		return names[f]
	}
	return "unknown_face"
}

// RemapEntry is the bilinear stencil for one ghost direction: four target
// bins with weights forming a partition of unity
type RemapEntry struct {
	Bins [4]int
	Wgts [4]float64
}

// Blend returns the weighted combination of vals at the four target bins
func (re RemapEntry) Blend(vals []float64) (blended float64) {
	for q := 0; q < 4; q++ {
		blended += re.Wgts[q] * vals[re.Bins[q]]
	}
	return
}

/*
	RemapTable holds the remap stencils for one face, indexed by source
	angle bin, ghost depth offset, and the two transverse cell positions.
	Transverse axes follow the block's (k, j, i) order with the face normal
	axis removed: x1 faces carry (k, j), x2 faces and polar caps (k, i),
	x3 faces (j, i). T1Lo/T2Lo anchor the transverse indices so lookups use
	the block's padded cell indices directly.
*/
type RemapTable struct {
	Face       FaceID
	T1Lo, T2Lo int
	Entries    *utils.Array4[RemapEntry]
}

func (rt *RemapTable) At(lm, d, t1, t2 int) RemapEntry {
	return rt.Entries.At(lm, d, t1-rt.T1Lo, t2-rt.T2Lo)
}

// AngularOperator exports the remap at one ghost point as a sparse
// nang x nang operator, row lm holding that source bin's stencil weights
func (rt *RemapTable) AngularOperator(d, t1, t2 int) utils.CSR {
	var (
		nang = rt.Entries.N0
	)
	R := utils.NewDOK(nang, nang)
	for lm := 0; lm < nang; lm++ {
		re := rt.At(lm, d, t1, t2)
		for q := 0; q < 4; q++ {
			R.Set(lm, re.Bins[q], re.Wgts[q])
		}
	}
	return R.ToCSR()
}

// BoundaryRemap owns the per face remap tables for one block, read only
// after construction
type BoundaryRemap struct {
	tables [NumFaces]*RemapTable
}

// Table returns the remap table for face, or ErrNoRemapTable when that
// boundary kind built none
func (br *BoundaryRemap) Table(face FaceID) (rt *RemapTable, err error) {
	if face < NumFaces {
		rt = br.tables[face]
	}
	if rt == nil {
		err = fmt.Errorf("face %v: %w", face, ErrNoRemapTable)
	}
	return
}

// Faces lists the faces holding tables, in FaceID order
func (br *BoundaryRemap) Faces() (faces []FaceID) {
	for face := FaceID(0); face < NumFaces; face++ {
		if br.tables[face] != nil {
			faces = append(faces, face)
		}
	}
	return
}

// findBracket scans the strictly increasing centers for the first index in
// [lo, hiMax] whose center exceeds target, so that centers[hi-1] and
// centers[hi] bracket it. The scan failing at either end means the target
// lies outside the searchable band.
func findBracket(centers []float64, lo, hiMax int, target float64) (hi int, err error) {
	for hi = lo; hi <= hiMax; hi++ {
		if centers[hi] > target {
			break
		}
	}
	if hi == lo || hi > hiMax {
		err = fmt.Errorf("target %v outside centers [%v, %v]: %w",
			target, centers[lo], centers[hiMax], ErrAngleBracketNotFound)
	}
	return
}
