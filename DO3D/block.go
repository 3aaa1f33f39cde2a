package DO3D

import (
	"fmt"

	"github.com/notargets/gorad/utils"
)

// BlockConfig carries the per block settings the boundary setup needs:
// angular resolution, ghost widths, interior cell counts, and the boundary
// classification of the six spatial faces indexed by FaceID
type BlockConfig struct {
	NZeta, NPsi   int
	AngGhost      int
	NGhost        int
	Nx1, Nx2, Nx3 int
	BCs           [6]utils.BCType
}

func (cfg BlockConfig) validate() (err error) {
	switch {
	case cfg.NZeta < 1 || cfg.NPsi < 1:
		err = fmt.Errorf("angular resolution %d x %d: %w",
			cfg.NZeta, cfg.NPsi, ErrConfiguration)
	case cfg.AngGhost < 1 || cfg.AngGhost > cfg.NZeta || cfg.AngGhost > cfg.NPsi:
		// Ghost bins mirror interior bins, so the ghost width cannot
		// exceed the interior width on either angular axis
		err = fmt.Errorf("angular ghost width %d for %d x %d bins: %w",
			cfg.AngGhost, cfg.NZeta, cfg.NPsi, ErrConfiguration)
	case cfg.Nx1 < 1 || cfg.Nx2 < 1 || cfg.Nx3 < 1:
		err = fmt.Errorf("cell counts %d x %d x %d: %w",
			cfg.Nx1, cfg.Nx2, cfg.Nx3, ErrConfiguration)
	case cfg.NGhost < 0:
		err = fmt.Errorf("spatial ghost width %d: %w", cfg.NGhost, ErrConfiguration)
	}
	if err != nil {
		return
	}
	nxFor := [4]int{0, cfg.Nx1, cfg.Nx2, cfg.Nx3}
	for _, face := range []FaceID{InnerX1, OuterX1, InnerX2, OuterX2, InnerX3, OuterX3} {
		bc := cfg.BCs[face]
		if bc != utils.BCReflect && bc != utils.BCPolar && bc != utils.BCPolarWedge {
			continue
		}
		axis := int(face)/2 + 1
		if bc != utils.BCReflect && axis != 2 {
			err = fmt.Errorf("%v boundary on face %v is not a latitude face: %w",
				bc, face, ErrConfiguration)
			return
		}
		if cfg.NGhost < 1 || nxFor[axis] == 1 {
			err = fmt.Errorf("%v boundary on face %v needs ghost cells on its axis: %w",
				bc, face, ErrConfiguration)
			return
		}
	}
	return
}

/*
	RadBlock assembles the angular quadrature state of one spatial block:
	interior index bounds over zero based padded arrays, the boundary
	classification of its six faces, its coordinate and tetrad providers,
	the angular grid, the cached unit direction table, and the remap store.

	Everything is built once here and read only afterwards; concurrent
	reads during boundary application need no locking.
*/
type RadBlock struct {
	Is, Ie, Js, Je, Ks, Ke int
	NGhost                 int
	BCs                    [6]utils.BCType
	Coords                 CellCoords
	Frames                 FrameProvider
	Grid                   *AngularGrid
	Nh                     utils.Matrix // 4 x nang flat frame directions
	Remap                  *BoundaryRemap
}

func NewRadBlock(cfg BlockConfig, coords CellCoords, frames FrameProvider) (rb *RadBlock, err error) {
	if err = cfg.validate(); err != nil {
		return
	}
	rb = &RadBlock{
		NGhost: cfg.NGhost,
		BCs:    cfg.BCs,
		Coords: coords,
		Frames: frames,
	}
	rb.Is, rb.Ie = interiorRange(cfg.Nx1, cfg.NGhost)
	rb.Js, rb.Je = interiorRange(cfg.Nx2, cfg.NGhost)
	rb.Ks, rb.Ke = interiorRange(cfg.Nx3, cfg.NGhost)
	rb.Grid = NewAngularGrid(cfg.NZeta, cfg.NPsi, cfg.AngGhost)
	rb.Nh = rb.Grid.UnitDirections()
	if rb.Remap, err = NewBoundaryRemap(rb); err != nil {
		rb = nil
	}
	return
}

// Collapsed dimensions carry no spatial ghosts
func interiorRange(nx, nghost int) (lo, hi int) {
	if nx == 1 {
		return 0, 0
	}
	return nghost, nghost + nx - 1
}

// InteriorStart gives the padded index of the first interior cell on an
// axis, matching the block this configuration builds. Coordinate
// accessors anchor on it.
func (cfg BlockConfig) InteriorStart(axis int) int {
	nxFor := [4]int{0, cfg.Nx1, cfg.Nx2, cfg.Nx3}
	lo, _ := interiorRange(nxFor[axis], cfg.NGhost)
	return lo
}

func (rb *RadBlock) interiorBounds(axis int) (lo, hi int) {
	switch axis {
	case 1:
		lo, hi = rb.Is, rb.Ie
	case 2:
		lo, hi = rb.Js, rb.Je
	default:
		lo, hi = rb.Ks, rb.Ke
	}
	return
}

func (rb *RadBlock) paddedBounds(axis int) (lo, hi int) {
	lo, hi = rb.interiorBounds(axis)
	if lo != hi {
		lo, hi = lo-rb.NGhost, hi+rb.NGhost
	}
	return
}

func (rb *RadBlock) NCells1() int { return ncells(rb.Is, rb.Ie, rb.NGhost) }
func (rb *RadBlock) NCells2() int { return ncells(rb.Js, rb.Je, rb.NGhost) }
func (rb *RadBlock) NCells3() int { return ncells(rb.Ks, rb.Ke, rb.NGhost) }

func ncells(lo, hi, nghost int) int {
	if lo == hi {
		return 1
	}
	return hi + nghost + 1
}

// remapFaces lists the faces and caps whose boundary kind calls for a
// remap table: reflecting faces directly, polar kinds as their cap
func (rb *RadBlock) remapFaces() (faces []FaceID) {
	for _, face := range []FaceID{InnerX1, OuterX1, InnerX2, OuterX2, InnerX3, OuterX3} {
		switch rb.BCs[face] {
		case utils.BCReflect:
			faces = append(faces, face)
		case utils.BCPolar, utils.BCPolarWedge:
			if face == InnerX2 {
				faces = append(faces, PoleNorth)
			} else {
				faces = append(faces, PoleSouth)
			}
		}
	}
	return
}

// RadField holds one specific intensity per angle bin per padded cell,
// axis order (bin, k, j, i)
type RadField struct {
	*utils.Array4[float64]
}

func (rb *RadBlock) NewRadField() *RadField {
	return &RadField{utils.NewArray4[float64](rb.Grid.NAng(),
		rb.NCells3(), rb.NCells2(), rb.NCells1())}
}

// ApplyFaceRemap fills the ghost intensities of a reflecting spatial face
// from the mirrored active cells through the face's table
func (rb *RadBlock) ApplyFaceRemap(I *RadField, face FaceID) (err error) {
	if face >= PoleNorth {
		err = fmt.Errorf("face %v is not a spatial face", face)
		return
	}
	return rb.applyRemap(I, face)
}

// ApplyPolarRemap remaps the angular rows of a polar cap's ghost cells in
// place
func (rb *RadBlock) ApplyPolarRemap(I *RadField, face FaceID) (err error) {
	if face != PoleNorth && face != PoleSouth {
		err = fmt.Errorf("face %v is not a polar cap", face)
		return
	}
	return rb.applyRemap(I, face)
}

func (rb *RadBlock) applyRemap(I *RadField, face FaceID) (err error) {
	var (
		rt   *RemapTable
		nang = rb.Grid.NAng()
	)
	if rt, err = rb.Remap.Table(face); err != nil {
		return
	}
	var (
		geom                   = faceGeomFor(face)
		t1lo, t1hi, t2lo, t2hi = rb.transverseBounds(geom.axis)
		vals                   = make([]float64, nang)
	)
	for d := 0; d < rb.NGhost; d++ {
		for t1 := t1lo; t1 <= t1hi; t1++ {
			for t2 := t2lo; t2 <= t2hi; t2++ {
				gi, gj, gk, ai, aj, ak := geom.cellPair(rb, d, t1, t2)
				// Stage the active angle row so an in place polar blend
				// reads pre remap values
				for lm := 0; lm < nang; lm++ {
					vals[lm] = I.At(lm, ak, aj, ai)
				}
				for lm := 0; lm < nang; lm++ {
					I.Set(lm, gk, gj, gi, rt.At(lm, d, t1, t2).Blend(vals))
				}
			}
		}
	}
	return
}
