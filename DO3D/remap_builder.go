package DO3D

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/notargets/gorad/utils"
)

/*
	The six reflecting face variants and two polar cap variants of the
	table build differ only in which coordinate component the boundary
	flips, which side of the block it sits on, and how ghost cells pair
	with active cells. faceGeom carries exactly that data so one build
	procedure serves all eight.
*/
type faceGeom struct {
	face  FaceID
	axis  int // Face normal axis, 1..3
	outer bool
	polar bool // Cap transform, ghost and active coincide spatially
	flip  [4]float64
}

func faceGeomFor(face FaceID) (geom faceGeom) {
	switch face {
	case InnerX1:
		geom = faceGeom{face: face, axis: 1, flip: [4]float64{1, -1, 1, 1}}
	case OuterX1:
		geom = faceGeom{face: face, axis: 1, outer: true, flip: [4]float64{1, -1, 1, 1}}
	case InnerX2:
		geom = faceGeom{face: face, axis: 2, flip: [4]float64{1, 1, -1, 1}}
	case OuterX2:
		geom = faceGeom{face: face, axis: 2, outer: true, flip: [4]float64{1, 1, -1, 1}}
	case InnerX3:
		geom = faceGeom{face: face, axis: 3, flip: [4]float64{1, 1, 1, -1}}
	case OuterX3:
		geom = faceGeom{face: face, axis: 3, outer: true, flip: [4]float64{1, 1, 1, -1}}
	case PoleNorth:
		geom = faceGeom{face: face, axis: 2, polar: true, flip: [4]float64{1, 1, -1, -1}}
	case PoleSouth:
		geom = faceGeom{face: face, axis: 2, outer: true, polar: true, flip: [4]float64{1, 1, -1, -1}}
	default:
		panic(fmt.Errorf("no face geometry for face = %v", face))
	}
	return
}

// cellPair resolves the ghost cell and its active mirror at ghost depth
// offset d and transverse position (t1, t2). Inner faces pair ghost index
// lo-g+d with active lo+g-1-d, outer faces pair hi+1+d with hi-d; a polar
// cap uses the ghost point itself, the transform acting on direction only.
func (geom faceGeom) cellPair(rb *RadBlock, d, t1, t2 int) (gi, gj, gk, ai, aj, ak int) {
	var (
		lo, hi = rb.interiorBounds(geom.axis)
		gn, an int
	)
	if geom.outer {
		gn = hi + 1 + d
		an = hi - d
	} else {
		gn = lo - rb.NGhost + d
		an = lo + rb.NGhost - 1 - d
	}
	if geom.polar {
		an = gn
	}
	switch geom.axis {
	case 1:
		gi, ai = gn, an
		gk, ak = t1, t1
		gj, aj = t2, t2
	case 2:
		gj, aj = gn, an
		gk, ak = t1, t1
		gi, ai = t2, t2
	default:
		gk, ak = gn, an
		gj, aj = t1, t1
		gi, ai = t2, t2
	}
	return
}

// transverseBounds yields the padded iteration ranges of the two axes
// transverse to the face normal, in (k, j, i) order
func (rb *RadBlock) transverseBounds(axis int) (t1lo, t1hi, t2lo, t2hi int) {
	switch axis {
	case 1:
		t1lo, t1hi = rb.paddedBounds(3)
		t2lo, t2hi = rb.paddedBounds(2)
	case 2:
		t1lo, t1hi = rb.paddedBounds(3)
		t2lo, t2hi = rb.paddedBounds(1)
	default:
		t1lo, t1hi = rb.paddedBounds(2)
		t2lo, t2hi = rb.paddedBounds(1)
	}
	return
}

// checkFrame verifies that the basis and its dual contract to the
// Minkowski metric over the coordinate index
func checkFrame(e, ecov utils.Matrix) (err error) {
	var (
		eta = [4]float64{-1, 1, 1, 1}
	)
	prod := e.Mul(ecov.Transpose())
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			want := 0.
			if a == b {
				want = eta[a]
			}
			if math.Abs(prod.At(a, b)-want) > utils.NODETOL {
				err = fmt.Errorf("tetrad contraction (%d, %d) = %v, expected %v, condition number %.3e: %w",
					a, b, prod.At(a, b), want, e.ConditionNumber(), ErrDegenerateFrame)
				return
			}
		}
	}
	return
}

// NewBoundaryRemap builds the remap tables for every face of rb whose
// boundary kind calls for one, failing fast on the first geometry fault
func NewBoundaryRemap(rb *RadBlock) (br *BoundaryRemap, err error) {
	br = &BoundaryRemap{}
	for _, face := range rb.remapFaces() {
		var rt *RemapTable
		if rt, err = rb.buildRemapTable(faceGeomFor(face)); err != nil {
			br = nil
			return
		}
		br.tables[face] = rt
	}
	return
}

// buildRemapTable runs the parameterized build for one face. The fill has
// no cross iteration dependency, so the flattened (depth, t1, t2) point
// range is partitioned across goroutines, each writing only its own output
// slots against the shared read only grid and direction table.
func (rb *RadBlock) buildRemapTable(geom faceGeom) (rt *RemapTable, err error) {
	var (
		nang                   = rb.Grid.NAng()
		t1lo, t1hi, t2lo, t2hi = rb.transverseBounds(geom.axis)
		n1                     = t1hi - t1lo + 1
		n2                     = t2hi - t2lo + 1
		npts                   = rb.NGhost * n1 * n2
		NP                     = runtime.NumCPU()
		wg                     = sync.WaitGroup{}
	)
	rt = &RemapTable{
		Face:    geom.face,
		T1Lo:    t1lo,
		T2Lo:    t2lo,
		Entries: utils.NewArray4[RemapEntry](nang, rb.NGhost, n1, n2),
	}
	if NP > npts {
		NP = 1
	}
	pm := utils.NewPartitionMap(NP, npts)
	errs := make([]error, NP)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			pMin, pMax := pm.GetBucketRange(np)
			errs[np] = rb.fillRemapRange(rt, geom, pMin, pMax, n1, n2)
		}(np)
	}
	wg.Wait()
	for np := 0; np < NP; np++ {
		if errs[np] != nil {
			return nil, errs[np]
		}
	}
	return
}

// fillRemapRange computes the remap entries for the flattened point range
// [pMin, pMax). For each point and each source bin it carries the cached
// flat frame direction into the ghost point's coordinate frame, applies
// the boundary's component flips, contracts back through the active
// point's dual tetrad, and locates the result on the angular lattice.
func (rb *RadBlock) fillRemapRange(rt *RemapTable, geom faceGeom, pMin, pMax, n1, n2 int) (err error) {
	var (
		ag       = rb.Grid
		nang     = ag.NAng()
		zvD      = ag.Zetav.DataP
		pvD      = ag.Psiv.DataP
		nhD      = rb.Nh.DataP
		eG       = utils.NewMatrix(4, 4)
		ecovG    = utils.NewMatrix(4, 4)
		eA       = utils.NewMatrix(4, 4)
		ecovA    = utils.NewMatrix(4, 4)
		omega    = NewConnection()
		nG, nA   [4]float64
		nhA      [4]float64
		lHi, mHi int
	)
	for p := pMin; p < pMax; p++ {
		var (
			d   = p / (n1 * n2)
			rem = p % (n1 * n2)
			t1  = rem/n2 + rt.T1Lo
			t2  = rem%n2 + rt.T2Lo
		)
		gi, gj, gk, ai, aj, ak := geom.cellPair(rb, d, t1, t2)
		if err = rb.Frames.Frame(rb.Coords.X1V(gi), rb.Coords.X2V(gj), rb.Coords.X3V(gk),
			eG, ecovG, omega); err != nil {
			err = fmt.Errorf("face %v ghost cell (k, j, i) = (%d, %d, %d): %w",
				geom.face, gk, gj, gi, err)
			return
		}
		if err = checkFrame(eG, ecovG); err != nil {
			err = fmt.Errorf("face %v ghost cell (k, j, i) = (%d, %d, %d): %w",
				geom.face, gk, gj, gi, err)
			return
		}
		if err = rb.Frames.Frame(rb.Coords.X1V(ai), rb.Coords.X2V(aj), rb.Coords.X3V(ak),
			eA, ecovA, omega); err != nil {
			err = fmt.Errorf("face %v active cell (k, j, i) = (%d, %d, %d): %w",
				geom.face, ak, aj, ai, err)
			return
		}
		if err = checkFrame(eA, ecovA); err != nil {
			err = fmt.Errorf("face %v active cell (k, j, i) = (%d, %d, %d): %w",
				geom.face, ak, aj, ai, err)
			return
		}
		var (
			eGD    = eG.DataP
			ecovAD = ecovA.DataP
		)
		for lm := 0; lm < nang; lm++ {
			// Flat frame direction into the ghost coordinate frame
			for mu := 0; mu < 4; mu++ {
				var sum float64
				for a := 0; a < 4; a++ {
					sum += eGD[mu+4*a] * nhD[lm+nang*a]
				}
				nG[mu] = sum
			}
			// Geometric action of the boundary on coordinate components
			for mu := 0; mu < 4; mu++ {
				nA[mu] = geom.flip[mu] * nG[mu]
			}
			// Back to a frame direction through the active dual tetrad
			for a := 0; a < 4; a++ {
				var sum float64
				for mu := 0; mu < 4; mu++ {
					sum += ecovAD[mu+4*a] * nA[mu]
				}
				nhA[a] = sum
			}
			nhA[0] *= -1
			if math.Abs(nhA[0]) < utils.NODETOL {
				err = fmt.Errorf("face %v d = %d cell (k, j, i) = (%d, %d, %d) bin %d has zero time component: %w",
					geom.face, d, gk, gj, gi, lm, ErrDegenerateFrame)
				return
			}
			// Recover the lattice angles; the ratio is clamped so rounding
			// cannot push it outside the domain of acos
			ratio := nhA[3] / nhA[0]
			if ratio > 1 {
				ratio = 1
			} else if ratio < -1 {
				ratio = -1
			}
			zetaA := math.Acos(ratio)
			psiA := math.Atan2(nhA[2], nhA[1])
			if psiA < 0 {
				psiA += 2 * math.Pi
			}
			// Bracket on the bin centers, bounded one ghost layer past the
			// interior on each side
			if lHi, err = findBracket(zvD, ag.Zs()-1, ag.Ze()+1, zetaA); err != nil {
				err = fmt.Errorf("face %v d = %d cell (k, j, i) = (%d, %d, %d) bin %d zeta = %v: %w",
					geom.face, d, gk, gj, gi, lm, zetaA, err)
				return
			}
			if mHi, err = findBracket(pvD, ag.Ps()-1, ag.Pe()+1, psiA); err != nil {
				err = fmt.Errorf("face %v d = %d cell (k, j, i) = (%d, %d, %d) bin %d psi = %v: %w",
					geom.face, d, gk, gj, gi, lm, psiA, err)
				return
			}
			// Center to center fractions keep the bilinear weights inside
			// [0, 1] on the cosine spaced latitude axis
			fracL := (zetaA - zvD[lHi-1]) / (zvD[lHi] - zvD[lHi-1])
			fracM := (psiA - pvD[mHi-1]) / (pvD[mHi] - pvD[mHi-1])
			rt.Entries.Set(lm, d, t1-rt.T1Lo, t2-rt.T2Lo, RemapEntry{
				Bins: [4]int{
					ag.AngleInd(lHi-1, mHi-1),
					ag.AngleInd(lHi-1, mHi),
					ag.AngleInd(lHi, mHi-1),
					ag.AngleInd(lHi, mHi),
				},
				Wgts: [4]float64{
					(1 - fracL) * (1 - fracM),
					(1 - fracL) * fracM,
					fracL * (1 - fracM),
					fracL * fracM,
				},
			})
		}
	}
	return
}
