package DO3D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gorad/utils"
)

func TestFindBracket(t *testing.T) {
	centers := []float64{0.5, 1.5, 2.5, 3.5}
	{ // Test interior targets and the strictly greater rule
		hi, err := findBracket(centers, 1, 3, 2.0)
		assert.NoError(t, err)
		assert.Equal(t, 2, hi)
		// A target sitting on a center brackets upward
		hi, err = findBracket(centers, 1, 3, 1.5)
		assert.NoError(t, err)
		assert.Equal(t, 2, hi)
		hi, err = findBracket(centers, 1, 3, 3.4)
		assert.NoError(t, err)
		assert.Equal(t, 3, hi)
	}
	{ // Test targets outside the searchable band are reported
		_, err := findBracket(centers, 1, 3, 1.0)
		assert.True(t, errors.Is(err, ErrAngleBracketNotFound))
		_, err = findBracket(centers, 1, 3, 3.6)
		assert.True(t, errors.Is(err, ErrAngleBracketNotFound))
	}
}

func TestBoundaryRemap(t *testing.T) {
	cfg := BlockConfig{
		NZeta: 4, NPsi: 4, AngGhost: 2,
		NGhost: 2, Nx1: 4, Nx2: 4, Nx3: 4,
	}
	for face := InnerX1; face <= OuterX3; face++ {
		cfg.BCs[face] = utils.BCReflect
	}
	rb, err := cartesianBlock(cfg)
	assert.NoError(t, err)
	var (
		ag   = rb.Grid
		nang = ag.NAng()
	)
	{ // Test every reflecting face built a table, the caps none
		assert.Equal(t, []FaceID{InnerX1, OuterX1, InnerX2, OuterX2,
			InnerX3, OuterX3}, rb.Remap.Faces())
		_, err = rb.Remap.Table(PoleNorth)
		assert.True(t, errors.Is(err, ErrNoRemapTable))
		_, err = rb.Remap.Table(FaceID(200))
		assert.True(t, errors.Is(err, ErrNoRemapTable))
	}
	{ // Test the weights form a partition of unity inside [0, 1] at every
		// ghost point of every face
		for _, face := range rb.Remap.Faces() {
			rt, errT := rb.Remap.Table(face)
			assert.NoError(t, errT)
			for lm := 0; lm < nang; lm++ {
				for d := 0; d < rt.Entries.N1; d++ {
					for i1 := 0; i1 < rt.Entries.N2; i1++ {
						for i2 := 0; i2 < rt.Entries.N3; i2++ {
							re := rt.At(lm, d, rt.T1Lo+i1, rt.T2Lo+i2)
							var sum float64
							for q := 0; q < 4; q++ {
								assert.True(t, re.Wgts[q] >= 0 && re.Wgts[q] <= 1)
								assert.True(t, re.Bins[q] >= 0 && re.Bins[q] < nang)
								sum += re.Wgts[q]
							}
							assert.InDelta(t, 1.0, sum, 1.e-14)
						}
					}
				}
			}
		}
	}
	{ // Test each face maps interior bins onto their mirror images: the
		// x2 wall sends psi = pi/4 to 7 pi/4, x1 to 3 pi/4, x3 flips zeta
		for _, face := range rb.Remap.Faces() {
			rt, _ := rb.Remap.Table(face)
			for l := ag.Zs(); l <= ag.Ze(); l++ {
				for m := ag.Ps(); m <= ag.Pe(); m++ {
					re := rt.At(ag.AngleInd(l, m), 0, rt.T1Lo, rt.T2Lo)
					lM, mM := mirrorBin(ag, face, l, m)
					q := argmaxWgt(re)
					// fmt.Printf("%v (%d,%d) -> bins %v wgts %v\n", face, l, m, re.Bins, re.Wgts)
					assert.Equal(t, ag.AngleInd(lM, mM), re.Bins[q])
					assert.True(t, re.Wgts[q] > 1-1.e-10)
				}
			}
		}
	}
	{ // Test the flat frame tables are homogeneous across ghost points
		rt, _ := rb.Remap.Table(InnerX2)
		for lm := 0; lm < nang; lm++ {
			assert.Equal(t, rt.At(lm, 0, rt.T1Lo, rt.T2Lo),
				rt.At(lm, 1, rt.T1Lo+3, rt.T2Lo+5))
		}
	}
	{ // Test rebuilding reproduces the tables bit for bit
		rb2, err2 := cartesianBlock(cfg)
		assert.NoError(t, err2)
		for _, face := range rb.Remap.Faces() {
			rt1, _ := rb.Remap.Table(face)
			rt2, _ := rb2.Remap.Table(face)
			assert.Equal(t, rt1.Entries.DataP, rt2.Entries.DataP)
		}
	}
	{ // Test the sparse operator export: row stochastic, square
		rt, _ := rb.Remap.Table(OuterX1)
		R := rt.AngularOperator(0, rt.T1Lo, rt.T2Lo)
		nr, nc := R.Dims()
		assert.Equal(t, nang, nr)
		assert.Equal(t, nang, nc)
		rowSums := make([]float64, nang)
		R.DoNonZero(func(i, j int, v float64) {
			assert.True(t, v >= 0 && v <= 1)
			rowSums[i] += v
		})
		for i := 0; i < nang; i++ {
			assert.InDelta(t, 1.0, rowSums[i], 1.e-14)
		}
	}
}

func TestRemapApply(t *testing.T) {
	{ // Test a reflecting wall carries a lit bin into its mirror bin in
		// the ghost cells and nowhere else
		cfg := BlockConfig{
			NZeta: 4, NPsi: 4, AngGhost: 2,
			NGhost: 2, Nx1: 4, Nx2: 4, Nx3: 4,
		}
		cfg.BCs[InnerX2] = utils.BCReflect
		rb, err := cartesianBlock(cfg)
		assert.NoError(t, err)
		var (
			ag  = rb.Grid
			I   = rb.NewRadField()
			src = ag.AngleInd(ag.Zs()+1, ag.Ps())     // zeta band 2, psi = pi/4
			tgt = ag.AngleInd(ag.Zs()+1, ag.Ps()+3)   // same band, psi = 7 pi/4
		)
		for k := rb.Ks; k <= rb.Ke; k++ {
			for j := rb.Js; j <= rb.Je; j++ {
				for i := rb.Is; i <= rb.Ie; i++ {
					I.Set(src, k, j, i, 1.0)
				}
			}
		}
		assert.NoError(t, rb.ApplyFaceRemap(I, InnerX2))
		for k := rb.Ks; k <= rb.Ke; k++ {
			for i := rb.Is; i <= rb.Ie; i++ {
				for d := 0; d < rb.NGhost; d++ {
					gj := rb.Js - 1 - d
					assert.InDelta(t, 1.0, I.At(tgt, k, gj, i), 1.e-10)
					for l := ag.Zs(); l <= ag.Ze(); l++ {
						for m := ag.Ps(); m <= ag.Pe(); m++ {
							if lm := ag.AngleInd(l, m); lm != tgt {
								assert.InDelta(t, 0., I.At(lm, k, gj, i), 1.e-10)
							}
						}
					}
				}
			}
		}
		// The active cells are untouched
		for k := rb.Ks; k <= rb.Ke; k++ {
			for i := rb.Is; i <= rb.Ie; i++ {
				assert.Equal(t, 1.0, I.At(src, k, rb.Js, i))
			}
		}
		// Face kind guards on the apply entry points
		assert.Error(t, rb.ApplyFaceRemap(I, PoleNorth))
		assert.Error(t, rb.ApplyPolarRemap(I, InnerX2))
	}
	{ // Test applying to a face without a table is reported
		cfg := BlockConfig{
			NZeta: 2, NPsi: 2, AngGhost: 1,
			NGhost: 1, Nx1: 2, Nx2: 2, Nx3: 2,
		}
		for face := InnerX1; face <= OuterX3; face++ {
			cfg.BCs[face] = utils.BCOutflow
		}
		rb, err := cartesianBlock(cfg)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(rb.Remap.Faces()))
		I := rb.NewRadField()
		err = rb.ApplyFaceRemap(I, InnerX1)
		assert.True(t, errors.Is(err, ErrNoRemapTable))
	}
	{ // Test the polar caps: one pass permutes the angular rows of the
		// ghost cells in place, a second pass restores them
		cfg := BlockConfig{
			NZeta: 2, NPsi: 4, AngGhost: 1,
			NGhost: 1, Nx1: 1, Nx2: 4, Nx3: 1,
		}
		cfg.BCs[InnerX2] = utils.BCPolar
		cfg.BCs[OuterX2] = utils.BCPolarWedge
		coords := NewUniformCoords(1, 2, 0, math.Pi, 0, 2*math.Pi,
			1, 4, 1, 0, 1, 0)
		rb, err := NewRadBlock(cfg, coords, SphericalPolar{})
		assert.NoError(t, err)
		assert.Equal(t, []FaceID{PoleNorth, PoleSouth}, rb.Remap.Faces())
		assert.Equal(t, 1, rb.NCells1())
		assert.Equal(t, 6, rb.NCells2())
		assert.Equal(t, 1, rb.NCells3())
		var (
			ag   = rb.Grid
			nang = ag.NAng()
			I    = rb.NewRadField()
		)
		for _, pole := range []struct {
			face FaceID
			gj   int
		}{{PoleNorth, rb.Js - 1}, {PoleSouth, rb.Je + 1}} {
			origRow := make([]float64, nang)
			for lm := 0; lm < nang; lm++ {
				I.Set(lm, 0, pole.gj, 0, float64(lm+1))
				origRow[lm] = float64(lm + 1)
			}
			assert.NoError(t, rb.ApplyPolarRemap(I, pole.face))
			// Crossing the axis flips latitude and reverses azimuth
			for l := ag.Zs(); l <= ag.Ze(); l++ {
				for m := ag.Ps(); m <= ag.Pe(); m++ {
					lM, mM := mirrorBin(ag, pole.face, l, m)
					assert.True(t, near(origRow[ag.AngleInd(lM, mM)],
						I.At(ag.AngleInd(l, m), 0, pole.gj, 0)))
				}
			}
			assert.NoError(t, rb.ApplyPolarRemap(I, pole.face))
			for l := ag.Zs(); l <= ag.Ze(); l++ {
				for m := ag.Ps(); m <= ag.Pe(); m++ {
					lm := ag.AngleInd(l, m)
					assert.True(t, near(origRow[lm], I.At(lm, 0, pole.gj, 0)))
				}
			}
		}
		{ // The north cap remap followed by the south cap remap composes to
			// the identity on any angle row
			rtN, _ := rb.Remap.Table(PoleNorth)
			rtS, _ := rb.Remap.Table(PoleSouth)
			Rn := rtN.AngularOperator(0, rtN.T1Lo, rtN.T2Lo)
			Rs := rtS.AngularOperator(0, rtS.T1Lo, rtS.T2Lo)
			row := make([]float64, nang)
			for lm := 0; lm < nang; lm++ {
				row[lm] = float64(lm + 1)
			}
			mid := make([]float64, nang)
			Rn.DoNonZero(func(i, j int, v float64) {
				mid[i] += v * row[j]
			})
			out := make([]float64, nang)
			Rs.DoNonZero(func(i, j int, v float64) {
				out[i] += v * mid[j]
			})
			for l := ag.Zs(); l <= ag.Ze(); l++ {
				for m := ag.Ps(); m <= ag.Pe(); m++ {
					lm := ag.AngleInd(l, m)
					assert.True(t, near(row[lm], out[lm]))
				}
			}
		}
	}
}

func TestBlockValidation(t *testing.T) {
	coords := NewUniformCoords(-1, 1, -1, 1, -1, 1, 2, 2, 2, 1, 1, 1)
	{ // Test inconsistent settings are refused before any build work
		bad := []BlockConfig{
			{NZeta: 0, NPsi: 4, AngGhost: 1, NGhost: 1, Nx1: 2, Nx2: 2, Nx3: 2},
			{NZeta: 2, NPsi: 4, AngGhost: 3, NGhost: 1, Nx1: 2, Nx2: 2, Nx3: 2},
			{NZeta: 2, NPsi: 4, AngGhost: 0, NGhost: 1, Nx1: 2, Nx2: 2, Nx3: 2},
			{NZeta: 2, NPsi: 4, AngGhost: 1, NGhost: 1, Nx1: 2, Nx2: 0, Nx3: 2},
			{NZeta: 2, NPsi: 4, AngGhost: 1, NGhost: -1, Nx1: 2, Nx2: 2, Nx3: 2},
		}
		for _, cfg := range bad {
			_, err := NewRadBlock(cfg, coords, Minkowski{})
			assert.True(t, errors.Is(err, ErrConfiguration))
		}
	}
	{ // Test polar kinds are latitude face only
		cfg := BlockConfig{NZeta: 2, NPsi: 2, AngGhost: 1, NGhost: 1,
			Nx1: 2, Nx2: 2, Nx3: 2}
		cfg.BCs[InnerX1] = utils.BCPolar
		_, err := NewRadBlock(cfg, coords, Minkowski{})
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
	{ // Test a collapsed axis cannot host a reflecting wall
		cfg := BlockConfig{NZeta: 2, NPsi: 2, AngGhost: 1, NGhost: 1,
			Nx1: 2, Nx2: 2, Nx3: 1}
		cfg.BCs[OuterX3] = utils.BCReflect
		_, err := NewRadBlock(cfg, coords, Minkowski{})
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
	{ // Test tables cannot be asked for without spatial ghost cells
		cfg := BlockConfig{NZeta: 2, NPsi: 2, AngGhost: 1, NGhost: 0,
			Nx1: 2, Nx2: 2, Nx3: 2}
		cfg.BCs[InnerX2] = utils.BCReflect
		_, err := NewRadBlock(cfg, coords, Minkowski{})
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
	{ // Test a ghost free block with no remapped boundaries is legal
		cfg := BlockConfig{NZeta: 1, NPsi: 1, AngGhost: 1, NGhost: 0,
			Nx1: 1, Nx2: 1, Nx3: 1}
		rb, err := NewRadBlock(cfg, coords, Minkowski{})
		assert.NoError(t, err)
		assert.Equal(t, 1, rb.NCells1())
		assert.Equal(t, 0, len(rb.Remap.Faces()))
	}
}

func TestDegenerateFrameDetection(t *testing.T) {
	cfg := BlockConfig{
		NZeta: 2, NPsi: 2, AngGhost: 1,
		NGhost: 1, Nx1: 2, Nx2: 1, Nx3: 1,
	}
	cfg.BCs[InnerX1] = utils.BCReflect
	coords := NewUniformCoords(-1, 1, -1, 1, -1, 1, 2, 1, 1, 1, 0, 0)
	{ // Test an unset tetrad fails the contraction check with the cell
		// identified
		rb, err := NewRadBlock(cfg, coords, zeroFrame{})
		assert.True(t, errors.Is(err, ErrDegenerateFrame))
		assert.Contains(t, err.Error(), "ghost cell")
		assert.Nil(t, rb)
	}
	{ // Test a frame that annihilates the time component of a remapped
		// direction is caught before the angle recovery
		rb, err := NewRadBlock(cfg, coords, skewFrame{Alpha: 0.25 * math.Pi})
		assert.True(t, errors.Is(err, ErrDegenerateFrame))
		assert.Contains(t, err.Error(), "zero time component")
		assert.Nil(t, rb)
	}
	{ // Test provider failures at a ghost cell surface through the build
		cfgS := cfg
		coordsS := NewUniformCoords(0.5, 2.5, 0.1, math.Pi-0.1, 0, 2*math.Pi,
			2, 1, 1, 1, 0, 0)
		rb, err := NewRadBlock(cfgS, coordsS, Schwarzschild{M: 1})
		assert.True(t, errors.Is(err, ErrDegenerateFrame))
		assert.Nil(t, rb)
	}
}

// cartesianBlock builds a uniformly gridded Cartesian block on [-1, 1]^3
func cartesianBlock(cfg BlockConfig) (*RadBlock, error) {
	is, _ := interiorRange(cfg.Nx1, cfg.NGhost)
	js, _ := interiorRange(cfg.Nx2, cfg.NGhost)
	ks, _ := interiorRange(cfg.Nx3, cfg.NGhost)
	coords := NewUniformCoords(-1, 1, -1, 1, -1, 1,
		cfg.Nx1, cfg.Nx2, cfg.Nx3, is, js, ks)
	return NewRadBlock(cfg, coords, Minkowski{})
}

// mirrorBin gives the interior bin a boundary's direction flip carries
// bin (l, m) onto
func mirrorBin(ag *AngularGrid, face FaceID, l, m int) (lOut, mOut int) {
	var (
		j     = m - ag.Ps()
		npsi  = ag.NPsi
		lFlip = ag.Zs() + ag.Ze() - l
	)
	lOut = l
	switch face {
	case InnerX1, OuterX1: // psi -> pi - psi
		mOut = ag.Ps() + ((npsi/2-1-j)+npsi)%npsi
	case InnerX2, OuterX2: // psi -> -psi
		mOut = ag.Ps() + npsi - 1 - j
	case InnerX3, OuterX3: // zeta -> pi - zeta
		lOut, mOut = lFlip, m
	default: // polar caps flip both
		lOut = lFlip
		mOut = ag.Ps() + npsi - 1 - j
	}
	return
}

func argmaxWgt(re RemapEntry) (q int) {
	for qq := 1; qq < 4; qq++ {
		if re.Wgts[qq] > re.Wgts[q] {
			q = qq
		}
	}
	return
}

// zeroFrame leaves the tetrad unset, so the contraction check must refuse it
type zeroFrame struct{}

func (zeroFrame) Frame(x1, x2, x3 float64, e, ecov utils.Matrix,
	omega *Connection) error {
	return nil
}

// skewFrame rotates the time axis toward x by alpha on both the basis and
// its dual. The pair still contracts to the Minkowski metric, but for
// directions transverse to x the remapped time component goes as
// cos(2 alpha), vanishing at alpha = pi/4.
type skewFrame struct {
	Alpha float64
}

func (s skewFrame) Frame(x1, x2, x3 float64, e, ecov utils.Matrix,
	omega *Connection) error {
	var (
		c, sn = math.Cos(s.Alpha), math.Sin(s.Alpha)
		rows  = [16]float64{
			c, sn, 0, 0,
			-sn, c, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}
	)
	for i, val := range rows {
		e.DataP[i] = val
		ecov.DataP[i] = val
	}
	for mu := 0; mu < 4; mu++ {
		ecov.DataP[mu] *= -1
	}
	omega.Zero()
	return nil
}
