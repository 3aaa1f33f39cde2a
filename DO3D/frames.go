package DO3D

import (
	"fmt"
	"math"

	"github.com/notargets/gorad/utils"
)

// Connection holds the Ricci rotation coefficients omega[a, b, c] of a
// local orthonormal frame, antisymmetric in the first index pair. The
// transport source terms consume it downstream; the remap itself does not.
type Connection struct {
	DataP []float64
}

func NewConnection() *Connection {
	return &Connection{DataP: make([]float64, 64)}
}

func (om *Connection) At(a, b, c int) float64 {
	return om.DataP[c+4*(b+4*a)]
}

func (om *Connection) Set(a, b, c int, val float64) {
	om.DataP[c+4*(b+4*a)] = val
}

func (om *Connection) Zero() {
	for i := range om.DataP {
		om.DataP[i] = 0
	}
}

/*
	FrameProvider supplies the local orthonormal basis at a spatial point.

	e[a, mu] holds frame vector a expressed in coordinate components mu;
	ecov is the metric lowered dual, so that contracting a frame row of e
	with a frame row of ecov over the coordinate index yields the Minkowski
	metric diag(-1, 1, 1, 1). Both matrices are 4x4 and overwritten in
	place; omega receives the rotation coefficients.
*/
type FrameProvider interface {
	Frame(x1, x2, x3 float64, e, ecov utils.Matrix, omega *Connection) error
}

func setDiagonal(m utils.Matrix, d0, d1, d2, d3 float64) {
	var (
		data = m.DataP
	)
	for i := range data {
		data[i] = 0
	}
	data[0], data[5], data[10], data[15] = d0, d1, d2, d3
}

// Minkowski is flat space in Cartesian coordinates, the identity tetrad
type Minkowski struct{}

func (Minkowski) Frame(x1, x2, x3 float64, e, ecov utils.Matrix,
	omega *Connection) error {
	setDiagonal(e, 1, 1, 1, 1)
	setDiagonal(ecov, -1, 1, 1, 1)
	omega.Zero()
	return nil
}

// SphericalPolar is flat space in spherical coordinates (r, theta, phi)
type SphericalPolar struct{}

func (SphericalPolar) Frame(r, theta, _ float64, e, ecov utils.Matrix,
	omega *Connection) (err error) {
	var (
		sinTheta = math.Sin(theta)
	)
	if r == 0 || sinTheta == 0 {
		err = fmt.Errorf("spherical frame at r = %v, theta = %v: %w",
			r, theta, ErrDegenerateFrame)
		return
	}
	setDiagonal(e, 1, 1, 1/r, 1/(r*sinTheta))
	setDiagonal(ecov, -1, 1, r, r*sinTheta)
	omega.Zero()
	cotTheta := math.Cos(theta) / sinTheta
	omega.Set(2, 1, 2, 1/r)
	omega.Set(1, 2, 2, -1/r)
	omega.Set(3, 1, 3, 1/r)
	omega.Set(1, 3, 3, -1/r)
	omega.Set(3, 2, 3, cotTheta/r)
	omega.Set(2, 3, 3, -cotTheta/r)
	return
}

// Schwarzschild is the static vacuum geometry of mass M in areal
// coordinates, with lapse f = 1 - 2M/r
type Schwarzschild struct {
	M float64
}

func (s Schwarzschild) Frame(r, theta, _ float64, e, ecov utils.Matrix,
	omega *Connection) (err error) {
	var (
		sinTheta = math.Sin(theta)
	)
	if r <= 2*s.M || sinTheta == 0 {
		err = fmt.Errorf("schwarzschild frame at r = %v, theta = %v (horizon radius %v): %w",
			r, theta, 2*s.M, ErrDegenerateFrame)
		return
	}
	f := 1 - 2*s.M/r
	rootF := math.Sqrt(f)
	setDiagonal(e, 1/rootF, rootF, 1/r, 1/(r*sinTheta))
	setDiagonal(ecov, -rootF, 1/rootF, r, r*sinTheta)
	omega.Zero()
	cotTheta := math.Cos(theta) / sinTheta
	// The radial lapse gradient enters the boost pair; the angular entries
	// pick up the redshifted 1/r scale
	omega.Set(0, 1, 0, s.M/(r*r*rootF))
	omega.Set(1, 0, 0, -s.M/(r*r*rootF))
	omega.Set(2, 1, 2, rootF/r)
	omega.Set(1, 2, 2, -rootF/r)
	omega.Set(3, 1, 3, rootF/r)
	omega.Set(1, 3, 3, -rootF/r)
	omega.Set(3, 2, 3, cotTheta/r)
	omega.Set(2, 3, 3, -cotTheta/r)
	return
}
