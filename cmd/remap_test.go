package cmd

import (
	"testing"

	"github.com/notargets/gorad/rad_parameters"

	"github.com/magiconair/properties/assert"
)

func TestRunRemap(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Polar Wedge
CoordSystem: spherical
NZeta: 2
NPsi: 4
AngGhost: 1
NGhost: 1
Nx1: 1
Nx2: 4
Nx3: 1
X1Min: 1.
X1Max: 2.
X2Min: 0.
X2Max: 3.141592653589793
X3Min: 0.
X3Max: 6.283185307179586
BCs:
  inner_x2: polar
  outer_x2: polar_wedge
`)
	var input rad_parameters.RadInputParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	// Check the cap boundary kinds
	assert.Equal(t, input.BCs["inner_x2"], "polar")
	assert.Equal(t, input.BCs["outer_x2"], "polar_wedge")
	input.Print()
	assert.Equal(t, input.NPsi, 4)
	// The parsed input must build a block with both caps remapped
	rb, err := input.Block()
	if err != nil {
		panic(err)
	}
	assert.Equal(t, len(rb.Remap.Faces()), 2)
}
