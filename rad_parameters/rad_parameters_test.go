package rad_parameters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gorad/DO3D"
	"github.com/notargets/gorad/utils"
)

func TestRadInputParameters(t *testing.T) {
	var (
		rp   RadInputParameters
		data = []byte(`
Title: ReflectingBox
CoordSystem: cartesian
NZeta: 4
NPsi: 4
AngGhost: 2
NGhost: 2
Nx1: 4
Nx2: 4
Nx3: 4
X1Min: -1
X1Max: 1
X2Min: -1
X2Max: 1
X3Min: -1
X3Max: 1
BCs:
  inner_x2: reflect
  outer_x2: outflow
`)
	)
	{ // Test parsing binds every field
		assert.NoError(t, rp.Parse(data))
		assert.Equal(t, "ReflectingBox", rp.Title)
		assert.Equal(t, 4, rp.NZeta)
		assert.Equal(t, 2, rp.AngGhost)
		assert.Equal(t, -1.0, rp.X2Min)
		assert.Equal(t, "reflect", rp.BCs["inner_x2"])
	}
	{ // Test resolution into a block configuration
		cfg, err := rp.BlockConfig()
		assert.NoError(t, err)
		assert.Equal(t, utils.BCReflect, cfg.BCs[DO3D.InnerX2])
		assert.Equal(t, utils.BCOutflow, cfg.BCs[DO3D.OuterX2])
		assert.Equal(t, utils.BCNone, cfg.BCs[DO3D.InnerX1])
		assert.Equal(t, 2, cfg.InteriorStart(1))
	}
	{ // Test misspelled names are reported, not defaulted
		bad := rp
		bad.BCs = map[string]string{"inner_x2": "reflcet"}
		_, err := bad.BlockConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown boundary condition name")
		bad.BCs = map[string]string{"inner_q7": "reflect"}
		_, err = bad.BlockConfig()
		assert.True(t, errors.Is(err, DO3D.ErrConfiguration))
	}
	{ // Test frame provider selection
		fp, err := rp.Frames()
		assert.NoError(t, err)
		assert.Equal(t, DO3D.Minkowski{}, fp)
		sch := rp
		sch.CoordSystem = "schwarzschild"
		sch.Mass = 2.5
		fp, err = sch.Frames()
		assert.NoError(t, err)
		assert.Equal(t, DO3D.Schwarzschild{M: 2.5}, fp)
		sch.CoordSystem = "cylindrical"
		_, err = sch.Frames()
		assert.True(t, errors.Is(err, DO3D.ErrConfiguration))
	}
	{ // Test the assembled block carries the requested table
		rb, err := rp.Block()
		assert.NoError(t, err)
		assert.Equal(t, []DO3D.FaceID{DO3D.InnerX2}, rb.Remap.Faces())
		rt, err := rb.Remap.Table(DO3D.InnerX2)
		assert.NoError(t, err)
		assert.Equal(t, DO3D.InnerX2, rt.Face)
	}
	{ // Test an inconsistent input surfaces the block validation
		bad := rp
		bad.AngGhost = 9
		_, err := bad.Block()
		assert.True(t, errors.Is(err, DO3D.ErrConfiguration))
	}
}
