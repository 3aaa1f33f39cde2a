package rad_parameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/gorad/DO3D"
	"github.com/notargets/gorad/utils"
)

// Parameters obtained from the YAML input file
type RadInputParameters struct {
	Title       string            `yaml:"Title"`
	CoordSystem string            `yaml:"CoordSystem"` // cartesian, spherical or schwarzschild
	Mass        float64           `yaml:"Mass"`        // Schwarzschild mass in geometric units
	NZeta       int               `yaml:"NZeta"`
	NPsi        int               `yaml:"NPsi"`
	AngGhost    int               `yaml:"AngGhost"`
	NGhost      int               `yaml:"NGhost"`
	Nx1         int               `yaml:"Nx1"`
	Nx2         int               `yaml:"Nx2"`
	Nx3         int               `yaml:"Nx3"`
	X1Min       float64           `yaml:"X1Min"`
	X1Max       float64           `yaml:"X1Max"`
	X2Min       float64           `yaml:"X2Min"`
	X2Max       float64           `yaml:"X2Max"`
	X3Min       float64           `yaml:"X3Min"`
	X3Max       float64           `yaml:"X3Max"`
	BCs         map[string]string `yaml:"BCs"` // Key is the face name, value the boundary kind
}

func (rp *RadInputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, rp)
}

func (rp *RadInputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("[%s]\t\t= Coordinate System\n", rp.CoordSystem)
	fmt.Printf("[%d x %d]\t\t= Angular Bins (zeta x psi)\n", rp.NZeta, rp.NPsi)
	fmt.Printf("[%d]\t\t\t\t= Angular Ghost Width\n", rp.AngGhost)
	fmt.Printf("[%d x %d x %d]\t\t= Cells\n", rp.Nx1, rp.Nx2, rp.Nx3)
	fmt.Printf("[%d]\t\t\t\t= Spatial Ghost Width\n", rp.NGhost)
	fmt.Printf("[%8.5f,%8.5f]\t= X1 Extent\n", rp.X1Min, rp.X1Max)
	fmt.Printf("[%8.5f,%8.5f]\t= X2 Extent\n", rp.X2Min, rp.X2Max)
	fmt.Printf("[%8.5f,%8.5f]\t= X3 Extent\n", rp.X3Min, rp.X3Max)
	keys := make([]string, len(rp.BCs))
	i := 0
	for k := range rp.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, rp.BCs[key])
	}
}

// BlockConfig resolves the input set into a block configuration,
// reporting unknown face or boundary kind names rather than defaulting
// them
func (rp *RadInputParameters) BlockConfig() (cfg DO3D.BlockConfig, err error) {
	cfg = DO3D.BlockConfig{
		NZeta: rp.NZeta, NPsi: rp.NPsi, AngGhost: rp.AngGhost,
		NGhost: rp.NGhost, Nx1: rp.Nx1, Nx2: rp.Nx2, Nx3: rp.Nx3,
	}
	for name, kind := range rp.BCs {
		face, ok := faceIndex(name)
		if !ok {
			err = fmt.Errorf("unknown face name \"%s\": %w",
				name, DO3D.ErrConfiguration)
			return
		}
		if cfg.BCs[face], err = utils.ParseBCName(kind); err != nil {
			err = fmt.Errorf("face %s: %w", name, err)
			return
		}
	}
	return
}

func faceIndex(name string) (face DO3D.FaceID, ok bool) {
	for face = DO3D.InnerX1; face <= DO3D.OuterX3; face++ {
		if face.String() == name {
			ok = true
			return
		}
	}
	return
}

// Coords builds the uniform cell center accessor aligned with the padded
// index layout of the block cfg describes
func (rp *RadInputParameters) Coords(cfg DO3D.BlockConfig) DO3D.UniformCoords {
	return DO3D.NewUniformCoords(rp.X1Min, rp.X1Max, rp.X2Min, rp.X2Max,
		rp.X3Min, rp.X3Max, rp.Nx1, rp.Nx2, rp.Nx3,
		cfg.InteriorStart(1), cfg.InteriorStart(2), cfg.InteriorStart(3))
}

// Frames selects the coordinate frame provider named by the input
func (rp *RadInputParameters) Frames() (fp DO3D.FrameProvider, err error) {
	switch rp.CoordSystem {
	case "", "cartesian":
		fp = DO3D.Minkowski{}
	case "spherical":
		fp = DO3D.SphericalPolar{}
	case "schwarzschild":
		fp = DO3D.Schwarzschild{M: rp.Mass}
	default:
		err = fmt.Errorf("unknown coordinate system \"%s\": %w",
			rp.CoordSystem, DO3D.ErrConfiguration)
	}
	return
}

// Block assembles the radiation block the input set describes, boundary
// remap tables included
func (rp *RadInputParameters) Block() (rb *DO3D.RadBlock, err error) {
	var (
		cfg DO3D.BlockConfig
		fp  DO3D.FrameProvider
	)
	if cfg, err = rp.BlockConfig(); err != nil {
		return
	}
	if fp, err = rp.Frames(); err != nil {
		return
	}
	rb, err = DO3D.NewRadBlock(cfg, rp.Coords(cfg), fp)
	return
}
