package DO3D

// CellCoords maps padded cell indices along each spatial axis to cell
// center coordinates
type CellCoords interface {
	X1V(i int) float64
	X2V(j int) float64
	X3V(k int) float64
}

// UniformCoords is the uniform spacing accessor. Ghost indices extrapolate
// linearly past the domain edges, so a latitude coordinate goes negative
// across the north pole, which the polar remap relies on.
type UniformCoords struct {
	X1Min, X2Min, X3Min float64
	DX1, DX2, DX3       float64
	Is, Js, Ks          int // Padded index of the first interior cell
}

func NewUniformCoords(x1min, x1max, x2min, x2max, x3min, x3max float64,
	nx1, nx2, nx3, is, js, ks int) (u UniformCoords) {
	u = UniformCoords{
		X1Min: x1min, X2Min: x2min, X3Min: x3min,
		DX1: (x1max - x1min) / float64(nx1),
		DX2: (x2max - x2min) / float64(nx2),
		DX3: (x3max - x3min) / float64(nx3),
		Is:  is, Js: js, Ks: ks,
	}
	return
}

func (u UniformCoords) X1V(i int) float64 {
	return u.X1Min + (float64(i-u.Is)+0.5)*u.DX1
}

func (u UniformCoords) X2V(j int) float64 {
	return u.X2Min + (float64(j-u.Js)+0.5)*u.DX2
}

func (u UniformCoords) X3V(k int) float64 {
	return u.X3Min + (float64(k-u.Ks)+0.5)*u.DX3
}
