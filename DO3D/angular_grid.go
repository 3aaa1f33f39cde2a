package DO3D

import (
	"math"

	"github.com/notargets/gorad/utils"
)

/*
	The angular grid discretizes the unit sphere of propagation directions
	into nzeta latitude bins by npsi azimuth bins, padded by nghost ghost
	bins on every side. Latitude faces are equally spaced in the cosine so
	that each latitude band subtends equal solid angle; azimuth faces are
	uniform over the 2 pi period.

	Index convention: padded arrays are zero based, the first interior face
	sits at index nghost. Ghost faces beyond the poles are reflections of
	interior faces, ghost faces in azimuth wrap by one period.
*/
type AngularGrid struct {
	NZeta, NPsi int // Interior resolution in latitude / azimuth
	NGhost      int // Angular ghost width on each end
	// Latitude faces and flux weighted bin centers
	Zetaf, Zetav utils.Vector
	// Azimuth faces and bin midpoints
	Psif, Psiv utils.Vector
	// Face to face spacings per bin
	DZetaf, DPsif utils.Vector
}

// Fixed transverse rescale applied when the latitude direction degenerates
// to a single ring, so that the ring represents an isotropically averaged
// direction set
const isoTransverseScale = 0.816496580927726

func NewAngularGrid(nzeta, npsi, nghost int) (ag *AngularGrid) {
	var (
		nzmax  = nzeta + 2*nghost
		npmax  = npsi + 2*nghost
		zetaf  = make([]float64, nzmax+1)
		zetav  = make([]float64, nzmax)
		dzetaf = make([]float64, nzmax)
		psif   = make([]float64, npmax+1)
		psiv   = make([]float64, npmax)
		dpsif  = make([]float64, npmax)
		zs, ze = nghost, nghost + nzeta - 1
		ps, pe = nghost, nghost + npsi - 1
	)
	// Interior latitude faces, equal cosine spacing, poles assigned exactly
	dczeta := -2.0 / float64(nzeta)
	zetaf[zs] = 0
	zetaf[ze+1] = math.Pi
	for l := zs + 1; l <= (nzeta-1)/2+nghost; l++ {
		czeta := 1.0 + float64(l-nghost)*dczeta
		zeta := math.Acos(czeta)
		zetaf[l] = zeta
		zetaf[ze+nghost+1-l] = math.Pi - zeta
	}
	if nzeta%2 == 0 {
		zetaf[nzeta/2+nghost] = 0.5 * math.Pi
	}
	// Ghost faces reflect the interior about each pole so that ghost bins
	// remain valid latitudes
	for l := zs - nghost; l <= zs-1; l++ {
		zetaf[l] = -zetaf[2*nghost-l]
		zetaf[ze+nghost+1-l] = 2*math.Pi - zetaf[nzeta+l]
	}
	for l := 0; l < nzmax; l++ {
		zf1, zf2 := zetaf[l], zetaf[l+1]
		cz1, cz2 := math.Cos(zf1), math.Cos(zf2)
		// Flux weighted center, not the midpoint, preserving the solid
		// angle weighting of the bin
		zetav[l] = (zf2*cz2 - math.Sin(zf2) - zf1*cz1 + math.Sin(zf1)) / (cz2 - cz1)
		dzetaf[l] = zf2 - zf1
	}
	// Azimuth faces, uniform, endpoints assigned exactly
	dpsi := 2 * math.Pi / float64(npsi)
	psif[ps] = 0
	psif[pe+1] = 2 * math.Pi
	for m := ps + 1; m <= pe; m++ {
		psif[m] = float64(m-nghost) * dpsi
	}
	// Ghost faces wrap the period so interpolation is continuous across
	// the seam
	for m := ps - nghost; m <= ps-1; m++ {
		psif[m] = psif[npsi+m] - 2*math.Pi
		psif[pe+nghost+1-m] = psif[2*nghost-m] + 2*math.Pi
	}
	for m := 0; m < npmax; m++ {
		psiv[m] = 0.5 * (psif[m] + psif[m+1])
		dpsif[m] = psif[m+1] - psif[m]
	}
	ag = &AngularGrid{
		NZeta:  nzeta,
		NPsi:   npsi,
		NGhost: nghost,
		Zetaf:  utils.NewVector(nzmax+1, zetaf),
		Zetav:  utils.NewVector(nzmax, zetav),
		Psif:   utils.NewVector(npmax+1, psif),
		Psiv:   utils.NewVector(npmax, psiv),
		DZetaf: utils.NewVector(nzmax, dzetaf),
		DPsif:  utils.NewVector(npmax, dpsif),
	}
	return
}

// First and last interior bin indices on each angular axis
func (ag *AngularGrid) Zs() int { return ag.NGhost }
func (ag *AngularGrid) Ze() int { return ag.NZeta + ag.NGhost - 1 }
func (ag *AngularGrid) Ps() int { return ag.NGhost }
func (ag *AngularGrid) Pe() int { return ag.NPsi + ag.NGhost - 1 }

// NAng is the total padded bin count
func (ag *AngularGrid) NAng() int {
	return (ag.NZeta + 2*ag.NGhost) * (ag.NPsi + 2*ag.NGhost)
}

// AngleInd linearizes a padded (latitude, azimuth) bin pair, a bijection
// onto [0, NAng)
func (ag *AngularGrid) AngleInd(l, m int) int {
	return m + l*(ag.NPsi+2*ag.NGhost)
}

// SolidAngle returns the solid angle subtended by bin (l, m); the interior
// bins close to 4 pi
func (ag *AngularGrid) SolidAngle(l, m int) float64 {
	var (
		zfD = ag.Zetaf.DataP
		dpD = ag.DPsif.DataP
	)
	return (math.Cos(zfD[l]) - math.Cos(zfD[l+1])) * dpD[m]
}

// UnitDirections evaluates the flat frame unit direction at every padded
// bin center, one column per bin:
//
//	nh = (1, sin zeta cos psi, sin zeta sin psi, cos zeta)
//
// With a single latitude ring the two transverse components are rescaled so
// the ring carries the isotropic average of the full sphere.
func (ag *AngularGrid) UnitDirections() (Nh utils.Matrix) {
	var (
		nzmax = ag.NZeta + 2*ag.NGhost
		npmax = ag.NPsi + 2*ag.NGhost
		nang  = ag.NAng()
		zvD   = ag.Zetav.DataP
		pvD   = ag.Psiv.DataP
	)
	Nh = utils.NewMatrix(4, nang)
	data := Nh.DataP
	for l := 0; l < nzmax; l++ {
		sinZ, cosZ := math.Sin(zvD[l]), math.Cos(zvD[l])
		for m := 0; m < npmax; m++ {
			lm := ag.AngleInd(l, m)
			data[lm] = 1
			data[nang+lm] = sinZ * math.Cos(pvD[m])
			data[2*nang+lm] = sinZ * math.Sin(pvD[m])
			data[3*nang+lm] = cosZ
			if ag.NZeta == 1 {
				data[nang+lm] *= isoTransverseScale
				data[2*nang+lm] *= isoTransverseScale
			}
		}
	}
	Nh.SetReadOnly("Nh")
	return
}
