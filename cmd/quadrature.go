/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/notargets/gorad/DO3D"
	"github.com/notargets/gorad/utils"

	"github.com/spf13/cobra"
)

type ModelQuadrature struct {
	NZeta, NPsi int
	NGhost      int
	Graph       bool
}

// QuadratureCmd represents the quadrature command
var QuadratureCmd = &cobra.Command{
	Use:   "quadrature",
	Short: "Builds the angular quadrature grid and reports its properties",
	Long: `Builds the (zeta, psi) angular quadrature grid at the requested
resolution, prints the face lattice, the flux weighted bin centers, the
solid angle weights and the unit direction cosines, and checks that the
interior weights close to 4 pi. With -g the padded lattice is drawn with
the bin centers marked.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			mq = &ModelQuadrature{}
		)
		fmt.Println("quadrature called")
		mq.NZeta, _ = cmd.Flags().GetInt("nZeta")
		mq.NPsi, _ = cmd.Flags().GetInt("nPsi")
		mq.NGhost, _ = cmd.Flags().GetInt("ghost")
		mq.Graph, _ = cmd.Flags().GetBool("graph")
		if mq.NZeta < 1 || mq.NPsi < 1 || mq.NGhost < 1 {
			fmt.Printf("unable to build grid: nZeta, nPsi and ghost must all be at least 1\n")
			os.Exit(1)
		}
		if mq.NGhost > mq.NZeta || mq.NGhost > mq.NPsi {
			fmt.Printf("unable to build grid: ghost width %d exceeds the interior resolution %d x %d\n",
				mq.NGhost, mq.NZeta, mq.NPsi)
			os.Exit(1)
		}
		RunQuadrature(mq)
	},
}

func init() {
	rootCmd.AddCommand(QuadratureCmd)
	QuadratureCmd.Flags().IntP("nZeta", "Z", 4, "number of interior latitude bins")
	QuadratureCmd.Flags().IntP("nPsi", "P", 4, "number of interior azimuth bins")
	QuadratureCmd.Flags().IntP("ghost", "G", 2, "angular ghost width on each end")
	QuadratureCmd.Flags().BoolP("graph", "g", false, "display a graph of the angular lattice")
}

func RunQuadrature(mq *ModelQuadrature) {
	var (
		ag = DO3D.NewAngularGrid(mq.NZeta, mq.NPsi, mq.NGhost)
		Nh = ag.UnitDirections()
	)
	fmt.Printf("%d x %d\t\t= interior bins (zeta x psi)\n", ag.NZeta, ag.NPsi)
	fmt.Printf("%8d\t\t= angular ghost width\n", ag.NGhost)
	fmt.Printf("%8d\t\t= padded angle count\n", ag.NAng())
	fmt.Printf("\nLatitude, interior faces marked with *\n")
	fmt.Printf("%4s %12s %12s %12s\n", "l", "zetaf", "zetav", "dzetaf")
	for l := 0; l < len(ag.Zetav.DataP); l++ {
		mark := " "
		if l >= ag.Zs() && l <= ag.Ze() {
			mark = "*"
		}
		fmt.Printf("%4d %12.8f %12.8f %12.8f %s\n",
			l, ag.Zetaf.AtVec(l), ag.Zetav.AtVec(l), ag.DZetaf.AtVec(l), mark)
	}
	fmt.Printf("%4s %12.8f\n", "", ag.Zetaf.AtVec(len(ag.Zetav.DataP)))
	fmt.Printf("\nAzimuth, interior faces marked with *\n")
	fmt.Printf("%4s %12s %12s %12s\n", "m", "psif", "psiv", "dpsif")
	for m := 0; m < len(ag.Psiv.DataP); m++ {
		mark := " "
		if m >= ag.Ps() && m <= ag.Pe() {
			mark = "*"
		}
		fmt.Printf("%4d %12.8f %12.8f %12.8f %s\n",
			m, ag.Psif.AtVec(m), ag.Psiv.AtVec(m), ag.DPsif.AtVec(m), mark)
	}
	fmt.Printf("%4s %12.8f\n", "", ag.Psif.AtVec(len(ag.Psiv.DataP)))
	fmt.Printf("\nInterior directions and weights\n")
	fmt.Printf("%6s %4s %4s %10s %10s %10s %10s %12s\n",
		"lm", "l", "m", "n0", "n1", "n2", "n3", "weight")
	var total float64
	for l := ag.Zs(); l <= ag.Ze(); l++ {
		for m := ag.Ps(); m <= ag.Pe(); m++ {
			lm := ag.AngleInd(l, m)
			wgt := ag.SolidAngle(l, m)
			total += wgt
			fmt.Printf("%6d %4d %4d %10.6f %10.6f %10.6f %10.6f %12.8f\n",
				lm, l, m, Nh.At(0, lm), Nh.At(1, lm), Nh.At(2, lm), Nh.At(3, lm), wgt)
		}
	}
	fmt.Printf("\n%12.10f\t= total interior solid angle / 4 pi\n", total/(4.*math.Pi))
	if mq.Graph {
		plotAngularGrid(ag)
	}
}

// plotAngularGrid draws the padded face lattice in the (psi, zeta) plane with
// the interior flux weighted centers marked, then holds the window open
func plotAngularGrid(ag *DO3D.AngularGrid) {
	var (
		lines            = make(map[color.RGBA][]float32)
		zf, pf           = ag.Zetaf.DataP, ag.Psif.DataP
		nzmax, npmax     = len(ag.Zetav.DataP), len(ag.Psiv.DataP)
		zetaLo, zetaHi   = zf[0], zf[nzmax]
		psiLo, psiHi     = pf[0], pf[npmax]
		interior, corner = utils.GetColor(utils.Blue), utils.GetColor(utils.Green)
	)
	for l := 0; l <= nzmax; l++ {
		col := corner
		if l >= ag.Zs() && l <= ag.Ze()+1 {
			col = interior
		}
		utils.AddSegment(psiLo, zf[l], psiHi, zf[l], col, lines)
	}
	for m := 0; m <= npmax; m++ {
		col := corner
		if m >= ag.Ps() && m <= ag.Pe()+1 {
			col = interior
		}
		utils.AddSegment(pf[m], zetaLo, pf[m], zetaHi, col, lines)
	}
	var centers []float32
	for l := ag.Zs(); l <= ag.Ze(); l++ {
		for m := ag.Ps(); m <= ag.Pe(); m++ {
			centers = append(centers, float32(ag.Psiv.AtVec(m)), float32(ag.Zetav.AtVec(l)))
		}
	}
	utils.AddCrossHairs(centers, utils.GetColor(utils.Red), lines)
	utils.PlotLinesAndText(lines, []utils.RenderText{
		{
			Color: utils.GetColor(utils.Black),
			Text:  "angular lattice, psi right, zeta up",
			Pitch: 36,
			X:     float32(psiLo),
			Y:     float32(zetaHi),
		},
	})
}
