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
	"io/ioutil"
	"math"
	"os"

	"github.com/pkg/profile"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gorad/DO3D"
	"github.com/notargets/gorad/rad_parameters"
	"github.com/notargets/gorad/utils"

	"github.com/spf13/cobra"
)

type ModelRemap struct {
	ICFile  string
	Verbose bool
	Profile bool
}

// RemapCmd represents the remap command
var RemapCmd = &cobra.Command{
	Use:   "remap",
	Short: "Builds the boundary remap tables for a radiation block",
	Long: `Builds a radiation block from a YAML description, assembling the
remap table of every reflecting and polar face, and reports per face
diagnostics: table shape, nonzero count of the angular operator and the
worst deviation of the interpolation weights from unity.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("remap called")
		mr := &ModelRemap{}
		if mr.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		mr.Verbose, _ = cmd.Flags().GetBool("verbose")
		mr.Profile, _ = cmd.Flags().GetBool("profile")
		rp := processRemapInput(mr)
		RunRemap(mr, rp)
	},
}

func processRemapInput(mr *ModelRemap) (rp *rad_parameters.RadInputParameters) {
	var (
		err error
	)
	if len(mr.ICFile) == 0 {
		err = fmt.Errorf("must supply an input conditions file (-I, --inputConditionsFile) describing the block")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Reflecting Box"
CoordSystem: cartesian # Can be "spherical" or "schwarzschild"
NZeta: 4
NPsi: 4
AngGhost: 2
NGhost: 2
Nx1: 8
Nx2: 8
Nx3: 8
X1Min: -1.
X1Max: 1.
X2Min: -1.
X2Max: 1.
X3Min: -1.
X3Max: 1.
BCs:
  inner_x1: reflect
  outer_x1: reflect
  inner_x2: reflect
  outer_x2: outflow
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mr.ICFile); err != nil {
		panic(err)
	}
	rp = &rad_parameters.RadInputParameters{}
	if err = rp.Parse(data); err != nil {
		panic(err)
	}
	rp.Print()
	return
}

func init() {
	rootCmd.AddCommand(RemapCmd)
	RemapCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file describing the block:\n\t- angular and spatial resolution\n\t- coordinate system\n\t- boundary kinds per face")
	RemapCmd.Flags().BoolP("verbose", "v", false, "dump the remap entries of the first boundary cell at each depth")
	RemapCmd.Flags().BoolP("profile", "p", false, "write a CPU profile of the table build")
}

func RunRemap(mr *ModelRemap, rp *rad_parameters.RadInputParameters) {
	if mr.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	rb, err := rp.Block()
	if err != nil {
		fmt.Printf("unable to build radiation block: %s\n", err.Error())
		os.Exit(1)
	}
	faces := rb.Remap.Faces()
	fmt.Printf("\n%8d\t\t= remap tables built\n", len(faces))
	for _, face := range faces {
		var rt *DO3D.RemapTable
		if rt, err = rb.Remap.Table(face); err != nil {
			panic(err)
		}
		reportTable(rt)
		if mr.Verbose {
			dumpTable(rb, rt)
		}
	}
	fmt.Printf("%s\n", utils.GetMemUsage())
}

// reportTable sweeps every entry of one face's table, tracking the worst
// deviation of the four interpolation weights from a unit sum, and counts
// the nonzeros of the angular operator at the first boundary cell
func reportTable(rt *DO3D.RemapTable) {
	var (
		nang, nd, n1, n2 = rt.Entries.Dims()
		maxDefect        float64
		nnz              int
	)
	for lm := 0; lm < nang; lm++ {
		for d := 0; d < nd; d++ {
			for t1 := 0; t1 < n1; t1++ {
				for t2 := 0; t2 < n2; t2++ {
					re := rt.At(lm, d, rt.T1Lo+t1, rt.T2Lo+t2)
					sum := re.Wgts[0] + re.Wgts[1] + re.Wgts[2] + re.Wgts[3]
					if defect := math.Abs(sum - 1.); defect > maxDefect {
						maxDefect = defect
					}
				}
			}
		}
	}
	R := rt.AngularOperator(0, rt.T1Lo, rt.T2Lo)
	R.DoNonZero(func(i, j int, v float64) { nnz++ })
	fmt.Printf("%-10s %4d depth x %4d x %4d cells, %5d angles, %7d nonzeros, %12.5e max weight defect\n",
		rt.Face.String(), nd, n1, n2, nang, nnz, maxDefect)
}

// dumpTable prints the four bin / weight pairs of every angle at the first
// transverse boundary cell, one depth layer at a time
func dumpTable(rb *DO3D.RadBlock, rt *DO3D.RemapTable) {
	var (
		nang, nd, _, _ = rt.Entries.Dims()
		npmax          = rb.Grid.NPsi + 2*rb.Grid.NGhost
	)
	R := rt.AngularOperator(0, rt.T1Lo, rt.T2Lo)
	fmt.Printf("angular operator at depth 0:\n%v\n", mat.Formatted(R, mat.Squeeze()))
	for d := 0; d < nd; d++ {
		fmt.Printf("%s depth %d, transverse cell (%d, %d)\n", rt.Face.String(), d, rt.T1Lo, rt.T2Lo)
		for lm := 0; lm < nang; lm++ {
			re := rt.At(lm, d, rt.T1Lo, rt.T2Lo)
			fmt.Printf("%6d (l=%3d m=%3d): ", lm, lm/npmax, lm%npmax)
			for q := 0; q < 4; q++ {
				fmt.Printf("%6d %8.6f  ", re.Bins[q], re.Wgts[q])
			}
			fmt.Printf("\n")
		}
	}
}
