package utils

import (
	"image/color"
	"math"
	"time"

	"github.com/notargets/avs/assets"
	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

type ColorName uint8

const (
	White ColorName = iota
	Blue
	Red
	Green
	Black
)

func GetColor(name ColorName) (c color.RGBA) {
	switch name {
	case White:
		c = color.RGBA{
			R: 255,
			G: 255,
			B: 255,
			A: 0,
		}
	case Blue:
		c = color.RGBA{
			R: 50,
			G: 0,
			B: 255,
			A: 0,
		}
	case Red:
		c = color.RGBA{
			R: 255,
			G: 0,
			B: 50,
			A: 0,
		}
	case Green:
		c = color.RGBA{
			R: 25,
			G: 255,
			B: 25,
			A: 0,
		}
	case Black:
		c = color.RGBA{
			R: 0,
			G: 0,
			B: 0,
			A: 0,
		}
	}
	return
}

func SleepFor(milliseconds int) {
	time.Sleep(time.Duration(milliseconds) * time.Millisecond)
}

type RenderText struct {
	Color color.RGBA
	Text  string
	Pitch uint32
	X, Y  float32
}

// PlotLinesAndText opens an interactive chart sized to the line extents,
// draws each line group in its color plus the text labels, then blocks to
// keep the window alive
func PlotLinesAndText(lines map[color.RGBA][]float32,
	text []RenderText) {
	var (
		xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
		yMin, yMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	)
	for _, line := range lines {
		xMin, xMax, yMin, yMax = getMinMax(line, xMin, xMax, yMin, yMax)
	}
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	for col, line := range lines {
		ch.AddLine(line, col)
	}
	for _, txt := range text {
		tf := assets.NewTextFormatter("NotoSans",
			"Regular", txt.Pitch,
			txt.Color, true, false)
		ch.Printf(tf, txt.X, txt.Y, "%s", txt.Text)
	}
	for {
	}
}

// AddSegment appends a single segment to the line group drawn with col
func AddSegment(x1, y1, x2, y2 float64, col color.RGBA,
	lines map[color.RGBA][]float32) {
	lines[col] = append(lines[col],
		float32(x1), float32(y1),
		float32(x2), float32(y2),
	)
}

// AddCrossHairs marks each (x, y) pair in xy with a small cross
func AddCrossHairs(xy []float32, col color.RGBA,
	lines map[color.RGBA][]float32) {
	var (
		lenXY = len(xy) / 2
		size  = float32(0.02)
	)
	for i := 0; i < lenXY; i++ {
		lines[col] = append(lines[col],
			xy[2*i]-size, xy[2*i+1],
			xy[2*i]+size, xy[2*i+1],
			xy[2*i], xy[2*i+1]-size,
			xy[2*i], xy[2*i+1]+size,
		)
	}
}

func getMinMax(XY []float32, xi, xa, yi, ya float32) (xMin, xMax, yMin, yMax float32) {
	var (
		x, y  float32
		lenXY = len(XY) / 2
	)
	xMin, xMax, yMin, yMax = xi, xa, yi, ya
	for i := 0; i < lenXY; i++ {
		x, y = XY[i*2+0], XY[i*2+1]
		if x < xMin {
			xMin = x
		}
		if x > xMax {
			xMax = x
		}
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}
	return
}
