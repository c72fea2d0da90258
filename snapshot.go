package main

import (
	"io"
	"math"
	"strings"

	"github.com/kyleleelarson/barchart/chart"
	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var errNoBars = errors.New("chart has no bars")

// writePNG draws the bars of f as a go-chart bar chart. go-chart only
// draws vertical bars, so horizontal charts come out rotated. scale
// multiplies the pixel size.
func writePNG(w io.Writer, f chart.Frame, valueMax float64, title string, scale float64) error {
	if len(f.Bars) == 0 {
		return errNoBars
	}
	if scale <= 0 {
		scale = 1
	}

	bars := make([]gochart.Value, 0, len(f.Bars))
	for _, b := range f.Bars {
		bars = append(bars, gochart.Value{
			Label: b.Label,
			Value: math.Max(b.Value, 0),
			Style: gochart.Style{
				FillColor:   fill(b.TargetFill),
				StrokeColor: fill(b.TargetFill),
				StrokeWidth: 1,
			},
		})
	}

	top := valueMax
	if !(top > 0) {
		top = 1
	}

	graph := gochart.BarChart{
		Title:  title,
		Width:  int(f.Width * scale),
		Height: int(f.Height * scale),
		DPI:    gochart.DefaultDPI * scale,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    int(f.Margins.Top * scale),
				Right:  int(f.Margins.Right * scale),
				Bottom: int(f.Margins.Bottom * scale),
				Left:   int(f.Margins.Left * scale),
			},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
	if bw := int(bandwidth(f) * scale); bw > 0 {
		graph.BarWidth = bw
	}
	return errors.Wrap(graph.Render(gochart.PNG, w), "render png")
}

func fill(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// bandwidth is the thickness of the bars across the category axis.
func bandwidth(f chart.Frame) float64 {
	b := f.Bars[0].Target
	if f.Orientation == chart.Horizontal {
		return b.Height
	}
	return b.Width
}
