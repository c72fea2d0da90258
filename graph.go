package main

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	chartrender "github.com/go-echarts/go-echarts/v2/render"
	"github.com/kyleleelarson/barchart/chart"
)

//go:embed html/graph.html
var graphPage string

var graphTemplate = template.Must(template.New("chart").
	Funcs(template.FuncMap{
		"safeJS": func(s interface{}) template.JS {
			return template.JS(fmt.Sprint(s))
		},
	}).
	Parse(graphPage))

type embedRender struct {
	c      interface{}
	before []func()
}

func NewEmbedRender(c interface{}, before ...func()) chartrender.Renderer {
	return &embedRender{c: c, before: before}
}

func (r *embedRender) Render(w io.Writer) error {
	for _, fn := range r.before {
		fn()
	}
	return graphTemplate.ExecuteTemplate(w, "chart", r.c)
}

// newGraph builds an interactive echarts page showing f with the same
// layout, domains and colors as the SVG surface.
func newGraph(f chart.Frame, valueMax float64, title string) *charts.Bar {
	labels := make([]string, len(f.Bars))
	items := make([]opts.BarData, len(f.Bars))
	for i, b := range f.Bars {
		labels[i] = b.Label
		items[i] = opts.BarData{
			Name:      b.Label,
			Value:     b.Value,
			ItemStyle: &opts.ItemStyle{Color: b.TargetFill},
		}
	}
	if valueMax <= 0 {
		valueMax = 1
	}

	bar := charts.NewBar()
	bar.Renderer = NewEmbedRender(bar, bar.Validate)

	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle(title),
			Width:     px(f.Width),
			Height:    px(f.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithGridOpts(opts.Grid{
			Left:   px(f.Margins.Left),
			Right:  px(f.Margins.Right),
			Top:    px(f.Margins.Top),
			Bottom: px(f.Margins.Bottom),
		}),
	}
	if f.Orientation == chart.Horizontal {
		// first label at the bottom, as on the SVG surface
		global = append(global,
			charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: 0, Max: valueMax}),
			charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels}),
		)
	} else {
		global = append(global,
			charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: labels}),
			charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: valueMax}),
		)
	}
	bar.SetGlobalOptions(global...)
	bar.AddSeries("values", items)
	return bar
}

func pageTitle(title string) string {
	if title == "" {
		return "barchart"
	}
	return title
}

func px(v float64) string {
	return fmt.Sprintf("%.0fpx", v)
}
