package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/kyleleelarson/barchart/chart"
)

// frameInterval paces the animation loop while a transition runs.
const frameInterval = 16 * time.Millisecond

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a"))
)

// terminalConfig scales a chart config down to terminal cells: one cell is
// one unit and labels are one cell per rune.
func terminalConfig(base chart.Config) chart.Config {
	c := base
	c.Margins = chart.Margins{Top: 1, Right: 2, Bottom: 2}
	c.CharWidth = 1
	c.LabelPadding = 2
	c.TickCount = 5
	c.TickSize = 1
	c.TickPadding = 1
	return c
}

// Messages

type frameMsg time.Time

type dataMsg struct {
	data chart.Dataset
}

type errMsg struct {
	err error
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// chartModel is the bubbletea model of the watch command. The renderer is
// mounted on the first window size message.
type chartModel struct {
	r       *chart.Renderer
	source  string
	log     logr.Logger
	now     func() time.Time
	ticking bool
	err     error
}

func newChartModel(r *chart.Renderer, source string, log logr.Logger) *chartModel {
	return &chartModel{r: r, source: source, log: log, now: time.Now}
}

func (m *chartModel) Init() tea.Cmd { return nil }

func (m *chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		// the last row is the status line
		size := chart.Size{Width: float64(msg.Width), Height: float64(msg.Height - 1)}
		var err error
		if m.r.Mounted() {
			err = m.r.Resize(size)
		} else {
			err = m.r.Mount(size, nil)
		}
		m.setErr(err)
		return m, m.animate()

	case dataMsg:
		m.setErr(m.r.SetData(msg.data))
		return m, m.animate()

	case errMsg:
		m.setErr(msg.err)
		return m, nil

	case frameMsg:
		m.ticking = false
		return m, m.animate()
	}
	return m, nil
}

func (m *chartModel) setErr(err error) {
	m.err = err
	if err != nil {
		m.log.Error(err, "chart update failed", "source", m.source)
	}
}

// animate schedules the next frame while anything is still moving.
func (m *chartModel) animate() tea.Cmd {
	if m.ticking || !m.r.Mounted() || !m.r.Animating(m.now()) {
		return nil
	}
	m.ticking = true
	return frameTick()
}

func (m *chartModel) View() string {
	if !m.r.Mounted() {
		return "waiting for terminal size..."
	}
	f := m.r.Frame(m.now())
	status := statusStyle.Render(fmt.Sprintf("%s  %d bars  q to quit", m.source, len(f.Bars)))
	if m.err != nil {
		status = errorStyle.Render(m.err.Error())
	}
	return drawFrame(f) + "\n" + status
}

// Eighth blocks for partial cells, indexed by eighths filled.
var (
	rightEighths = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}
	upperEighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
)

type cell struct {
	r     rune
	color string
}

// canvas is a grid of terminal cells.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		c.cells[y] = make([]cell, w)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, color string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, color: color}
}

func (c *canvas) text(x, y int, s string, color string) {
	for _, r := range s {
		c.set(x, y, r, color)
		x++
	}
}

// String renders the grid, styling each run of same-colored cells once.
func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		color := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			switch color {
			case "":
				b.WriteString(run.String())
			case "axis":
				b.WriteString(axisStyle.Render(run.String()))
			default:
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.color != color {
				flush()
				color = cl.color
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

// drawFrame draws f with one cell per unit.
func drawFrame(f chart.Frame) string {
	c := newCanvas(int(f.Width), int(f.Height))
	left, top := f.Margins.Left, f.Margins.Top

	for _, bar := range f.Bars {
		r := bar.Rect
		r.X += left
		r.Y += top
		if f.Orientation == chart.Horizontal {
			drawHorizontalBar(c, r, bar.Fill)
		} else {
			drawVerticalBar(c, r, bar.Fill)
		}
	}
	drawAxis(c, f.XAxis)
	drawAxis(c, f.YAxis)
	return c.String()
}

// drawHorizontalBar fills whole rows, ending in a partial cell.
func drawHorizontalBar(c *canvas, r chart.Rect, color string) {
	y0, y1 := int(math.Round(r.Y)), int(math.Round(r.Y+r.Height))
	if y1 == y0 && r.Height > 0 {
		y1 = y0 + 1
	}
	x0 := int(math.Floor(r.X))
	cells := r.X + r.Width - float64(x0)
	full := int(cells)
	part := int(math.Round((cells - float64(full)) * 8))
	for y := y0; y < y1; y++ {
		for x := 0; x < full; x++ {
			c.set(x0+x, y, '█', color)
		}
		if part > 0 {
			c.set(x0+full, y, rightEighths[part], color)
		}
	}
}

// drawVerticalBar fills whole columns upward from the baseline, topped by a
// partial cell.
func drawVerticalBar(c *canvas, r chart.Rect, color string) {
	x0, x1 := int(math.Round(r.X)), int(math.Round(r.X+r.Width))
	if x1 == x0 && r.Width > 0 {
		x1 = x0 + 1
	}
	base := int(math.Round(r.Y + r.Height))
	full := int(r.Height)
	part := int(math.Round((r.Height - float64(full)) * 8))
	for x := x0; x < x1; x++ {
		for y := 1; y <= full; y++ {
			c.set(x, base-y, '█', color)
		}
		if part > 0 {
			c.set(x, base-full-1, upperEighths[part], color)
		}
	}
}

// drawAxis draws the domain line and the labels of visible ticks.
func drawAxis(c *canvas, a chart.AxisFrame) {
	x, y := int(math.Round(a.X)), int(math.Round(a.Y))
	lo, hi := math.Min(a.Range[0], a.Range[1]), math.Max(a.Range[0], a.Range[1])
	switch a.Orient {
	case chart.AxisBottom:
		for i := int(lo); i <= int(hi); i++ {
			c.set(x+i, y, '─', "axis")
		}
		for _, t := range a.Ticks {
			if t.Opacity < 0.5 {
				continue
			}
			tx := x + int(math.Round(t.Pos))
			c.set(tx, y, '┬', "axis")
			n := len([]rune(t.Label))
			c.text(tx-n/2, y+1, t.Label, "axis")
		}
	case chart.AxisLeft:
		for i := int(lo); i <= int(hi); i++ {
			c.set(x-1, y+i, '│', "axis")
		}
		for _, t := range a.Ticks {
			if t.Opacity < 0.5 {
				continue
			}
			ty := y + int(math.Round(t.Pos))
			c.set(x-1, ty, '┤', "axis")
			n := len([]rune(t.Label))
			c.text(x-1-int(a.TickPadding)-n, ty, t.Label, "axis")
		}
	}
}
