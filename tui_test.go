package main

import (
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/kyleleelarson/barchart/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string { return ansiEscape.ReplaceAllString(s, "") }

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTerminalRenderer(o chart.Orientation) (*chart.Renderer, *testClock) {
	clk := &testClock{t: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)}
	r := chart.New(terminalConfig(chart.DefaultConfig()), o, chart.WithClock(clk.now))
	return r, clk
}

func TestDrawFrameHorizontal(t *testing.T) {
	r, _ := newTerminalRenderer(chart.Horizontal)
	require.NoError(t, r.Mount(chart.Size{Width: 40, Height: 12}, chart.Pairs([]string{"A", "B"}, []float64{5, 10})))

	lines := strings.Split(plain(drawFrame(r.Settled())), "\n")
	require.Len(t, lines, 12)

	// A spans 17.5 of 35 cells, its label sits on the band centre row
	assert.True(t, strings.HasPrefix(lines[8], "A ┤"+strings.Repeat("█", 17)+"▌"), lines[8])
	assert.Contains(t, lines[4], "B ┤"+strings.Repeat("█", 35))
	assert.Contains(t, lines[10], "┬")
	assert.Contains(t, lines[11], "10")
}

func TestDrawFrameVertical(t *testing.T) {
	r, _ := newTerminalRenderer(chart.Vertical)
	require.NoError(t, r.Mount(chart.Size{Width: 30, Height: 12}, chart.Pairs([]string{"A", "B"}, []float64{2, 4})))

	f := r.Settled()
	out := plain(drawFrame(f))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 12)

	// B fills all 9 rows of its 10 columns, A four and a half
	assert.Contains(t, lines[int(f.Margins.Top)], "█")
	assert.Equal(t, 130, strings.Count(out, "█"))
	assert.Equal(t, 10, strings.Count(out, "▄"))
	assert.Contains(t, lines[11], "A")
	assert.Contains(t, lines[11], "B")
}

func TestDrawFrameEmpty(t *testing.T) {
	r, _ := newTerminalRenderer(chart.Horizontal)
	require.NoError(t, r.Mount(chart.Size{Width: 20, Height: 6}, nil))

	out := plain(drawFrame(r.Settled()))
	assert.NotContains(t, out, "█")
	assert.Len(t, strings.Split(out, "\n"), 6)
}

func TestDrawPartialCells(t *testing.T) {
	c := newCanvas(4, 3)
	drawHorizontalBar(c, chart.Rect{X: 0, Y: 0, Width: 1.25, Height: 1}, "")
	drawVerticalBar(c, chart.Rect{X: 3, Y: 0.5, Width: 1, Height: 2.5}, "")
	lines := strings.Split(plain(c.String()), "\n")
	assert.Equal(t, "█▎ ▄", lines[0])
	assert.Equal(t, "   █", lines[1])
	assert.Equal(t, "   █", lines[2])
}

func TestChartModel(t *testing.T) {
	r, clk := newTerminalRenderer(chart.Horizontal)
	require.NoError(t, r.SetData(chart.Pairs([]string{"A", "B"}, []float64{5, 10})))

	m := newChartModel(r, "sales.json", logr.Discard())
	m.now = clk.now
	assert.Contains(t, m.View(), "waiting")

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 40, Height: 13})
	require.True(t, r.Mounted())
	assert.NotNil(t, cmd, "entry transition schedules frames")
	assert.True(t, m.ticking)

	// a second trigger while a frame is pending does not stack ticks
	_, cmd = m.Update(dataMsg{data: chart.Pairs([]string{"A", "B"}, []float64{6, 10})})
	assert.Nil(t, cmd)

	clk.t = clk.t.Add(time.Second)
	_, cmd = m.Update(frameMsg(clk.t))
	assert.Nil(t, cmd)
	assert.False(t, m.ticking)

	view := plain(m.View())
	assert.Contains(t, view, "sales.json  2 bars")
	assert.Len(t, strings.Split(view, "\n"), 13)

	_, _ = m.Update(dataMsg{data: chart.Pairs([]string{"A"}, []float64{math.NaN()})})
	require.Error(t, m.err)
	assert.Contains(t, plain(m.View()), m.err.Error())
	assert.Len(t, r.Data(), 2)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
