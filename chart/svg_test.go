package chart

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSVGSettled(t *testing.T) {
	r, _ := newTestRenderer(t, Horizontal, abc)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, r.Settled()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300"`))
	assert.Equal(t, 3, strings.Count(out, `<rect class="bar"`))
	assert.Contains(t, out, `data-key="B" data-value="7" x="0" y="89" width="345" height="72" style="fill: #0082ca"`)
	assert.Contains(t, out, `<g class="bars" transform="translate(35, 20)" clip-path="url(#plot-clip)">`)
	assert.Contains(t, out, `<g class="axis axis-x" transform="translate(35, 270)"`)
	assert.NotContains(t, out, "<animate")
}

func TestWriteSVGAnimates(t *testing.T) {
	r, clk := newTestRenderer(t, Vertical, abc)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, r.Frame(clk.now())))
	out := buf.String()

	assert.Contains(t, out, `<animate attributeName="height" from="0" to="250" begin="10ms" dur="250ms"`)
	assert.NotContains(t, out, `attributeName="x"`)

	clk.advance(time.Second)
	buf.Reset()
	require.NoError(t, WriteSVG(&buf, r.Frame(clk.now())))
	assert.NotContains(t, buf.String(), "<animate")
}

func TestWriteSVGEscapesLabels(t *testing.T) {
	r, _ := newTestRenderer(t, Horizontal, Dataset{{"<b>&", 1}})

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, r.Settled()))
	assert.Contains(t, buf.String(), "&lt;b&gt;&amp;")
	assert.NotContains(t, buf.String(), "<b>")
}

func TestWriteSVGAnimatesAxisTicks(t *testing.T) {
	r, clk := newTestRenderer(t, Horizontal, abc)
	clk.advance(time.Second)
	require.NoError(t, r.Update(Dataset{{"A", 30}, {"B", 70}, {"C", 20}}))

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, r.Frame(clk.now())))
	out := buf.String()

	// the new 70 tick slides in from where the old scale put it and fades in
	assert.Contains(t, out, `<g class="tick" opacity="0" transform="translate(3450,0)">`)
	assert.Contains(t, out, `>70</text><animateTransform attributeName="transform" type="translate" from="3450,0" to="345,0" begin="0ms" dur="250ms" fill="freeze"`)
	assert.Contains(t, out, `<animate attributeName="opacity" from="0" to="1" begin="0ms" dur="250ms"`)

	// the old 7.0 tick slides to its place on the new scale and fades out
	assert.Contains(t, out, `>7.0</text><animateTransform attributeName="transform" type="translate" from="345,0" to="34.5,0"`)
	assert.Contains(t, out, `<animate attributeName="opacity" from="1" to="0" begin="0ms" dur="250ms"`)

	// category ticks stay put
	assert.Contains(t, out, `<g class="tick" opacity="1" transform="translate(0,125)"><line stroke="currentColor" x2="-6"/><text fill="currentColor" x="-9" dy="0.32em">B</text></g>`)

	clk.advance(time.Second)
	buf.Reset()
	require.NoError(t, WriteSVG(&buf, r.Frame(clk.now())))
	assert.NotContains(t, buf.String(), "animate")
	assert.NotContains(t, buf.String(), ">7.0<")
}
