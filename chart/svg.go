package chart

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"time"
)

// cubicInOutSpline approximates CubicInOut for SMIL animations.
const cubicInOutSpline = "0.65 0 0.35 1"

// WriteSVG draws f as a standalone SVG document. Transitions still running
// in f are emitted as <animate> elements, so a browser plays the rest of
// the animation.
func WriteSVG(w io.Writer, f Frame) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(f.Width), num(f.Height), num(f.Width), num(f.Height))
	b.WriteString("\n")
	fmt.Fprintf(&b, `<defs><clipPath id="plot-clip"><rect width="%s" height="%s"/></clipPath></defs>`,
		num(f.PlotWidth), num(f.PlotHeight))
	b.WriteString("\n")

	fmt.Fprintf(&b, `<g class="bars" transform="translate(%s, %s)" clip-path="url(#plot-clip)">`,
		num(f.Margins.Left), num(f.Margins.Top))
	b.WriteString("\n")
	for _, bar := range f.Bars {
		writeBar(&b, bar)
	}
	b.WriteString("</g>\n")

	writeAxis(&b, f.XAxis, "axis axis-x")
	writeAxis(&b, f.YAxis, "axis axis-y")
	b.WriteString("</svg>\n")

	_, err := w.Write(b.Bytes())
	return err
}

func writeBar(b *bytes.Buffer, bar BarFrame) {
	fmt.Fprintf(b, `<rect class="bar" data-key="%s" data-value="%s" x="%s" y="%s" width="%s" height="%s" style="fill: %s">`,
		html.EscapeString(bar.Key.String()), formatNumber(bar.Value),
		num(bar.Rect.X), num(bar.Rect.Y), num(bar.Rect.Width), num(bar.Rect.Height),
		html.EscapeString(bar.Fill))
	if bar.Animating() {
		animate(b, "x", bar.Rect.X, bar.Target.X, bar.Delay, bar.Remaining)
		animate(b, "y", bar.Rect.Y, bar.Target.Y, bar.Delay, bar.Remaining)
		animate(b, "width", bar.Rect.Width, bar.Target.Width, bar.Delay, bar.Remaining)
		animate(b, "height", bar.Rect.Height, bar.Target.Height, bar.Delay, bar.Remaining)
		if bar.Fill != bar.TargetFill {
			fmt.Fprintf(b, `<animate attributeName="fill" from="%s" to="%s" begin="%s" dur="%s" fill="freeze"/>`,
				html.EscapeString(bar.Fill), html.EscapeString(bar.TargetFill), ms(bar.Delay), ms(bar.Remaining))
		}
	}
	b.WriteString("</rect>\n")
}

func animate(b *bytes.Buffer, attr string, from, to float64, delay, run time.Duration) {
	if num(from) == num(to) || run <= 0 {
		return
	}
	fmt.Fprintf(b, `<animate attributeName="%s" from="%s" to="%s" begin="%s" dur="%s" fill="freeze" calcMode="spline" keyTimes="0;1" keySplines="%s"/>`,
		attr, num(from), num(to), ms(delay), ms(run), cubicInOutSpline)
}

func writeAxis(b *bytes.Buffer, a AxisFrame, class string) {
	fmt.Fprintf(b, `<g class="%s" transform="translate(%s, %s)" fill="none" font-size="10" font-family="sans-serif" text-anchor="%s">`,
		class, num(a.X), num(a.Y), anchor(a.Orient))
	b.WriteString("\n")

	s := a.TickSize
	if a.Orient == AxisBottom {
		fmt.Fprintf(b, `<path class="domain" stroke="currentColor" d="M%s,%sV0H%sV%s"/>`,
			num(a.Range[0]), num(s), num(a.Range[1]), num(s))
	} else {
		fmt.Fprintf(b, `<path class="domain" stroke="currentColor" d="M%s,%sH0V%sH%s"/>`,
			num(-s), num(a.Range[0]), num(a.Range[1]), num(-s))
	}
	b.WriteString("\n")

	for _, t := range a.Ticks {
		if a.Orient == AxisBottom {
			fmt.Fprintf(b, `<g class="tick" opacity="%s" transform="translate(%s)"><line stroke="currentColor" y2="%s"/><text fill="currentColor" y="%s" dy="0.71em">%s</text>`,
				num(t.Opacity), tickOffset(a.Orient, t.Pos), num(s), num(s+a.TickPadding), html.EscapeString(t.Label))
		} else {
			fmt.Fprintf(b, `<g class="tick" opacity="%s" transform="translate(%s)"><line stroke="currentColor" x2="%s"/><text fill="currentColor" x="%s" dy="0.32em">%s</text>`,
				num(t.Opacity), tickOffset(a.Orient, t.Pos), num(-s), num(-(s + a.TickPadding)), html.EscapeString(t.Label))
		}
		if t.Animating() {
			if num(t.Pos) != num(t.Target) {
				fmt.Fprintf(b, `<animateTransform attributeName="transform" type="translate" from="%s" to="%s" begin="%s" dur="%s" fill="freeze" calcMode="spline" keyTimes="0;1" keySplines="%s"/>`,
					tickOffset(a.Orient, t.Pos), tickOffset(a.Orient, t.Target), ms(t.Delay), ms(t.Remaining), cubicInOutSpline)
			}
			animate(b, "opacity", t.Opacity, t.TargetOpacity, t.Delay, t.Remaining)
		}
		b.WriteString("</g>\n")
	}
	b.WriteString("</g>\n")
}

// tickOffset is the translate argument placing a tick at pos.
func tickOffset(o AxisOrient, pos float64) string {
	if o == AxisLeft {
		return "0," + num(pos)
	}
	return num(pos) + ",0"
}

func anchor(o AxisOrient) string {
	if o == AxisLeft {
		return "end"
	}
	return "middle"
}

// num prints v rounded to two decimals without trailing zeros.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ms(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
