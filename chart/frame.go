package chart

import "time"

// BarFrame is one bar as drawn in a frame. Rect is the geometry at the
// frame instant and Target where the running transition ends; Delay and
// Remaining describe what is left of that transition.
type BarFrame struct {
	Key        BarKey
	Label      string
	Value      float64
	Index      int
	Rect       Rect
	Target     Rect
	Fill       string
	TargetFill string
	Delay      time.Duration
	Remaining  time.Duration
}

// Animating reports whether the bar is still moving at the frame instant.
func (b BarFrame) Animating() bool { return b.Delay > 0 || b.Remaining > 0 }

// Frame is an immutable snapshot of a chart.
type Frame struct {
	Orientation Orientation
	Width       float64
	Height      float64
	Margins     Margins
	PlotWidth   float64
	PlotHeight  float64
	XAxis       AxisFrame
	YAxis       AxisFrame
	Bars        []BarFrame
}

// Frame snapshots the chart at now.
func (r *Renderer) Frame(now time.Time) Frame {
	f := Frame{
		Orientation: r.orient,
		Width:       r.surface.Width,
		Height:      r.surface.Height,
		Margins:     r.margins,
		PlotWidth:   r.plot.Width,
		PlotHeight:  r.plot.Height,
		XAxis:       r.axisFrame(&r.xAxis, now),
		YAxis:       r.axisFrame(&r.yAxis, now),
		Bars:        make([]BarFrame, len(r.bars)),
	}
	for i, b := range r.bars {
		delay, run := b.rect.remaining(now)
		if fd, fr := b.fill.remaining(now); fd+fr > delay+run {
			delay, run = fd, fr
		}
		f.Bars[i] = BarFrame{
			Key:        b.key,
			Label:      b.datum.Label,
			Value:      b.datum.Value,
			Index:      b.index,
			Rect:       b.rect.at(now, r.ease, lerpRect),
			Target:     b.rect.to,
			Fill:       b.fill.at(now, r.ease, lerpColor),
			TargetFill: b.fill.to,
			Delay:      delay,
			Remaining:  run,
		}
	}
	return f
}

// Current snapshots the chart at the renderer clock's now.
func (r *Renderer) Current() Frame { return r.Frame(r.now()) }

// Settled snapshots the chart as it will look once every transition ends.
func (r *Renderer) Settled() Frame { return r.Frame(r.settle()) }

// Animating reports whether any transition is unfinished at now.
func (r *Renderer) Animating(now time.Time) bool {
	return now.Before(r.settle())
}

func (r *Renderer) settle() time.Time {
	end := later(r.xAxis.settle(), r.yAxis.settle())
	for _, b := range r.bars {
		end = later(end, b.rect.end(), b.fill.end())
	}
	return end
}

func (r *Renderer) axisFrame(a *axis, now time.Time) AxisFrame {
	af := AxisFrame{
		Orient:      a.orient,
		X:           r.margins.Left,
		Y:           r.margins.Top,
		Range:       [2]float64{a.r0, a.r1},
		TickSize:    r.cfg.TickSize,
		TickPadding: r.cfg.TickPadding,
		Ticks:       a.frame(now, r.ease),
	}
	if a.orient == AxisBottom {
		af.Y += r.plot.Height
	}
	return af
}
