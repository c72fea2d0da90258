package chart

import (
	"math"
	"time"
)

// AxisOrient says which side of the plot an axis is drawn on.
type AxisOrient int

const (
	AxisBottom AxisOrient = iota
	AxisLeft
)

func (o AxisOrient) String() string {
	if o == AxisLeft {
		return "left"
	}
	return "bottom"
}

// Tick is one axis tick as drawn in a frame. Pos is along the axis.
// Target and TargetOpacity are where the running transition ends.
type Tick struct {
	Label         string
	Pos           float64
	Opacity       float64
	Target        float64
	TargetOpacity float64
	Delay         time.Duration
	Remaining     time.Duration
}

// Animating reports whether the tick is still moving or fading.
func (t Tick) Animating() bool { return t.Delay > 0 || t.Remaining > 0 }

// AxisFrame is an axis as drawn in a frame. X and Y translate the axis
// group on the surface; Range is the extent of the domain line.
type AxisFrame struct {
	Orient      AxisOrient
	X, Y        float64
	Range       [2]float64
	TickSize    float64
	TickPadding float64
	Ticks       []Tick
}

type tickTarget struct {
	label string
	value float64
	pos   float64
	// from is the position under the previous scale, NaN when unknown.
	from float64
}

type axisTick struct {
	label   string
	value   float64
	pos     motion[float64]
	opacity motion[float64]
	exiting bool
}

type axis struct {
	orient AxisOrient
	r0, r1 float64
	ticks  []*axisTick
}

// set places ticks without animating.
func (a *axis) set(targets []tickTarget) {
	a.ticks = a.ticks[:0]
	for _, t := range targets {
		a.ticks = append(a.ticks, &axisTick{
			label:   t.label,
			value:   t.value,
			pos:     still(t.pos),
			opacity: still(1.0),
		})
	}
}

// transition moves the axis to targets. Persisting ticks slide to their new
// position, entering ticks fade in from where the old scale would have put
// them, exiting ticks slide to position(label, value) when it is known and
// fade out.
func (a *axis) transition(targets []tickTarget, position func(label string, value float64) (float64, bool), now time.Time, d time.Duration, ease Ease) {
	live := a.ticks[:0]
	for _, t := range a.ticks {
		if t.exiting && t.opacity.done(now) {
			continue
		}
		live = append(live, t)
	}
	a.ticks = live

	prev := make([]string, len(a.ticks))
	for i, t := range a.ticks {
		prev[i] = t.label
	}
	next := make([]string, len(targets))
	for i, t := range targets {
		next[i] = t.label
	}
	plan := Reconcile(prev, next)

	out := make([]*axisTick, len(targets), len(targets)+len(plan.Exit))
	for _, p := range plan.Update {
		t, target := a.ticks[p.Prev], targets[p.Next]
		t.value = target.value
		t.exiting = false
		t.pos = retarget(t.pos, now, target.pos, 0, d, ease, lerp)
		t.opacity = retarget(t.opacity, now, 1, 0, d, ease, lerp)
		out[p.Next] = t
	}
	for _, i := range plan.Enter {
		target := targets[i]
		from := target.from
		if math.IsNaN(from) || math.IsInf(from, 0) {
			from = target.pos
		}
		out[i] = &axisTick{
			label:   target.label,
			value:   target.value,
			pos:     motion[float64]{from: from, to: target.pos, start: now, duration: d},
			opacity: motion[float64]{from: 0, to: 1, start: now, duration: d},
		}
	}
	for _, i := range plan.Exit {
		t := a.ticks[i]
		to := t.pos.at(now, ease, lerp)
		if p, ok := position(t.label, t.value); ok && !math.IsNaN(p) {
			to = p
		}
		t.exiting = true
		t.pos = retarget(t.pos, now, to, 0, d, ease, lerp)
		t.opacity = retarget(t.opacity, now, 0, 0, d, ease, lerp)
		out = append(out, t)
	}
	a.ticks = out
}

func (a *axis) frame(now time.Time, ease Ease) []Tick {
	out := make([]Tick, 0, len(a.ticks))
	for _, t := range a.ticks {
		if t.exiting && t.opacity.done(now) {
			continue
		}
		delay, run := t.pos.remaining(now)
		if od, or := t.opacity.remaining(now); od+or > delay+run {
			delay, run = od, or
		}
		out = append(out, Tick{
			Label:         t.label,
			Pos:           t.pos.at(now, ease, lerp),
			Opacity:       t.opacity.at(now, ease, lerp),
			Target:        t.pos.to,
			TargetOpacity: t.opacity.to,
			Delay:         delay,
			Remaining:     run,
		})
	}
	return out
}

func (a *axis) settle() time.Time {
	var end time.Time
	for _, t := range a.ticks {
		end = later(end, t.pos.end(), t.opacity.end())
	}
	return end
}

func later(ts ...time.Time) time.Time {
	var latest time.Time
	for _, t := range ts {
		if t.After(latest) {
			latest = t
		}
	}
	return latest
}
