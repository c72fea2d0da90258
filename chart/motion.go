package chart

import "time"

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// CubicInOut accelerates through the first half and decelerates through
// the second.
func CubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Rect is a bar's geometry in plot coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func lerpRect(a, b Rect, t float64) Rect {
	return Rect{
		X:      lerp(a.X, b.X, t),
		Y:      lerp(a.Y, b.Y, t),
		Width:  lerp(a.Width, b.Width, t),
		Height: lerp(a.Height, b.Height, t),
	}
}

// motion is a value moving from one state to another over time.
type motion[T any] struct {
	from, to T
	start    time.Time
	delay    time.Duration
	duration time.Duration
}

func still[T any](v T) motion[T] {
	return motion[T]{from: v, to: v}
}

func (m motion[T]) begin() time.Time { return m.start.Add(m.delay) }

func (m motion[T]) end() time.Time { return m.begin().Add(m.duration) }

func (m motion[T]) done(now time.Time) bool { return !now.Before(m.end()) }

// progress is the eased completion at now.
func (m motion[T]) progress(now time.Time, ease Ease) float64 {
	if m.duration <= 0 || m.done(now) {
		return 1
	}
	elapsed := now.Sub(m.begin())
	if elapsed <= 0 {
		return 0
	}
	return ease(float64(elapsed) / float64(m.duration))
}

func (m motion[T]) at(now time.Time, ease Ease, interp func(a, b T, t float64) T) T {
	switch p := m.progress(now, ease); p {
	case 0:
		return m.from
	case 1:
		return m.to
	default:
		return interp(m.from, m.to, p)
	}
}

// remaining splits the time left into delay still to wait and run time.
func (m motion[T]) remaining(now time.Time) (delay, run time.Duration) {
	if m.done(now) {
		return 0, 0
	}
	if begin := m.begin(); now.Before(begin) {
		return begin.Sub(now), m.duration
	}
	return 0, m.end().Sub(now)
}

// retarget starts a new motion toward to from wherever m is at now.
func retarget[T any](m motion[T], now time.Time, to T, delay, duration time.Duration, ease Ease, interp func(a, b T, t float64) T) motion[T] {
	return motion[T]{
		from:     m.at(now, ease, interp),
		to:       to,
		start:    now,
		delay:    delay,
		duration: duration,
	}
}
