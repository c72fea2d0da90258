package chart

import (
	"math"
	"time"

	"github.com/go-logr/logr"
)

// Container is the element a chart is drawn into.
type Container interface {
	// Size reports the measured width and height in pixels.
	Size() (width, height float64)
}

// Size is a fixed-size Container.
type Size struct {
	Width, Height float64
}

func (s Size) Size() (float64, float64) { return s.Width, s.Height }

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock replaces time.Now as the source of transition timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithLogger sets the logger used for lifecycle and update summaries.
func WithLogger(log logr.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// WithEase replaces CubicInOut for every transition.
func WithEase(e Ease) Option {
	return func(r *Renderer) { r.ease = e }
}

// Renderer owns one chart: its surface size, margins, scales, axes and
// bars. It is not safe for concurrent use.
type Renderer struct {
	cfg    Config
	orient Orientation
	now    func() time.Time
	ease   Ease
	log    logr.Logger

	mounted bool
	surface Size
	margins Margins
	plot    Size

	value  *LinearScale
	band   *BandScale
	colors *ColorScale
	xAxis  axis
	yAxis  axis

	data Dataset
	bars []*bar
}

type bar struct {
	key   BarKey
	datum DataPoint
	index int
	rect  motion[Rect]
	fill  motion[string]
}

// New returns an unmounted Renderer for orientation o.
func New(cfg Config, o Orientation, opts ...Option) *Renderer {
	cfg = cfg.normalize()
	r := &Renderer{
		cfg:    cfg,
		orient: o,
		now:    time.Now,
		ease:   CubicInOut,
		log:    logr.Discard(),
		value:  NewLinearScale(0, 0, 0, 0),
		band:   NewBandScale(cfg.BandPadding),
		colors: NewColorScale(cfg.Palette),
		xAxis:  axis{orient: AxisBottom},
		yAxis:  axis{orient: AxisLeft},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Orientation() Orientation { return r.orient }

func (r *Renderer) Config() Config {
	c := r.cfg
	c.Palette = append([]string(nil), r.cfg.Palette...)
	return c
}

func (r *Renderer) Mounted() bool { return r.mounted }

func (r *Renderer) Margins() Margins { return r.margins }

// Data returns a copy of the dataset last rendered or handed to SetData.
func (r *Renderer) Data() Dataset { return r.data.Clone() }

// ValueScale and BandScale expose the live scales. Callers must not
// modify them.
func (r *Renderer) ValueScale() *LinearScale { return r.value }

func (r *Renderer) BandScale() *BandScale { return r.band }

// Mount initializes the chart in c and renders data when there is any. A
// nil data falls back to whatever SetData was given before mounting.
func (r *Renderer) Mount(c Container, data Dataset) error {
	if data == nil {
		data = r.data
	}
	if err := r.Initialize(c, data); err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	return r.Update(data)
}

// SetData renders data if the chart is mounted, and otherwise keeps it for
// inspection.
func (r *Renderer) SetData(data Dataset) error {
	if !r.mounted {
		if err := data.Validate(); err != nil {
			return err
		}
		r.data = data.Clone()
		return nil
	}
	return r.Update(data)
}

// Initialize creates the surface, scales and axes. It runs once; a nil or
// empty dataset yields an empty chart with a degenerate value domain.
func (r *Renderer) Initialize(c Container, data Dataset) error {
	if r.mounted {
		return ErrMounted
	}
	if c == nil {
		return ErrNoContainer
	}
	w, h := c.Size()
	if !(w > 0) || !(h > 0) {
		return ErrDetached
	}
	if err := data.Validate(); err != nil {
		data = nil
	}

	r.surface = Size{Width: w, Height: h}
	r.margins = ComputeMargins(r.cfg, data, r.orient)
	r.layout()
	r.value.SetDomain(0, data.Max())
	r.band.SetDomain(data.Labels())
	r.colors.SetDomain(len(data))

	r.xAxis.set(r.axisTargets(AxisBottom, nil, nil))
	r.xAxis.r0, r.xAxis.r1 = r.axisRange(AxisBottom)
	r.yAxis.set(r.axisTargets(AxisLeft, nil, nil))
	r.yAxis.r0, r.yAxis.r1 = r.axisRange(AxisLeft)
	r.mounted = true

	r.log.V(1).Info("chart mounted",
		"orientation", r.orient.String(),
		"width", w, "height", h,
		"marginLeft", r.margins.Left)
	return nil
}

// Update renders data: margins and domains are recomputed, the axes
// transition, and bars are diffed against the previous render. Bars that
// left are removed at once, bars that stayed move to their new geometry and
// new bars grow from zero size after a stagger of index*DelayUnit.
func (r *Renderer) Update(data Dataset) error {
	if !r.mounted {
		return ErrNotMounted
	}
	if err := data.Validate(); err != nil {
		r.log.Error(err, "rejected dataset", "points", len(data))
		return err
	}
	r.render(data.Clone(), r.now())
	return nil
}

// Resize changes the surface size and moves everything to the new layout.
func (r *Renderer) Resize(c Container) error {
	if !r.mounted {
		return ErrNotMounted
	}
	if c == nil {
		return ErrNoContainer
	}
	w, h := c.Size()
	if !(w > 0) || !(h > 0) {
		return ErrDetached
	}
	r.surface = Size{Width: w, Height: h}
	r.render(r.data, r.now())
	return nil
}

func (r *Renderer) render(data Dataset, now time.Time) {
	oldValue := *r.value
	oldBand := r.band.clone()

	// 1. margins and plot size
	r.margins = ComputeMargins(r.cfg, data, r.orient)
	r.layout()

	// 2. domains
	r.value.SetDomain(0, data.Max())
	r.band.SetDomain(data.Labels())

	// 3. colors
	r.colors.SetDomain(len(data))

	// 4. axes
	d := r.cfg.Duration
	r.xAxis.transition(r.axisTargets(AxisBottom, &oldValue, oldBand), r.axisPosition(AxisBottom), now, d, r.ease)
	r.xAxis.r0, r.xAxis.r1 = r.axisRange(AxisBottom)
	r.yAxis.transition(r.axisTargets(AxisLeft, &oldValue, oldBand), r.axisPosition(AxisLeft), now, d, r.ease)
	r.yAxis.r0, r.yAxis.r1 = r.axisRange(AxisLeft)

	// 5. bars
	prev := make([]BarKey, len(r.bars))
	for i, b := range r.bars {
		prev[i] = b.key
	}
	keys := Keys(data, r.cfg.KeyMode)
	plan := Reconcile(prev, keys)

	next := make([]*bar, len(data))
	for _, p := range plan.Update {
		b, datum := r.bars[p.Prev], data[p.Next]
		b.key = keys[p.Next]
		b.datum = datum
		b.index = p.Next
		b.rect = retarget(b.rect, now, r.target(datum), 0, d, r.ease, lerpRect)
		b.fill = retarget(b.fill, now, r.colors.Color(p.Next), 0, d, r.ease, lerpColor)
		next[p.Next] = b
	}
	for _, i := range plan.Enter {
		datum := data[i]
		next[i] = &bar{
			key:   keys[i],
			datum: datum,
			index: i,
			rect: motion[Rect]{
				from:     r.origin(datum),
				to:       r.target(datum),
				start:    now,
				delay:    time.Duration(i) * r.cfg.DelayUnit,
				duration: d,
			},
			fill: still(r.colors.Color(i)),
		}
	}
	r.bars = next
	r.data = data

	r.log.V(1).Info("chart updated",
		"bars", len(next),
		"enter", len(plan.Enter),
		"update", len(plan.Update),
		"exit", len(plan.Exit),
		"valueMax", data.Max(),
		"marginLeft", r.margins.Left)
}

func (r *Renderer) layout() {
	m := r.margins
	r.plot = Size{
		Width:  math.Max(0, r.surface.Width-m.Left-m.Right),
		Height: math.Max(0, r.surface.Height-m.Top-m.Bottom),
	}
	if r.orient == Horizontal {
		r.value.SetRange(0, r.plot.Width)
		r.band.SetRangeRound(r.plot.Height, 0)
	} else {
		r.band.SetRangeRound(0, r.plot.Width)
		r.value.SetRange(r.plot.Height, 0)
	}
}

// length is the on-screen length of a bar for v. Negative values draw as
// zero-length bars.
func (r *Renderer) length(v float64) float64 {
	return math.Abs(r.value.Map(math.Max(v, 0)) - r.value.Map(0))
}

func (r *Renderer) target(p DataPoint) Rect {
	pos, _ := r.band.Map(p.Label)
	bw := r.band.Bandwidth()
	l := r.length(p.Value)
	if r.orient == Horizontal {
		return Rect{X: 0, Y: pos, Width: l, Height: bw}
	}
	return Rect{X: pos, Y: r.plot.Height - l, Width: bw, Height: l}
}

// origin is the zero-size geometry an entering bar grows from.
func (r *Renderer) origin(p DataPoint) Rect {
	t := r.target(p)
	if r.orient == Horizontal {
		t.Width = 0
		return t
	}
	t.Y = r.plot.Height
	t.Height = 0
	return t
}

func (r *Renderer) valueAxis() AxisOrient {
	if r.orient == Horizontal {
		return AxisBottom
	}
	return AxisLeft
}

func (r *Renderer) axisRange(o AxisOrient) (float64, float64) {
	if o == r.valueAxis() {
		return r.value.Range()
	}
	return r.band.Range()
}

// axisTargets lists the ticks of axis o under the current scales. oldValue
// and oldBand, when set, give each tick its position before the update.
func (r *Renderer) axisTargets(o AxisOrient, oldValue *LinearScale, oldBand *BandScale) []tickTarget {
	if o == r.valueAxis() {
		count := r.cfg.TickCount
		format := r.value.TickFormat(count)
		values := r.value.Ticks(count)
		out := make([]tickTarget, len(values))
		for i, v := range values {
			from := math.NaN()
			if oldValue != nil {
				from = oldValue.Map(v)
			}
			out[i] = tickTarget{label: format(v), value: v, pos: r.value.Map(v), from: from}
		}
		return out
	}

	labels := r.band.Domain()
	out := make([]tickTarget, len(labels))
	for i, l := range labels {
		pos, _ := r.band.Map(l)
		from := math.NaN()
		if oldBand != nil {
			if p, ok := oldBand.Map(l); ok {
				from = p + bandOffset(oldBand)
			}
		}
		out[i] = tickTarget{label: l, value: math.NaN(), pos: pos + bandOffset(r.band), from: from}
	}
	return out
}

func (r *Renderer) axisPosition(o AxisOrient) func(string, float64) (float64, bool) {
	if o == r.valueAxis() {
		return func(_ string, v float64) (float64, bool) {
			return r.value.Map(v), true
		}
	}
	return func(label string, _ float64) (float64, bool) {
		p, ok := r.band.Map(label)
		return p + bandOffset(r.band), ok
	}
}

// bandOffset centres a tick in its band.
func bandOffset(s *BandScale) float64 {
	return math.Round(math.Max(0, s.Bandwidth()) / 2)
}
