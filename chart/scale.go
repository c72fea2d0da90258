package chart

import "math"

// LinearScale maps a numeric domain onto a pixel range affinely.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) *LinearScale {
	return &LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

func (s *LinearScale) SetDomain(d0, d1 float64) { s.d0, s.d1 = d0, d1 }

func (s *LinearScale) SetRange(r0, r1 float64) { s.r0, s.r1 = r0, r1 }

func (s *LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }

func (s *LinearScale) Range() (float64, float64) { return s.r0, s.r1 }

// Map projects v into the range. A degenerate domain maps every value to
// the middle of the range.
func (s *LinearScale) Map(v float64) float64 {
	span := s.d1 - s.d0
	t := 0.5
	if span != 0 {
		t = (v - s.d0) / span
	}
	return s.r0 + t*(s.r1-s.r0)
}

// Ticks returns roughly count human-friendly values inside the domain.
func (s *LinearScale) Ticks(count int) []float64 {
	return ticks(s.d0, s.d1, count)
}

// TickFormat returns a formatter with a precision suited to the tick step.
func (s *LinearScale) TickFormat(count int) func(float64) string {
	return tickFormat(s.d0, s.d1, count)
}

// BandScale maps discrete labels onto evenly spaced, padded bands. Band
// positions and widths are rounded to whole pixels.
type BandScale struct {
	domain  []string
	index   map[string]int
	r0, r1  float64
	padding float64

	step      float64
	bandwidth float64
	starts    []float64
}

// NewBandScale returns an empty band scale with equal inner and outer padding.
func NewBandScale(padding float64) *BandScale {
	return &BandScale{padding: padding, index: map[string]int{}}
}

// SetDomain replaces the labels. Repeated labels share the first band.
func (s *BandScale) SetDomain(labels []string) {
	s.domain = s.domain[:0]
	s.index = make(map[string]int, len(labels))
	for _, l := range labels {
		if _, ok := s.index[l]; ok {
			continue
		}
		s.index[l] = len(s.domain)
		s.domain = append(s.domain, l)
	}
	s.rescale()
}

// SetRangeRound sets the pixel range. r0 > r1 lays the first label out at
// the high end of the range.
func (s *BandScale) SetRangeRound(r0, r1 float64) {
	s.r0, s.r1 = r0, r1
	s.rescale()
}

func (s *BandScale) Domain() []string { return append([]string(nil), s.domain...) }

func (s *BandScale) Range() (float64, float64) { return s.r0, s.r1 }

func (s *BandScale) Bandwidth() float64 { return s.bandwidth }

func (s *BandScale) Step() float64 { return s.step }

// Map returns the start of the label's band.
func (s *BandScale) Map(label string) (float64, bool) {
	i, ok := s.index[label]
	if !ok {
		return math.NaN(), false
	}
	return s.starts[i], true
}

func (s *BandScale) clone() *BandScale {
	c := *s
	c.domain = append([]string(nil), s.domain...)
	c.starts = append([]float64(nil), s.starts...)
	c.index = make(map[string]int, len(s.index))
	for k, v := range s.index {
		c.index[k] = v
	}
	return &c
}

func (s *BandScale) rescale() {
	n := float64(len(s.domain))
	reverse := s.r1 < s.r0
	start, stop := s.r0, s.r1
	if reverse {
		start, stop = s.r1, s.r0
	}

	inner, outer := s.padding, s.padding
	step := (stop - start) / math.Max(1, n-inner+outer*2)
	step = math.Floor(step)
	start += (stop - start - step*(n-inner)) * 0.5
	s.step = step
	s.bandwidth = math.Round(step * (1 - inner))
	start = math.Round(start)

	s.starts = make([]float64, len(s.domain))
	for i := range s.starts {
		s.starts[i] = start + step*float64(i)
	}
	if reverse {
		for i, j := 0, len(s.starts)-1; i < j; i, j = i+1, j-1 {
			s.starts[i], s.starts[j] = s.starts[j], s.starts[i]
		}
	}
}
