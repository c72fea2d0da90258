package chart

import (
	"github.com/lucasb-eyer/go-colorful"
)

// ColorScale assigns palette colors by ordinal bar index.
type ColorScale struct {
	palette []string
	n       int
}

func NewColorScale(palette []string) *ColorScale {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &ColorScale{palette: append([]string(nil), palette...)}
}

// SetDomain resets the index domain to [0, n).
func (c *ColorScale) SetDomain(n int) { c.n = n }

// Len is the size of the current index domain.
func (c *ColorScale) Len() int { return c.n }

// Color returns palette[i mod len(palette)].
func (c *ColorScale) Color(i int) string {
	k := len(c.palette)
	return c.palette[((i%k)+k)%k]
}

// lerpColor blends two hex colors in RGB. Unparseable colors snap to the
// target at the end of the transition.
func lerpColor(a, b string, t float64) string {
	if a == b {
		return b
	}
	ca, err := colorful.Hex(a)
	if err != nil {
		return snap(a, b, t)
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return snap(a, b, t)
	}
	return ca.BlendRgb(cb, t).Clamped().Hex()
}

func snap(a, b string, t float64) string {
	if t >= 1 {
		return b
	}
	return a
}
