package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearScaleMap(t *testing.T) {
	s := NewLinearScale(0, 7, 0, 345)
	assert.InDelta(t, 0, s.Map(0), 1e-9)
	assert.InDelta(t, 345, s.Map(7), 1e-9)
	assert.InDelta(t, 147.857, s.Map(3), 1e-3)

	// inverted range, as used for the vertical value axis
	s.SetRange(250, 0)
	assert.InDelta(t, 250, s.Map(0), 1e-9)
	assert.InDelta(t, 0, s.Map(7), 1e-9)
}

func TestLinearScaleDegenerateDomain(t *testing.T) {
	s := NewLinearScale(0, 0, 0, 100)
	assert.Equal(t, 50.0, s.Map(0))
	assert.Equal(t, 50.0, s.Map(42))
	assert.Equal(t, []float64{0}, s.Ticks(10))
}

func TestBandScaleReversedRange(t *testing.T) {
	s := NewBandScale(0.1)
	s.SetDomain([]string{"A", "B", "C"})
	s.SetRangeRound(250, 0)

	assert.Equal(t, 80.0, s.Step())
	assert.Equal(t, 72.0, s.Bandwidth())

	for label, want := range map[string]float64{"A": 169, "B": 89, "C": 9} {
		got, ok := s.Map(label)
		require.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}

	_, ok := s.Map("missing")
	assert.False(t, ok)
}

func TestBandScaleDeduplicatesDomain(t *testing.T) {
	s := NewBandScale(0.1)
	s.SetDomain([]string{"x", "y", "x"})
	s.SetRangeRound(0, 210)
	assert.Equal(t, []string{"x", "y"}, s.Domain())

	x, _ := s.Map("x")
	y, _ := s.Map("y")
	assert.Less(t, x, y)
}

func TestBandScaleEmpty(t *testing.T) {
	s := NewBandScale(0.1)
	s.SetDomain(nil)
	s.SetRangeRound(0, 100)
	assert.Empty(t, s.Domain())
	assert.GreaterOrEqual(t, s.Bandwidth(), 0.0)
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{"unit steps", 0, 10, 10, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"half steps", 0, 7, 10, []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5, 5.5, 6, 6.5, 7}},
		{"twenties", 0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		{"reversed", 10, 0, 5, []float64{10, 8, 6, 4, 2, 0}},
		{"single", 3, 3, 10, []float64{3}},
		{"no count", 0, 1, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ticks(tt.start, tt.stop, tt.count)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestTickFormatPrecision(t *testing.T) {
	f := tickFormat(0, 7, 10)
	assert.Equal(t, "0.0", f(0))
	assert.Equal(t, "3.5", f(3.5))

	f = tickFormat(0, 10, 10)
	assert.Equal(t, "4", f(4))

	f = tickFormat(0, 0.5, 10)
	assert.Equal(t, "0.05", f(0.05))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "7", formatNumber(7))
	assert.Equal(t, "1234.5", formatNumber(1234.5))
	assert.Equal(t, "-2", formatNumber(-2))
	assert.Equal(t, "1e+21", formatNumber(1e21))
	assert.Equal(t, "1e-7", formatNumber(1e-7))
	assert.Equal(t, "-2.5e-8", formatNumber(-2.5e-8))
}
