package chart

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Orientation is fixed when a Renderer is constructed.
type Orientation int

const (
	// Horizontal bars grow rightward; categories run along the vertical axis.
	Horizontal Orientation = iota
	// Vertical bars grow upward from the baseline.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation accepts "horizontal"/"h" and "vertical"/"v".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, errors.Errorf("chart: unknown orientation %q", s)
}

// KeyMode selects how bars are matched between updates.
type KeyMode int

const (
	// KeyByLabel matches bars by label; repeated labels are told apart by
	// their occurrence count.
	KeyByLabel KeyMode = iota
	// KeyByIndex matches bars by position in the dataset.
	KeyByIndex
)

// ParseKeyMode accepts "label" and "index".
func ParseKeyMode(s string) (KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "label":
		return KeyByLabel, nil
	case "index":
		return KeyByIndex, nil
	}
	return KeyByLabel, errors.Errorf("chart: unknown key mode %q", s)
}

// DefaultPalette is the fixed bar palette. Bars cycle through it by index.
var DefaultPalette = []string{
	"#0000b4", "#0082ca", "#0094ff", "#0d4bcf",
	"#0066AE", "#074285", "#00187B", "#285964",
	"#405F83", "#416545", "#4D7069", "#6E9985",
	"#7EBC89", "#0283AF", "#79BCBF", "#99C19E",
}

// Config is the styling and timing a Renderer is built with. A Renderer
// keeps its own copy, so changing a Config after New has no effect.
type Config struct {
	Palette []string
	// Margins are the base insets; Left is replaced by ComputeMargins.
	Margins Margins
	// BandPadding is the inner and outer padding of the category scale,
	// as a fraction of the band step.
	BandPadding float64
	// CharWidth and LabelPadding size the left margin:
	// Left = longest*CharWidth + LabelPadding.
	CharWidth    float64
	LabelPadding float64
	Duration     time.Duration
	// DelayUnit staggers entering bars: bar i starts after i*DelayUnit.
	DelayUnit   time.Duration
	TickCount   int
	TickSize    float64
	TickPadding float64
	KeyMode     KeyMode
	// MeasureTicks makes the vertical left margin fit the widest value tick
	// label instead of only the formatted maximum value.
	MeasureTicks bool
}

// DefaultConfig returns the stock chart configuration.
func DefaultConfig() Config {
	return Config{
		Palette:      append([]string(nil), DefaultPalette...),
		Margins:      Margins{Top: 20, Right: 20, Bottom: 30, Left: 20},
		BandPadding:  0.1,
		CharWidth:    5,
		LabelPadding: 30,
		Duration:     250 * time.Millisecond,
		DelayUnit:    10 * time.Millisecond,
		TickCount:    10,
		TickSize:     6,
		TickPadding:  3,
		KeyMode:      KeyByLabel,
	}
}

// normalize fills zero fields from DefaultConfig and detaches the palette.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if len(c.Palette) == 0 {
		c.Palette = def.Palette
	} else {
		c.Palette = append([]string(nil), c.Palette...)
	}
	if c.Margins == (Margins{}) {
		c.Margins = def.Margins
	}
	if c.BandPadding < 0 || c.BandPadding >= 1 {
		c.BandPadding = def.BandPadding
	}
	if c.CharWidth <= 0 {
		c.CharWidth = def.CharWidth
	}
	if c.LabelPadding < 0 {
		c.LabelPadding = def.LabelPadding
	}
	if c.Duration <= 0 {
		c.Duration = def.Duration
	}
	if c.DelayUnit < 0 {
		c.DelayUnit = def.DelayUnit
	}
	if c.TickCount <= 0 {
		c.TickCount = def.TickCount
	}
	if c.TickSize <= 0 {
		c.TickSize = def.TickSize
	}
	if c.TickPadding <= 0 {
		c.TickPadding = def.TickPadding
	}
	return c
}
