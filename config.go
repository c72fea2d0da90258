package main

import (
	"strings"
	"time"

	"github.com/kyleleelarson/barchart/chart"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the complete barchart configuration.
type Config struct {
	Chart  ChartConfig  `mapstructure:"chart"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// ChartConfig controls how charts are laid out and animated
type ChartConfig struct {
	// Orientation is "horizontal" or "vertical"
	Orientation string `mapstructure:"orientation"`
	Title       string `mapstructure:"title"`
	// Width and Height are the container size in pixels
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// Palette overrides the bar colors, as "#rrggbb" strings
	Palette      []string      `mapstructure:"palette"`
	Margin       MarginConfig  `mapstructure:"margin"`
	BandPadding  float64       `mapstructure:"band_padding"`
	CharWidth    float64       `mapstructure:"char_width"`
	LabelPadding float64       `mapstructure:"label_padding"`
	Duration     time.Duration `mapstructure:"duration"`
	DelayUnit    time.Duration `mapstructure:"delay_unit"`
	// KeyMode is "label" or "index"
	KeyMode string `mapstructure:"key_mode"`
	// MeasureTicks sizes the vertical left margin from every value tick label
	MeasureTicks bool `mapstructure:"measure_ticks"`
}

// MarginConfig holds the fixed insets. The left inset is always computed.
type MarginConfig struct {
	Top    float64 `mapstructure:"top"`
	Right  float64 `mapstructure:"right"`
	Bottom float64 `mapstructure:"bottom"`
}

// ServerConfig controls the HTTP server
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Data is an optional dataset file loaded at startup
	Data string `mapstructure:"data"`
}

// LogConfig controls logging
type LogConfig struct {
	// Verbosity enables V(n) logs up to n
	Verbosity int `mapstructure:"verbosity"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	c := chart.DefaultConfig()
	return &Config{
		Chart: ChartConfig{
			Orientation:  chart.Horizontal.String(),
			Width:        800,
			Height:       500,
			Palette:      c.Palette,
			Margin:       MarginConfig{Top: c.Margins.Top, Right: c.Margins.Right, Bottom: c.Margins.Bottom},
			BandPadding:  c.BandPadding,
			CharWidth:    c.CharWidth,
			LabelPadding: c.LabelPadding,
			Duration:     c.Duration,
			DelayUnit:    c.DelayUnit,
			KeyMode:      "label",
		},
		Server: ServerConfig{
			Addr: ":8081",
		},
	}
}

// SetDefaults registers every default with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("chart.orientation", defaults.Chart.Orientation)
	viper.SetDefault("chart.title", defaults.Chart.Title)
	viper.SetDefault("chart.width", defaults.Chart.Width)
	viper.SetDefault("chart.height", defaults.Chart.Height)
	viper.SetDefault("chart.palette", defaults.Chart.Palette)
	viper.SetDefault("chart.margin.top", defaults.Chart.Margin.Top)
	viper.SetDefault("chart.margin.right", defaults.Chart.Margin.Right)
	viper.SetDefault("chart.margin.bottom", defaults.Chart.Margin.Bottom)
	viper.SetDefault("chart.band_padding", defaults.Chart.BandPadding)
	viper.SetDefault("chart.char_width", defaults.Chart.CharWidth)
	viper.SetDefault("chart.label_padding", defaults.Chart.LabelPadding)
	viper.SetDefault("chart.duration", defaults.Chart.Duration)
	viper.SetDefault("chart.delay_unit", defaults.Chart.DelayUnit)
	viper.SetDefault("chart.key_mode", defaults.Chart.KeyMode)
	viper.SetDefault("chart.measure_ticks", defaults.Chart.MeasureTicks)

	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.data", defaults.Server.Data)

	viper.SetDefault("log.verbosity", defaults.Log.Verbosity)
}

// Load unmarshals the current viper state.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if _, _, err := cfg.Chart.Renderer(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Renderer converts the chart section into renderer settings.
func (c ChartConfig) Renderer() (chart.Config, chart.Orientation, error) {
	o, err := chart.ParseOrientation(c.Orientation)
	if err != nil {
		return chart.Config{}, o, err
	}
	mode, err := chart.ParseKeyMode(c.KeyMode)
	if err != nil {
		return chart.Config{}, o, err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return chart.Config{}, o, errors.Errorf("chart size must be positive, got %dx%d", c.Width, c.Height)
	}

	rc := chart.DefaultConfig()
	if len(c.Palette) > 0 {
		rc.Palette = trimAll(c.Palette)
	}
	rc.Margins = chart.Margins{Top: c.Margin.Top, Right: c.Margin.Right, Bottom: c.Margin.Bottom}
	rc.BandPadding = c.BandPadding
	rc.CharWidth = c.CharWidth
	rc.LabelPadding = c.LabelPadding
	rc.Duration = c.Duration
	rc.DelayUnit = c.DelayUnit
	rc.KeyMode = mode
	rc.MeasureTicks = c.MeasureTicks
	return rc, o, nil
}

// Container is the pixel surface charts are mounted in.
func (c ChartConfig) Container() chart.Size {
	return chart.Size{Width: float64(c.Width), Height: float64(c.Height)}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
