package chart

import "unicode/utf8"

// Margins are the pixel insets around the plot area.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// ComputeMargins returns cfg.Margins with Left sized to the text drawn along
// the left axis: category labels when horizontal, the formatted maximum value
// when vertical.
func ComputeMargins(cfg Config, data Dataset, o Orientation) Margins {
	cfg = cfg.normalize()
	m := cfg.Margins

	longest := 0
	if o == Horizontal {
		for _, p := range data {
			if n := utf8.RuneCountInString(p.Label); n > longest {
				longest = n
			}
		}
	} else if len(data) > 0 {
		top := data.Max()
		longest = utf8.RuneCountInString(formatNumber(top))
		if cfg.MeasureTicks {
			format := tickFormat(0, top, cfg.TickCount)
			for _, t := range ticks(0, top, cfg.TickCount) {
				if n := utf8.RuneCountInString(format(t)); n > longest {
					longest = n
				}
			}
		}
	}

	m.Left = float64(longest)*cfg.CharWidth + cfg.LabelPadding
	return m
}
