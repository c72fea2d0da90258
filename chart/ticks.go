package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

var tickPrinter = message.NewPrinter(language.English)

// tickSpec picks a 1, 2 or 5 times power-of-ten step covering [start, stop]
// in about count steps. Negative inc means the step is 1/-inc.
func tickSpec(start, stop float64, count int) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && count >= 1 && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

func ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, count)
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2-i1) + 1
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var k float64
		if reverse {
			k = i2 - float64(i)
		} else {
			k = i1 + float64(i)
		}
		if inc < 0 {
			out[i] = k / -inc
		} else {
			out[i] = k * inc
		}
	}
	return out
}

// tickStep returns the distance between ticks for the same arguments.
func tickStep(start, stop float64, count int) float64 {
	if start == stop || count <= 0 {
		return 0
	}
	if stop < start {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, count)
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}

// tickFormat formats ticks with comma grouping and just enough decimals to
// tell neighbouring ticks apart.
func tickFormat(start, stop float64, count int) func(float64) string {
	precision := 0
	if step := tickStep(start, stop, count); step > 0 && !math.IsInf(step, 0) {
		precision = int(math.Max(0, -math.Floor(math.Log10(math.Abs(step)))))
	}
	layout := fmt.Sprintf("%%.%df", precision)
	return func(v float64) string {
		if v == 0 {
			v = 0 // drop negative zero
		}
		return tickPrinter.Sprintf(layout, v)
	}
}

// formatNumber renders v the shortest way that reads back to the same value.
func formatNumber(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		// exponents without zero padding: 1e-7, not 1e-07
		s := strconv.FormatFloat(v, 'g', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
