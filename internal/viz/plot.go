// Package viz renders error curves and the live Monte Carlo view in the
// terminal.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// ErrorCurve plots log10 of the absolute errors against the index of
// the N ladder. Errors at or below zero are clamped to the smallest
// positive sample so a lucky exact hit does not blow up the log scale.
func ErrorCurve(caption string, errs []float64) string {
	if len(errs) == 0 {
		return ""
	}

	floor := math.Inf(1)
	for _, e := range errs {
		if e > 0 && e < floor {
			floor = e
		}
	}
	if math.IsInf(floor, 1) {
		floor = 1e-16
	}

	data := make([]float64, len(errs))
	for i, e := range errs {
		if e <= 0 {
			e = floor
		}
		data[i] = math.Log10(e)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// CompareCurves overlays two error curves on a shared log scale.
func CompareCurves(caption string, a, b []float64) string {
	series := make([][]float64, 2)
	series[0] = logClamp(a)
	series[1] = logClamp(b)

	return asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
	)
}

func logClamp(errs []float64) []float64 {
	data := make([]float64, len(errs))
	for i, e := range errs {
		if e <= 0 {
			e = 1e-16
		}
		data[i] = math.Log10(e)
	}
	return data
}

// Sparkline renders a compact history strip for the live view.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// KV renders a styled label/value line.
func KV(label, format string, args ...interface{}) string {
	return LabelStyle.Render(label) + ValueStyle.Render(fmt.Sprintf(format, args...))
}
