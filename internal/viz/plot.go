package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	DefaultHeight = 12
	DefaultWidth  = 80
)

type PlotOptions struct {
	Height int
	Width  int
	// Log plots log10 of the values; non-positive samples become gaps.
	Log bool
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Height: DefaultHeight, Width: DefaultWidth}
}

// Plot draws one series. It returns "" when nothing finite is left to draw.
func Plot(values []float64, caption string, opts PlotOptions) string {
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}

	data := Downsample(values, opts.Width)
	finite := 0
	for i, v := range data {
		if opts.Log {
			if v > 0 {
				v = math.Log10(v)
			} else {
				v = math.NaN()
			}
			data[i] = v
		}
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite++
		} else {
			data[i] = math.NaN()
		}
	}
	if finite == 0 {
		return ""
	}
	if opts.Log {
		caption = fmt.Sprintf("log10 %s", caption)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
	)
}

// ShouldLog reports whether a positive series spans more than three decades.
func ShouldLog(values []float64) bool {
	lo, hi := math.Inf(1), 0.0
	for _, v := range values {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi > 0 && hi/lo > 1e3
}

// Downsample picks at most n evenly spaced samples, always keeping the first
// and last. The result is a fresh slice.
func Downsample(values []float64, n int) []float64 {
	if n <= 1 || len(values) <= n {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, n)
	last := len(values) - 1
	for i := 0; i < n; i++ {
		out[i] = values[i*last/(n-1)]
	}
	return out
}
