package viz

import (
	"math"
	"strings"
	"testing"
)

func TestUnit(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Electron Velocity", "m/s"},
		{"Temperature [eV]", "K"},
		{"PRESSURE", "Pa"},
		{"mass density", "kg/m^3"},
		{"AR+", "cm^-3"},
		{"e", "cm^-3"},
	}
	for _, tt := range tests {
		if got := Unit(tt.name); got != tt.want {
			t.Errorf("Unit(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDownsample(t *testing.T) {
	values := make([]float64, 101)
	for i := range values {
		values[i] = float64(i)
	}

	out := Downsample(values, 11)
	if len(out) != 11 {
		t.Fatalf("expected 11 samples, got %d", len(out))
	}
	if out[0] != 0 || out[10] != 100 || out[5] != 50 {
		t.Errorf("unexpected samples %v", out)
	}

	short := Downsample(values[:5], 11)
	short[0] = -1
	if values[0] != 0 {
		t.Error("downsample must not alias its input")
	}
}

func TestShouldLog(t *testing.T) {
	if !ShouldLog([]float64{1e10, 1e15, 1e23}) {
		t.Error("expected log scale for wide range")
	}
	if ShouldLog([]float64{1, 2, 3}) {
		t.Error("expected linear scale for narrow range")
	}
	if ShouldLog([]float64{0, -1}) {
		t.Error("expected linear scale without positive values")
	}
}

func TestPlot(t *testing.T) {
	values := []float64{1, 10, 100, 1000, 10000}

	out := Plot(values, "e [m^-3]", PlotOptions{Height: 5, Width: 20, Log: true})
	if !strings.Contains(out, "log10 e [m^-3]") {
		t.Errorf("missing caption in:\n%s", out)
	}

	if got := Plot([]float64{math.NaN(), math.Inf(1)}, "x", DefaultPlotOptions()); got != "" {
		t.Errorf("expected empty plot, got %q", got)
	}
	if got := Plot([]float64{0, -1}, "x", PlotOptions{Log: true}); got != "" {
		t.Errorf("expected empty log plot, got %q", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 4); got != "────" {
		t.Errorf("empty sparkline = %q", got)
	}
	out := Sparkline([]float64{0, 1, 2, 3}, 4)
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("sparkline missing extremes: %q", out)
	}
}
