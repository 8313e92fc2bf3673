package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/globalkin/internal/dynamo"
)

func TestChargeDrift(t *testing.T) {
	m := NewChargeDrift(0, 4)

	m.Observe(dynamo.State{5, 1, 1, 1, 3}, 0)
	m.Observe(dynamo.State{6, 1, 1, 1, 4}, 1)
	if m.Value() != 0 {
		t.Errorf("balanced growth should not drift, got %g", m.Value())
	}

	m.Observe(dynamo.State{7, 1, 1, 1, 4}, 2)
	if m.Value() != 1 {
		t.Errorf("expected drift 1, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("Reset did not clear drift")
	}
}

func TestHeavyDrift(t *testing.T) {
	m := NewHeavyDrift(1, 2, 3, 4)

	m.Observe(dynamo.State{0, 70, 10, 10, 10}, 0)
	m.Observe(dynamo.State{5, 60, 15, 10, 15}, 1)
	if m.Value() != 0 {
		t.Errorf("conserved total should not drift, got %g", m.Value())
	}

	m.Observe(dynamo.State{5, 60, 15, 10, 35}, 2)
	if math.Abs(m.Value()-0.2) > 1e-12 {
		t.Errorf("expected relative drift 0.2, got %g", m.Value())
	}
}

func TestDriftSkipsNonFinite(t *testing.T) {
	charge := NewChargeDrift(0, 4)
	heavy := NewHeavyDrift(1, 2, 3, 4)
	frac := NewIonizationFraction(4, 1, 2, 3, 4)

	samples := []dynamo.State{
		{5, 70, 10, 10, 10},
		{math.Inf(1), math.NaN(), 10, 10, math.Inf(1)},
		{6, 60, 15, 10, 15},
	}
	for i, x := range samples {
		charge.Observe(x, float64(i))
		heavy.Observe(x, float64(i))
		frac.Observe(x, float64(i))
	}

	if v := charge.Value(); v != 4 {
		t.Errorf("charge drift = %g, want 4", v)
	}
	if v := heavy.Value(); v != 0 {
		t.Errorf("heavy drift = %g, want 0", v)
	}
	if v := frac.Value(); v != 0.15 {
		t.Errorf("ionization fraction = %g, want 0.15", v)
	}
}

func TestPositivity(t *testing.T) {
	tests := []struct {
		name   string
		states []dynamo.State
		want   float64
	}{
		{"no samples", nil, 1},
		{"all physical", []dynamo.State{{1, 2}, {0, 3}}, 1},
		{"one negative", []dynamo.State{{1, 2}, {-1, 3}}, 0.5},
		{"nan", []dynamo.State{{math.NaN(), 1}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPositivity()
			for i, s := range tt.states {
				m.Observe(s, float64(i))
			}
			if got := m.Value(); got != tt.want {
				t.Errorf("Value() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestIonizationFraction(t *testing.T) {
	m := NewIonizationFraction(4, 1, 2, 3, 4)
	m.Observe(dynamo.State{1, 90, 5, 4, 1}, 0)
	m.Observe(dynamo.State{1, 80, 5, 5, 10}, 1)

	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected 0.1, got %g", m.Value())
	}
	if m.Name() != "ionization_fraction" {
		t.Errorf("unexpected name %q", m.Name())
	}
}
