package metrics

import (
	"math"

	"github.com/san-kum/globalkin/internal/dynamo"
)

// ChargeDrift tracks the largest departure of (electrons - ions) from its
// value at the first observed sample. Reactions that create electrons
// create ions one for one, so anything but 0 is integration error.
// Non-finite samples are skipped; the run's degradation record covers them.
type ChargeDrift struct {
	name          string
	electron, ion int
	initial       float64
	maxDrift      float64
	samples       int
}

func NewChargeDrift(electron, ion int) *ChargeDrift {
	return &ChargeDrift{name: "charge_drift", electron: electron, ion: ion}
}

func (c *ChargeDrift) Name() string { return c.name }

func (c *ChargeDrift) Observe(x dynamo.State, t float64) {
	diff := x[c.electron] - x[c.ion]
	if !finite(diff) {
		return
	}
	if c.samples == 0 {
		c.initial = diff
	}
	c.samples++
	c.maxDrift = math.Max(c.maxDrift, math.Abs(diff-c.initial))
}

func (c *ChargeDrift) Value() float64 { return c.maxDrift }

func (c *ChargeDrift) Reset() {
	c.initial = 0
	c.maxDrift = 0
	c.samples = 0
}

// HeavyDrift tracks the largest relative change in the summed density of
// the heavy species (neutral states plus ions), which every reaction in the
// argon network conserves. Non-finite samples are skipped.
type HeavyDrift struct {
	name     string
	heavy    []int
	initial  float64
	maxDrift float64
	samples  int
}

func NewHeavyDrift(heavy ...int) *HeavyDrift {
	return &HeavyDrift{name: "heavy_drift", heavy: heavy}
}

func (h *HeavyDrift) Name() string { return h.name }

func (h *HeavyDrift) Observe(x dynamo.State, t float64) {
	total := 0.0
	for _, i := range h.heavy {
		total += x[i]
	}
	if !finite(total) {
		return
	}
	if h.samples == 0 {
		h.initial = total
	}
	h.samples++
	if h.initial != 0 {
		h.maxDrift = math.Max(h.maxDrift, math.Abs(total-h.initial)/math.Abs(h.initial))
	}
}

func (h *HeavyDrift) Value() float64 { return h.maxDrift }

func (h *HeavyDrift) Reset() {
	h.initial = 0
	h.maxDrift = 0
	h.samples = 0
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
