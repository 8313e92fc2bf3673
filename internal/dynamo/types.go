package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FirstInvalid returns the index of the first entry that is NaN, Inf or
// negative, or -1 if every entry is a finite non-negative density.
func (s State) FirstInvalid() (int, DegradationKind) {
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i, NonFinite
		}
		if v < 0 {
			return i, Negative
		}
	}
	return -1, Negative
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous or time-dependent ODE right-hand side.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Labeled systems name each state component for plots and exports.
type Labeled interface {
	Labels() []string
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Guard selects the post-step validation applied to every new state.
type Guard string

const (
	GuardOff   Guard = "off"
	GuardFlag  Guard = "flag"
	GuardClamp Guard = "clamp"
	GuardHalt  Guard = "halt"
)

func ParseGuard(s string) (Guard, error) {
	switch g := Guard(s); g {
	case GuardOff, GuardFlag, GuardClamp, GuardHalt:
		return g, nil
	case "":
		return GuardFlag, nil
	}
	return "", fmt.Errorf("%w: unknown guard %q", ErrInvalidConfig, s)
}

type Config struct {
	T0    float64
	TEnd  float64
	Dt    float64
	Guard Guard
}

// DefaultConfig is the argon reference run: 50 ns at 1 ps steps.
func DefaultConfig() Config {
	return Config{
		T0:    0,
		TEnd:  5e-8,
		Dt:    1e-12,
		Guard: GuardFlag,
	}
}

// stepTolerance absorbs the rounding of (TEnd-T0)/Dt so that a span that is
// an exact multiple of Dt on paper is not one step short in float64. The
// slack is relative but never more than maxStepSlack of a step.
const (
	stepTolerance = 1e-9
	maxStepSlack  = 1e-3
)

// Steps returns floor((TEnd-T0)/Dt), the number of samples a run records.
func (c Config) Steps() int {
	q := (c.TEnd - c.T0) / c.Dt
	if q <= 0 || math.IsNaN(q) {
		return 0
	}
	r := math.Round(q)
	if math.Abs(q-r) <= math.Min(stepTolerance*math.Max(1, q), maxStepSlack) {
		return int(r)
	}
	return int(math.Floor(q))
}

func (c Config) Validate() error {
	if math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) || c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if math.IsNaN(c.T0) || math.IsInf(c.T0, 0) || math.IsNaN(c.TEnd) || math.IsInf(c.TEnd, 0) {
		return fmt.Errorf("%w: time range must be finite", ErrInvalidConfig)
	}
	if c.TEnd <= c.T0 {
		return fmt.Errorf("%w: t_end (%g) must exceed t0 (%g)", ErrInvalidConfig, c.TEnd, c.T0)
	}
	if _, err := ParseGuard(string(c.Guard)); err != nil {
		return err
	}
	return nil
}
