package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a run configuration that must not be integrated.
	ErrInvalidConfig = errors.New("dynamo: invalid run configuration")

	// ErrInvalidTemperature indicates a non-positive or non-finite temperature.
	ErrInvalidTemperature = errors.New("dynamo: temperature must be positive and finite")

	// ErrInvalidState indicates a state vector with negative, NaN or Inf entries.
	ErrInvalidState = errors.New("dynamo: invalid state (negative, NaN or Inf detected)")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// DegradationKind classifies how a state left the physical domain.
type DegradationKind int

const (
	Negative DegradationKind = iota
	NonFinite
)

func (k DegradationKind) String() string {
	switch k {
	case Negative:
		return "negative"
	case NonFinite:
		return "non-finite"
	}
	return "unknown"
}

// Degradation marks the first sample of a trajectory whose state is no
// longer physically valid. Step is the index of the offending sample.
type Degradation struct {
	Step    int
	Time    float64
	Species int
	Value   float64
	Kind    DegradationKind
}

func (d Degradation) Error() string {
	return fmt.Sprintf("step %d (t=%.4g): species %d is %s (%g)", d.Step, d.Time, d.Species, d.Kind, d.Value)
}
