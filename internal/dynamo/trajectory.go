package dynamo

// Trajectory is the ordered record of one run: one (time, state) sample per
// integration step, in increasing time order. Samples are copies of the
// integrator's working state and are never modified after Append.
type Trajectory struct {
	Times  []float64
	States []State
	Labels []string

	// Degraded is the first sample whose state went negative or non-finite.
	// Nil means every recorded state stayed physical.
	Degraded      *Degradation
	DegradedCount int

	Metrics    map[string]float64
	StepsTaken int
}

// NewTrajectory returns an empty trajectory with room for n samples.
func NewTrajectory(n int) *Trajectory {
	return &Trajectory{
		Times:   make([]float64, 0, n),
		States:  make([]State, 0, n),
		Metrics: make(map[string]float64),
	}
}

func (tr *Trajectory) Append(t float64, x State) {
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, x.Clone())
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

func (tr *Trajectory) At(i int) (float64, State) {
	return tr.Times[i], tr.States[i]
}

// Final returns the last recorded sample, or nil for an empty trajectory.
func (tr *Trajectory) Final() State {
	if len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1]
}

// Species returns a copy of one state component across all samples.
func (tr *Trajectory) Species(idx int) []float64 {
	out := make([]float64, len(tr.States))
	for i, s := range tr.States {
		if idx < len(s) {
			out[i] = s[idx]
		}
	}
	return out
}

// Trusted reports whether the run never left the physical domain.
func (tr *Trajectory) Trusted() bool { return tr.Degraded == nil }

// Mark records a degradation; only the first one is kept in Degraded.
func (tr *Trajectory) Mark(d Degradation) {
	if tr.Degraded == nil {
		tr.Degraded = &d
	}
	tr.DegradedCount++
}
