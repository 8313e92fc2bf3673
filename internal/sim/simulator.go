package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/globalkin/internal/dynamo"
)

// Simulator advances a System with a fixed-step Integrator and records every
// sample into a Trajectory.
type Simulator struct {
	sys        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(sys dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run integrates from cfg.T0 over floor((TEnd-T0)/Dt) steps. Sample i is the
// state at T0 + i*Dt before step i is applied, so the first sample is x0 and
// TEnd itself is never sampled.
//
// Configuration problems are returned before any step is taken. A state that
// turns negative or non-finite is recorded on the trajectory, not returned as
// an error. If ctx is canceled the partial trajectory is returned along with
// ctx.Err().
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Trajectory, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}
	guard, _ := dynamo.ParseGuard(string(cfg.Guard))

	steps := cfg.Steps()
	traj := dynamo.NewTrajectory(steps)
	if l, ok := s.sys.(dynamo.Labeled); ok {
		traj.Labels = l.Labels()
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(traj)
			return traj, ctx.Err()
		default:
		}

		t := cfg.T0 + float64(i)*cfg.Dt
		traj.Append(t, x)

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		x = s.integrator.Step(s.sys, x, t, cfg.Dt)
		traj.StepsTaken++

		if !check(traj, x, i+1, cfg.T0+float64(i+1)*cfg.Dt, guard) {
			break
		}
	}

	s.collect(traj)
	return traj, nil
}

func (s *Simulator) collect(traj *dynamo.Trajectory) {
	for _, m := range s.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}
}

// check applies the guard to the state produced by a step and reports
// whether stepping may continue.
func check(traj *dynamo.Trajectory, x dynamo.State, step int, t float64, guard dynamo.Guard) bool {
	if guard == dynamo.GuardOff {
		return true
	}
	idx, kind := x.FirstInvalid()
	if idx < 0 {
		return true
	}
	traj.Mark(dynamo.Degradation{Step: step, Time: t, Species: idx, Value: x[idx], Kind: kind})

	switch guard {
	case dynamo.GuardHalt:
		return false
	case dynamo.GuardClamp:
		for i, v := range x {
			if v < 0 {
				x[i] = 0
			}
		}
	}
	return true
}

func (s *Simulator) validate(x0 dynamo.State, cfg dynamo.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(x0) != s.sys.StateDim() {
		return fmt.Errorf("%w: %w: want %d densities, got %d",
			dynamo.ErrInvalidConfig, dynamo.ErrDimensionMismatch, s.sys.StateDim(), len(x0))
	}
	if idx, kind := x0.FirstInvalid(); idx >= 0 {
		return fmt.Errorf("%w: %w: initial entry %d is %s (%g)",
			dynamo.ErrInvalidConfig, dynamo.ErrInvalidState, idx, kind, x0[idx])
	}
	return nil
}
