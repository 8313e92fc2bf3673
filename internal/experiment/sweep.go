package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/globalkin/internal/config"
	"github.com/san-kum/globalkin/internal/dynamo"
)

// SweepResult pairs one temperature with its run.
type SweepResult struct {
	Temperature float64
	Trajectory  *dynamo.Trajectory
	Err         error
}

// Sweep runs the base config once per temperature. Each run owns its own
// mechanism and simulator, so runs proceed in parallel; results come back in
// the order of temps. A failing run does not stop the others.
func Sweep(ctx context.Context, r *Registry, base config.Config, integrator string, temps []float64) []SweepResult {
	results := make([]SweepResult, len(temps))

	var wg sync.WaitGroup
	for i, T := range temps {
		wg.Add(1)
		go func(idx int, T float64) {
			defer wg.Done()

			cfgCopy := base
			cfgCopy.Temperature = T
			results[idx].Temperature = T

			exp := New(cfgCopy)
			if err := exp.Setup(r, integrator); err != nil {
				results[idx].Err = err
				return
			}
			results[idx].Trajectory, results[idx].Err = exp.Run(ctx)
		}(i, T)
	}

	wg.Wait()
	return results
}
