package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/globalkin/internal/config"
	"github.com/san-kum/globalkin/internal/dynamo"
	"github.com/san-kum/globalkin/internal/kinetics"
	"github.com/san-kum/globalkin/internal/sim"
)

// Experiment is one configured run: a network bound to a temperature, an
// integrator and the metrics to collect.
type Experiment struct {
	cfg       config.Config
	mechanism *kinetics.Mechanism
	simulator *sim.Simulator
}

func New(cfg config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// NetworkName resolves the registry key for a config, honouring the
// direct ionization switch.
func NetworkName(cfg config.Config) string {
	name := cfg.Network
	if name == "" {
		name = config.DefaultNetwork
	}
	if cfg.DirectIonization && name == "argon" {
		name = "argon-direct"
	}
	return name
}

func (e *Experiment) Setup(r *Registry, integrator string) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	net, err := r.GetNetwork(NetworkName(e.cfg))
	if err != nil {
		return err
	}
	integ, err := r.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	mech, err := net.Bind(e.cfg.Temperature)
	if err != nil {
		return err
	}

	e.mechanism = mech
	e.simulator = sim.New(mech, integ)
	for _, m := range r.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Trajectory, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, dynamo.State(e.cfg.InitState()), e.cfg.RunConfig())
}

func (e *Experiment) Config() config.Config { return e.cfg }

func (e *Experiment) Mechanism() *kinetics.Mechanism { return e.mechanism }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
