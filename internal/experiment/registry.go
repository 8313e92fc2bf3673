package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/globalkin/internal/dynamo"
	"github.com/san-kum/globalkin/internal/integrators"
	"github.com/san-kum/globalkin/internal/kinetics"
	"github.com/san-kum/globalkin/internal/metrics"
)

type Registry struct {
	networks    map[string]func() kinetics.Network
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		networks:    make(map[string]func() kinetics.Network),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.networks["argon"] = kinetics.ArgonNetwork
	r.networks["argon-direct"] = kinetics.ArgonNetworkWithDirectIonization

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }

	return r
}

func (r *Registry) GetNetwork(name string) (kinetics.Network, error) {
	fn, ok := r.networks[name]
	if !ok {
		return kinetics.Network{}, fmt.Errorf("unknown network: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListNetworks() []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics are the conservation diagnostics every argon run reports.
func (r *Registry) DefaultMetrics() []dynamo.Metric {
	heavy := []int{int(kinetics.GroundState), int(kinetics.ExcitedState1), int(kinetics.ExcitedState2), int(kinetics.Ion)}
	return []dynamo.Metric{
		metrics.NewChargeDrift(int(kinetics.Electron), int(kinetics.Ion)),
		metrics.NewHeavyDrift(heavy...),
		metrics.NewPositivity(),
		metrics.NewIonizationFraction(int(kinetics.Ion), heavy...),
	}
}
