package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/globalkin/internal/config"
	"github.com/san-kum/globalkin/internal/dynamo"
	"github.com/san-kum/globalkin/internal/kinetics"
)

func shortConfig() config.Config {
	cfg := *config.DefaultConfig()
	cfg.TEnd = 1e-10
	return cfg
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetNetwork("argon"); err != nil {
		t.Errorf("argon network missing: %v", err)
	}
	if _, err := r.GetNetwork("xenon"); err == nil {
		t.Error("expected error for unknown network")
	}
	if _, err := r.GetIntegrator("euler"); err != nil {
		t.Errorf("euler integrator missing: %v", err)
	}
	if _, err := r.GetIntegrator("rk4"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	names := r.ListNetworks()
	if len(names) != 2 || names[0] != "argon" || names[1] != "argon-direct" {
		t.Errorf("unexpected networks %v", names)
	}
}

func TestNetworkName(t *testing.T) {
	cfg := shortConfig()
	if got := NetworkName(cfg); got != "argon" {
		t.Errorf("got %q, want argon", got)
	}
	cfg.DirectIonization = true
	if got := NetworkName(cfg); got != "argon-direct" {
		t.Errorf("got %q, want argon-direct", got)
	}
	cfg.Network = ""
	cfg.DirectIonization = false
	if got := NetworkName(cfg); got != "argon" {
		t.Errorf("empty network should default to argon, got %q", got)
	}
}

func TestExperimentRun(t *testing.T) {
	exp := New(shortConfig())
	if err := exp.Setup(NewRegistry(), "euler"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	traj, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if traj.Len() != 100 {
		t.Errorf("expected 100 samples, got %d", traj.Len())
	}
	if traj.Metrics["charge_drift"] != 0 {
		t.Errorf("expected zero charge drift, got %g", traj.Metrics["charge_drift"])
	}
	if traj.Metrics["positivity"] != 1 {
		t.Errorf("expected full positivity, got %g", traj.Metrics["positivity"])
	}
	if exp.Mechanism().Temperature() != 5.4 {
		t.Errorf("mechanism bound to %g", exp.Mechanism().Temperature())
	}
	if _, ok := traj.Metrics["heavy_drift"]; !ok {
		t.Error("heavy_drift metric missing")
	}
}

func TestExperimentSetup_InvalidTemperature(t *testing.T) {
	cfg := shortConfig()
	cfg.Temperature = 0

	err := New(cfg).Setup(NewRegistry(), "euler")
	if !errors.Is(err, dynamo.ErrInvalidTemperature) {
		t.Fatalf("expected ErrInvalidTemperature, got %v", err)
	}
}

func TestExperimentRun_NotSetup(t *testing.T) {
	if _, err := New(shortConfig()).Run(context.Background()); err == nil {
		t.Error("expected error running an experiment without setup")
	}
}

func TestSweep(t *testing.T) {
	temps := []float64{2, 5.4, -1, 10}
	results := Sweep(context.Background(), NewRegistry(), shortConfig(), "euler", temps)

	if len(results) != len(temps) {
		t.Fatalf("expected %d results, got %d", len(temps), len(results))
	}
	for i, res := range results {
		if res.Temperature != temps[i] {
			t.Errorf("result %d out of order: T=%g", i, res.Temperature)
		}
	}

	if !errors.Is(results[2].Err, dynamo.ErrInvalidTemperature) {
		t.Errorf("expected temperature error for T=-1, got %v", results[2].Err)
	}

	// hotter plasma ionizes faster
	ne := func(r SweepResult) float64 { return r.Trajectory.Final()[kinetics.Electron] }
	if results[0].Err != nil || results[3].Err != nil {
		t.Fatalf("unexpected errors: %v %v", results[0].Err, results[3].Err)
	}
	if !(ne(results[0]) < ne(results[1]) && ne(results[1]) < ne(results[3])) {
		t.Errorf("electron density should grow with temperature: %g %g %g", ne(results[0]), ne(results[1]), ne(results[3]))
	}
}
