// Package dynamo provides the core primitives for integrating reaction
// kinetics in a zero-dimensional plasma model.
//
// The package defines the shared types used by the solver packages:
//
//   - [State]: density vector, one entry per species
//   - [System]: interface for ODE systems (dn/dt = f(n, t))
//   - [Integrator]: single-step numerical update rule
//   - [Trajectory]: append-only record of (time, state) samples
//   - [Degradation]: in-band marker for a run that went non-physical
//
// # Example
//
//	net := kinetics.ArgonNetwork()
//	mech, _ := net.Bind(5.4)
//	s := sim.New(mech, integrators.NewEuler())
//	traj, _ := s.Run(ctx, x0, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Trajectories are safe to read concurrently once Run has returned. A
// Simulator is NOT thread-safe; build one per goroutine.
package dynamo
