// Package dynamo provides core simulation primitives for attractor rendering.
//
// The package defines the shared types every dynamical system is built on:
//
//   - [State]: current point in phase space, its initial condition and clock
//   - [Range]: inclusive interval used for parameter and state bounds
//   - [Vector]: plain state vector used by the integrators
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator interface
//
// # Example
//
//	st := dynamo.NewState(2, dynamo.Range{Start: -1, End: 1}, nil)
//	st.SetInit()
//	x, y := st.XY()
//
// # Thread Safety
//
// State values are NOT thread-safe. A render owns its State exclusively
// for the duration of the call.
package dynamo
