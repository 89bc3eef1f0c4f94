// Package ode provides the numerical integration primitives shared by the
// reference orbit and the nested geodesic solve.
//
// The package defines:
//
//   - [State]: flat float64 state vector
//   - [System]: autonomous ODE right-hand side (dX/dt = f(X, t))
//   - [Integrator]: fixed-step steppers (Euler, RK4)
//   - [AdaptiveIntegrator]: embedded-error steppers (Dormand-Prince RK45)
//   - [Solver]: fixed-span driver producing a [Trajectory]
//
// Solver instances are not safe for concurrent use; every loss evaluation
// owns its own solver.
package ode
