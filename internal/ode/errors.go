package ode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive step size collapsed below the minimum.
	ErrStepTooSmall = errors.New("ode: adaptive timestep below minimum")

	// ErrUnknownIntegrator indicates an unrecognized integrator name.
	ErrUnknownIntegrator = errors.New("ode: unknown integrator")
)

// SolveError wraps an error with the step and time at which it occurred.
type SolveError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
