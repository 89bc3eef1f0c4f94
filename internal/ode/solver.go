package ode

import (
	"context"
	"fmt"
	"math"
)

const minSubStep = 1e-12

// Solver integrates a system over a fixed span, sampling at every Dt.
// Adaptive integrators sub-step inside each sample interval, so the output
// grid is identical regardless of the stepper in use.
type Solver struct {
	sys   System
	integ Integrator
}

func NewSolver(sys System, integ Integrator) *Solver {
	return &Solver{sys: sys, integ: integ}
}

func (s *Solver) Run(ctx context.Context, x0 State, cfg Config) (*Trajectory, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.Dim() {
		return nil, fmt.Errorf("ode: state dim %d does not match system dim %d", len(x0), s.sys.Dim())
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	tr := &Trajectory{
		States: make([]State, 0, steps+1),
		Times:  make([]float64, 0, steps+1),
	}

	x := x0.Clone()
	t := 0.0

	tr.States = append(tr.States, x.Clone())
	tr.Times = append(tr.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return tr, ctx.Err()
		default:
		}

		var (
			newX State
			err  error
		)
		if cfg.Adaptive {
			if ad, ok := s.integ.(AdaptiveIntegrator); ok {
				newX, err = s.advanceAdaptive(ad, x, t, cfg.Dt, cfg.Tolerance)
			} else {
				newX = s.integ.Step(s.sys, x, t, cfg.Dt)
			}
		} else {
			newX = s.integ.Step(s.sys, x, t, cfg.Dt)
		}
		if err != nil {
			return tr, &SolveError{Step: i, Time: t, Wrapped: err}
		}

		if cfg.ValidateState && !newX.IsValid() {
			return tr, &SolveError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}

		x = newX
		t = float64(i+1) * cfg.Dt

		tr.States = append(tr.States, x.Clone())
		tr.Times = append(tr.Times, t)
	}

	return tr, nil
}

// advanceAdaptive covers one sample interval [t, t+dt] with error-controlled
// sub-steps so that samples land exactly on the fixed grid.
func (s *Solver) advanceAdaptive(ad AdaptiveIntegrator, x State, t, dt, tol float64) (State, error) {
	remaining := dt
	h := dt
	cur := x
	for remaining > 0 {
		if h > remaining {
			h = remaining
		}
		if h < minSubStep {
			return nil, ErrStepTooSmall
		}
		newX, hNext, err := ad.StepAdaptive(s.sys, cur, t+dt-remaining, h, tol)
		if err != nil {
			return nil, err
		}
		if hNext < h {
			// Step rejected: retry with the smaller suggestion.
			h = hNext
			continue
		}
		cur = newX
		remaining -= h
		h = hNext
	}
	return cur, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("ode: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("ode: duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("ode: tolerance must be positive for adaptive stepping")
	}
	return nil
}
