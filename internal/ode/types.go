package ode

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	return floats.Norm(s, 2)
}

// System is an autonomous ODE right-hand side.
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Hamiltonian is implemented by systems with a conserved energy.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator steppers additionally report a suggested next step size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      1.0,
		Tolerance:     1e-6,
		Adaptive:      false,
		ValidateState: true,
	}
}

// Trajectory is an ordered sequence of state samples at fixed time steps.
type Trajectory struct {
	States []State
	Times  []float64
}

func (tr *Trajectory) Len() int { return len(tr.States) }

// Position returns the first two state components at sample i.
func (tr *Trajectory) Position(i int) (x, y float64) {
	return tr.States[i][0], tr.States[i][1]
}
