package ode

import "fmt"

var integrators = map[string]func() Integrator{
	"euler": func() Integrator { return NewEuler() },
	"rk4":   func() Integrator { return NewRK4() },
	"rk45":  func() Integrator { return NewRK45() },
}

// NewIntegrator returns a fresh integrator by name.
func NewIntegrator(name string) (Integrator, error) {
	fn, ok := integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

// IntegratorNames lists the registered integrator names.
func IntegratorNames() []string {
	return []string{"euler", "rk4", "rk45"}
}
