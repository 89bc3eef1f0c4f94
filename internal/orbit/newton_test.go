package orbit

import (
	"context"
	"math"
	"testing"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/ode"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/units"
)

func TestNewtonianRadialFallStaysOnAxis(t *testing.T) {
	n := NewNewtonian(units.GM)
	s := ode.NewSolver(n, ode.NewRK4())
	cfg := ode.Config{Dt: 0.001, Duration: 0.1, ValidateState: true}

	// Released at rest on the x axis: no force component ever points off it.
	tr, err := s.Run(context.Background(), ode.State{1, 0, 0, 0}, cfg)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	for i := 0; i < tr.Len(); i++ {
		_, y := tr.Position(i)
		if y != 0 {
			t.Fatalf("sample %d: trajectory left the radial line, y=%e", i, y)
		}
		if tr.States[i][3] != 0 {
			t.Fatalf("sample %d: transverse velocity appeared, vy=%e", i, tr.States[i][3])
		}
	}
}

func TestNewtonianEnergyConservation(t *testing.T) {
	n := NewNewtonian(units.GM)
	s := ode.NewSolver(n, ode.NewRK4())
	cfg := ode.Config{Dt: 0.001, Duration: 0.1, ValidateState: true}

	x0 := ode.State{1, 0, 0, 0}
	tr, err := s.Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	e0 := n.Energy(x0)
	for i := 0; i < tr.Len(); i++ {
		e := n.Energy(tr.States[i])
		if math.Abs(e-e0)/math.Abs(e0) > 1e-5 {
			t.Fatalf("sample %d: energy drifted from %f to %f", i, e0, e)
		}
	}
}

func TestNewtonianAcceleration(t *testing.T) {
	n := NewNewtonian(1.0)

	// At r=4 on the x axis the force magnitude is GM/sqrt(4) = 0.5.
	dx := n.Derive(ode.State{4, 0, 0, 0}, 0)
	if math.Abs(dx[2]+0.5) > 1e-12 {
		t.Errorf("expected ax=-0.5, got %f", dx[2])
	}
	if dx[3] != 0 {
		t.Errorf("expected ay=0, got %f", dx[3])
	}
}

func TestNewtonianEnergyValue(t *testing.T) {
	n := NewNewtonian(2.0)
	x := ode.State{4, 0, 3, 4}

	// 0.5*(9+16) + 2*2*sqrt(4) = 12.5 + 8
	want := 20.5
	if got := n.Energy(x); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected energy %f, got %f", want, got)
	}
}
