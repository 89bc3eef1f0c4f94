package train

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/efe"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/nn"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/ode"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/orbit"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/units"
)

func TestAdamMinimizesQuadratic(t *testing.T) {
	params := []float64{1.0}
	opt := NewAdam(0.1, 1)

	for i := 0; i < 300; i++ {
		grad := []float64{2 * params[0]}
		opt.Step(params, grad)
	}

	if math.Abs(params[0]) > 1e-2 {
		t.Errorf("expected parameter near 0, got %f", params[0])
	}
}

func TestAdamReset(t *testing.T) {
	opt := NewAdam(0.1, 2)
	opt.Step([]float64{1, 1}, []float64{1, 1})
	opt.Reset()

	if opt.t != 0 || opt.m[0] != 0 || opt.v[1] != 0 {
		t.Error("reset did not clear optimizer state")
	}
}

func boundaryOnlyProblem() *Problem {
	return &Problem{
		Domain:  efe.DefaultDomain(),
		Colloc:  nil,
		C:       units.C,
		Weights: Weights{Residual: 0, Boundary: 1, Orbit: 0},
	}
}

func TestTrainerReducesBoundaryLoss(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	netA := nn.New([]int{1, 10, 1}, rng)
	netB := nn.New([]int{1, 10, 1}, rng)

	tr := New(boundaryOnlyProblem(), netA, netB, 1e-2)
	tc, err := tr.Run(context.Background(), 150)
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}

	if len(tc.History) != 150 {
		t.Fatalf("expected 150 history entries, got %d", len(tc.History))
	}
	for i, l := range tc.History {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			t.Fatalf("iteration %d: non-finite loss", i)
		}
	}
	if tc.History[len(tc.History)-1] >= tc.History[0] {
		t.Errorf("loss did not decrease: %f -> %f", tc.History[0], tc.History[len(tc.History)-1])
	}
}

func TestTrainerCallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	netA := nn.New([]int{1, 4, 1}, rng)
	netB := nn.New([]int{1, 4, 1}, rng)

	tr := New(boundaryOnlyProblem(), netA, netB, 1e-3)

	calls := 0
	tr.SetCallback(func(c *Context) {
		calls++
		if c.Iter != calls {
			t.Errorf("callback iter %d, expected %d", c.Iter, calls)
		}
		if len(c.History) != calls {
			t.Errorf("history length %d at call %d", len(c.History), calls)
		}
	})

	if _, err := tr.Run(context.Background(), 5); err != nil {
		t.Fatalf("training failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 callback calls, got %d", calls)
	}
}

func TestTrainerCancellation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	netA := nn.New([]int{1, 4, 1}, rng)
	netB := nn.New([]int{1, 4, 1}, rng)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := New(boundaryOnlyProblem(), netA, netB, 1e-3)
	if _, err := tr.Run(ctx, 100); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestTrainerRejectsZeroBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	netA := nn.New([]int{1, 4, 1}, rng)
	netB := nn.New([]int{1, 4, 1}, rng)

	tr := New(boundaryOnlyProblem(), netA, netB, 1e-3)
	if _, err := tr.Run(context.Background(), 0); err == nil {
		t.Error("expected error for zero iteration budget")
	}
}

func TestOrbitLossZeroForAnalyticMetric(t *testing.T) {
	// Integrating the geodesic system twice with the same metric and
	// comparing the two trajectories must give exactly zero.
	sol := efe.NewAnalytic(units.SchwarzschildRadius)
	geo := orbit.NewGeodesic(sol.G00, units.C)

	cfg := ode.Config{Dt: 0.01, Duration: 0.5, Tolerance: 0.1, Adaptive: true, ValidateState: true}
	integ := ode.NewRK45()
	integ.Atol = cfg.Tolerance

	x0 := ode.State{1, 0, 0, 2 * math.Pi}
	ref, err := ode.NewSolver(geo, integ).Run(context.Background(), x0.Clone(), cfg)
	if err != nil {
		t.Fatalf("reference solve failed: %v", err)
	}

	p := &Problem{
		Domain:   efe.DefaultDomain(),
		C:        units.C,
		Ref:      ref,
		X0:       x0,
		OrbitCfg: cfg,
		Weights:  Weights{Orbit: 1},
	}

	// A "network" that reproduces the analytic metric exactly: zeroed
	// weights with the output bias unreachable, so instead wrap via a
	// direct evaluation using the problem's own pathway.
	got, err := p.orbitLossWithMetric(context.Background(), sol.G00)
	if err != nil {
		t.Fatalf("orbit loss failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected zero loss for identical trajectories, got %e", got)
	}
}

func TestEvaluateShapes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	netA := nn.New([]int{1, 10, 1}, rng)
	netB := nn.New([]int{1, 10, 1}, rng)
	sol := efe.NewAnalytic(units.SchwarzschildRadius)

	ev := Evaluate(netA, netB, sol, efe.DefaultDomain(), 0.01)

	if len(ev.R) != 901 {
		t.Fatalf("expected 901 grid points, got %d", len(ev.R))
	}
	if len(ev.PredA) != len(ev.R) || len(ev.AnaB) != len(ev.R) {
		t.Fatal("evaluation slices must match the grid")
	}
	if ev.Chi2A < 0 || ev.Chi2B < 0 {
		t.Error("chi-squared must be non-negative")
	}

	m := ev.Metrics()
	for _, k := range []string{"chi2_dof_A", "chi2_dof_B", "rmse_A", "rmse_B"} {
		if _, ok := m[k]; !ok {
			t.Errorf("missing metric %s", k)
		}
	}
}
