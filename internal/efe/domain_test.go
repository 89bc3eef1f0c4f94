package efe

import (
	"math"
	"math/rand"
	"testing"
)

func TestUniformEndpoints(t *testing.T) {
	d := DefaultDomain()
	pts := d.Uniform(10)

	if len(pts) != 10 {
		t.Fatalf("expected 10 points, got %d", len(pts))
	}
	if pts[0] != d.RMin || pts[len(pts)-1] != d.RMax {
		t.Errorf("endpoints not included: %f..%f", pts[0], pts[len(pts)-1])
	}
}

func TestSampleWithinBounds(t *testing.T) {
	d := DefaultDomain()
	rng := rand.New(rand.NewSource(42))

	for _, r := range d.Sample(100, rng) {
		if r < d.RMin || r > d.RMax {
			t.Fatalf("sample %f out of domain", r)
		}
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	d := DefaultDomain()
	a := d.Sample(10, rand.New(rand.NewSource(7)))
	b := d.Sample(10, rand.New(rand.NewSource(7)))

	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed must give same collocation points")
		}
	}
}

func TestGridSpacing(t *testing.T) {
	d := DefaultDomain()
	grid := d.Grid(0.01)

	if len(grid) != 901 {
		t.Errorf("expected 901 grid points, got %d", len(grid))
	}
	if math.Abs(grid[1]-grid[0]-0.01) > 1e-12 {
		t.Errorf("unexpected spacing %f", grid[1]-grid[0])
	}
}

func TestDerivatives(t *testing.T) {
	f := FieldFunc(func(r float64) float64 { return r * r * r })

	// d/dr r^3 = 3r^2, d2/dr2 = 6r at r=2.
	if got := Deriv1(f, 2, DerivStep); math.Abs(got-12) > 1e-3 {
		t.Errorf("expected first derivative ~12, got %f", got)
	}
	if got := Deriv2(f, 2, DerivStep); math.Abs(got-12) > 1e-3 {
		t.Errorf("expected second derivative ~12, got %f", got)
	}
}
