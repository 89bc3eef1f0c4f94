package optim

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestGridSearchFindsMinimum(t *testing.T) {
	gs := NewGridSearch(
		[]string{"x", "y"},
		[][]float64{{-1, 0, 1, 2}, {-1, 0, 1}},
	)

	// Objective (x-1)^2 + y^2 has its grid minimum at x=1, y=0.
	best, val, err := gs.Search(context.Background(), func(ctx context.Context, p map[string]float64) (float64, error) {
		return (p["x"]-1)*(p["x"]-1) + p["y"]*p["y"], nil
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if best["x"] != 1 || best["y"] != 0 {
		t.Errorf("expected minimum at (1,0), got (%f,%f)", best["x"], best["y"])
	}
	if val != 0 {
		t.Errorf("expected objective 0, got %f", val)
	}
}

func TestGridSearchSkipsFailedRuns(t *testing.T) {
	gs := NewGridSearch([]string{"x"}, [][]float64{{0, 1, 2}})

	best, val, err := gs.Search(context.Background(), func(ctx context.Context, p map[string]float64) (float64, error) {
		if p["x"] == 0 {
			return 0, errors.New("unstable")
		}
		return p["x"], nil
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if best["x"] != 1 || val != 1 {
		t.Errorf("expected best x=1 val=1, got x=%f val=%f", best["x"], val)
	}
}

func TestGridSearchCancellation(t *testing.T) {
	gs := NewGridSearch([]string{"x"}, [][]float64{{0, 1, 2}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := gs.Search(ctx, func(ctx context.Context, p map[string]float64) (float64, error) {
		return 0, nil
	})
	if err == nil {
		t.Error("expected cancellation error")
	}
}

func TestGridSearchEmptyResult(t *testing.T) {
	gs := NewGridSearch([]string{"x"}, [][]float64{{0, 1}})

	best, val, err := gs.Search(context.Background(), func(ctx context.Context, p map[string]float64) (float64, error) {
		return 0, errors.New("always fails")
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if best != nil {
		t.Error("expected nil params when every run fails")
	}
	if !math.IsInf(val, 1) {
		t.Error("expected +Inf objective when every run fails")
	}
}
