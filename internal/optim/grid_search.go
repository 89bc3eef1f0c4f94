// Package optim provides hyperparameter search over short training runs.
package optim

import (
	"context"
	"math"
)

// RunFunc executes one training run with the given hyperparameters and
// returns the value of the objective metric.
type RunFunc func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every grid point and returns the parameters with the
// lowest objective. Failed runs are skipped.
func (g *GridSearch) Search(ctx context.Context, run RunFunc) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), run, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	run RunFunc,
	best *float64,
	bestParams *map[string]float64,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if depth == len(g.paramNames) {
		val, err := run(ctx, current)
		if err != nil {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, run, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}
