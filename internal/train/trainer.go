package train

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/nn"
)

// ErrDiverged indicates the loss became NaN or Inf. The run aborts; there
// is no retry or recovery.
var ErrDiverged = errors.New("train: loss diverged (NaN or Inf)")

// gradStep is the central-difference step for parameter gradients.
const gradStep = 1e-6

// Context is the explicit training state: current iteration, current loss
// and the append-only loss history. It is owned by Run and handed to the
// callback after every iteration.
type Context struct {
	Iter    int
	Loss    float64
	History []float64
}

// Callback observes training progress. It must not retain the Context.
type Callback func(c *Context)

type Trainer struct {
	NetA *nn.Network
	NetB *nn.Network
	Prob *Problem

	opt *Adam
	cb  Callback
}

func New(prob *Problem, netA, netB *nn.Network, lr float64) *Trainer {
	n := netA.NumParams() + netB.NumParams()
	return &Trainer{
		NetA: netA,
		NetB: netB,
		Prob: prob,
		opt:  NewAdam(lr, n),
	}
}

func (t *Trainer) SetCallback(cb Callback) { t.cb = cb }

// Run minimizes the composite loss for a fixed iteration budget. Any
// numerical failure aborts the run with the partial history intact.
func (t *Trainer) Run(ctx context.Context, iters int) (*Context, error) {
	if iters <= 0 {
		return nil, fmt.Errorf("train: iteration budget must be positive, got %d", iters)
	}

	params := append(t.NetA.Params(), t.NetB.Params()...)
	tc := &Context{History: make([]float64, 0, iters)}

	for it := 0; it < iters; it++ {
		select {
		case <-ctx.Done():
			return tc, ctx.Err()
		default:
		}

		grad, err := t.gradient(ctx, params)
		if err != nil {
			return tc, fmt.Errorf("train: iteration %d: %w", it, err)
		}

		t.opt.Step(params, grad)
		if err := t.apply(params); err != nil {
			return tc, err
		}

		loss, err := t.Prob.Loss(ctx, t.NetA, t.NetB)
		if err != nil {
			return tc, fmt.Errorf("train: iteration %d: %w", it, err)
		}
		if math.IsNaN(loss) || math.IsInf(loss, 0) {
			return tc, fmt.Errorf("train: iteration %d: %w", it, ErrDiverged)
		}

		tc.Iter = it + 1
		tc.Loss = loss
		tc.History = append(tc.History, loss)

		if t.cb != nil {
			t.cb(tc)
		}
	}

	return tc, nil
}

// gradient computes the central-difference gradient of the composite loss
// over the flat parameter vector. The orbit term only depends on the A
// network, so B-parameter perturbations skip the nested ODE solve.
func (t *Trainer) gradient(ctx context.Context, params []float64) ([]float64, error) {
	nA := t.NetA.NumParams()
	grad := make([]float64, len(params))

	for i := range params {
		withOrbit := i < nA

		orig := params[i]

		params[i] = orig + gradStep
		if err := t.apply(params); err != nil {
			return nil, err
		}
		lp, err := t.lossTerm(ctx, withOrbit)
		if err != nil {
			return nil, err
		}

		params[i] = orig - gradStep
		if err := t.apply(params); err != nil {
			return nil, err
		}
		lm, err := t.lossTerm(ctx, withOrbit)
		if err != nil {
			return nil, err
		}

		params[i] = orig
		grad[i] = (lp - lm) / (2 * gradStep)
	}

	return grad, t.apply(params)
}

// lossTerm evaluates only the loss terms the perturbed parameter can move.
func (t *Trainer) lossTerm(ctx context.Context, withOrbit bool) (float64, error) {
	total := t.Prob.PDELoss(t.NetA, t.NetB)
	if withOrbit && t.Prob.Weights.Orbit != 0 && t.Prob.Ref != nil {
		ol, err := t.Prob.OrbitLoss(ctx, t.NetA)
		if err != nil {
			return 0, err
		}
		total += t.Prob.Weights.Orbit * ol
	}
	return total, nil
}

func (t *Trainer) apply(params []float64) error {
	nA := t.NetA.NumParams()
	if err := t.NetA.SetParams(params[:nA]); err != nil {
		return err
	}
	return t.NetB.SetParams(params[nA:])
}
