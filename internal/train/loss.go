package train

import (
	"context"
	"math"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/efe"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/nn"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/ode"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/orbit"
)

// Weights scales the three terms of the composite loss.
type Weights struct {
	Residual float64
	Boundary float64
	Orbit    float64
}

func DefaultWeights() Weights {
	return Weights{Residual: 1.0, Boundary: 1.0, Orbit: 1.0}
}

// Problem bundles everything a loss evaluation needs besides the networks:
// the radial domain, fixed collocation points, the reference trajectory and
// the configuration of the nested geodesic solve.
type Problem struct {
	Domain  efe.Domain
	Colloc  []float64
	C       float64
	Ref     *ode.Trajectory
	X0      ode.State
	OrbitCfg ode.Config
	Weights Weights
}

// PDELoss is the mean squared residual over the collocation points plus the
// squared boundary terms, weighted.
func (p *Problem) PDELoss(netA, netB *nn.Network) float64 {
	fieldA := efe.FieldFunc(netA.Eval1)
	fieldB := efe.FieldFunc(netB.Eval1)

	resLoss := 0.0
	if len(p.Colloc) > 0 {
		set := efe.NewResidualSet(fieldA, fieldB)
		for _, r := range p.Colloc {
			res := set.Eval(r)
			resLoss += res[0]*res[0] + res[1]*res[1] + res[2]*res[2]
		}
		resLoss /= float64(len(p.Colloc))
	}

	bcA, bcB := efe.BoundaryResiduals(fieldA, fieldB, p.Domain.RMax)
	bcLoss := bcA*bcA + bcB*bcB

	return p.Weights.Residual*resLoss + p.Weights.Boundary*bcLoss
}

// OrbitLoss integrates the geodesic system under the candidate metric and
// sums the pointwise distance to the reference trajectory. One full ODE
// solve per call.
func (p *Problem) OrbitLoss(ctx context.Context, netA *nn.Network) (float64, error) {
	return p.orbitLossWithMetric(ctx, func(x, y float64) float64 {
		return netA.Eval1(math.Hypot(x, y))
	})
}

func (p *Problem) orbitLossWithMetric(ctx context.Context, g00 orbit.Metric) (float64, error) {
	geo := orbit.NewGeodesic(g00, p.C)

	integ := ode.NewRK45()
	integ.Atol = p.OrbitCfg.Tolerance
	solver := ode.NewSolver(geo, integ)

	tr, err := solver.Run(ctx, p.X0.Clone(), p.OrbitCfg)
	if err != nil {
		return 0, err
	}
	return orbit.TrajectoryDistance(tr, p.Ref), nil
}

// Loss is the full composite loss.
func (p *Problem) Loss(ctx context.Context, netA, netB *nn.Network) (float64, error) {
	total := p.PDELoss(netA, netB)
	if p.Weights.Orbit != 0 && p.Ref != nil {
		ol, err := p.OrbitLoss(ctx, netA)
		if err != nil {
			return 0, err
		}
		total += p.Weights.Orbit * ol
	}
	return total, nil
}
