package train

import (
	"github.com/lvb5/solve-PDEs-with-PINN/internal/efe"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/metrics"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/nn"
)

// Evaluation compares the trained fields against the closed-form solution
// on a dense radial grid. Computed once after training; read-only afterward.
type Evaluation struct {
	R []float64

	PredA []float64
	AnaA  []float64
	PredB []float64
	AnaB  []float64

	Chi2A float64
	Chi2B float64
	RMSEA float64
	RMSEB float64
}

// Evaluate samples both networks and the closed-form solution over the grid
// and computes per-field fit statistics.
func Evaluate(netA, netB *nn.Network, sol efe.Analytic, dom efe.Domain, dr float64) *Evaluation {
	grid := dom.Grid(dr)
	ev := &Evaluation{
		R:     grid,
		PredA: make([]float64, len(grid)),
		AnaA:  make([]float64, len(grid)),
		PredB: make([]float64, len(grid)),
		AnaB:  make([]float64, len(grid)),
	}

	for i, r := range grid {
		ev.PredA[i] = netA.Eval1(r)
		ev.AnaA[i] = sol.A(r)
		ev.PredB[i] = netB.Eval1(r)
		ev.AnaB[i] = sol.B(r)
	}

	ev.Chi2A = metrics.ChiSquaredPerDOF(ev.PredA, ev.AnaA, netA.NumParams())
	ev.Chi2B = metrics.ChiSquaredPerDOF(ev.PredB, ev.AnaB, netB.NumParams())
	ev.RMSEA = metrics.RMSE(ev.PredA, ev.AnaA)
	ev.RMSEB = metrics.RMSE(ev.PredB, ev.AnaB)

	return ev
}

// Metrics flattens the fit statistics into a named map for storage.
func (ev *Evaluation) Metrics() map[string]float64 {
	return map[string]float64{
		"chi2_dof_A": ev.Chi2A,
		"chi2_dof_B": ev.Chi2B,
		"rmse_A":     ev.RMSEA,
		"rmse_B":     ev.RMSEB,
	}
}
