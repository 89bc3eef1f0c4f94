package orbit

import (
	"math"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/ode"
)

// float32Eps is the single-precision machine epsilon (2^-23).
const float32Eps = 1.1920928955078125e-07

// FDStep is the central-difference step used for metric gradients.
var FDStep = math.Sqrt(float32Eps)

// Metric is a candidate g00 component evaluated at a planar point.
type Metric func(x, y float64) float64

// Geodesic is the weak-field geodesic system for a candidate metric:
// acceleration is -c^2/2 times the spatial gradient of g00, with the
// gradient taken by symmetric finite differences of step FDStep.
type Geodesic struct {
	g00 Metric
	c2  float64
	eps float64
}

func NewGeodesic(g00 Metric, c float64) *Geodesic {
	return &Geodesic{g00: g00, c2: c * c, eps: FDStep}
}

func (g *Geodesic) Dim() int { return 4 }

func (g *Geodesic) Derive(x ode.State, t float64) ode.State {
	px, py := x[0], x[1]
	dx := (g.g00(px+g.eps, py) - g.g00(px-g.eps, py)) / (2 * g.eps)
	dy := (g.g00(px, py+g.eps) - g.g00(px, py-g.eps)) / (2 * g.eps)
	return ode.State{x[2], x[3], -0.5 * g.c2 * dx, -0.5 * g.c2 * dy}
}

// TrajectoryDistance sums the pointwise Euclidean distance between the
// positions of two trajectories. If the sample counts differ the sum
// truncates to the shorter trajectory.
func TrajectoryDistance(a, b *ode.Trajectory) float64 {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		ax, ay := a.Position(i)
		bx, by := b.Position(i)
		sum += math.Hypot(ax-bx, ay-by)
	}
	return sum
}
