package efe

import "math"

// Analytic is the closed-form solution for a central mass with
// Schwarzschild radius Rs:
//
//	A(r) = 1 - Rs/r
//	B(r) = -1 / (1 - Rs/r)
//
// B diverges as r approaches Rs from above; the domain keeps well clear
// of that (Rs is ~2e-8 AU against RMin = 1 AU).
type Analytic struct {
	Rs float64
}

func NewAnalytic(rs float64) Analytic {
	return Analytic{Rs: rs}
}

func (s Analytic) A(r float64) float64 {
	return 1 - s.Rs/r
}

func (s Analytic) B(r float64) float64 {
	return -1 / (1 - s.Rs/r)
}

// G00 is the metric component fed to the geodesic system, evaluated at a
// planar point through the radial distance.
func (s Analytic) G00(x, y float64) float64 {
	r := math.Hypot(x, y)
	if r == 0 {
		return 1
	}
	return s.A(r)
}
