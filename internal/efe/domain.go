package efe

import "math/rand"

// Domain is the radial interval the fields are solved on.
type Domain struct {
	RMin float64
	RMax float64
}

func DefaultDomain() Domain {
	return Domain{RMin: 1.0, RMax: 10.0}
}

// Uniform returns n evenly spaced points including both endpoints.
func (d Domain) Uniform(n int) []float64 {
	if n < 2 {
		return []float64{d.RMin}
	}
	pts := make([]float64, n)
	step := (d.RMax - d.RMin) / float64(n-1)
	for i := range pts {
		pts[i] = d.RMin + float64(i)*step
	}
	pts[n-1] = d.RMax
	return pts
}

// Sample draws n collocation points uniformly at random from the interior.
func (d Domain) Sample(n int, rng *rand.Rand) []float64 {
	pts := make([]float64, n)
	for i := range pts {
		pts[i] = d.RMin + rng.Float64()*(d.RMax-d.RMin)
	}
	return pts
}

// Grid returns points from RMin to RMax at spacing dr.
func (d Domain) Grid(dr float64) []float64 {
	n := int((d.RMax-d.RMin)/dr) + 1
	pts := make([]float64, 0, n)
	for r := d.RMin; r <= d.RMax+dr/2; r += dr {
		pts = append(pts, r)
	}
	return pts
}
