package train

import "math"

// Adam is a first-order adaptive optimizer over a flat parameter vector.
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	m, v []float64
	t    int
}

func NewAdam(lr float64, n int) *Adam {
	return &Adam{
		LearningRate: lr,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
		m:            make([]float64, n),
		v:            make([]float64, n),
	}
}

// Step updates params in place from the gradient.
func (a *Adam) Step(params, grad []float64) {
	a.t++
	bc1 := 1 - math.Pow(a.Beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.Beta2, float64(a.t))

	for i := range params {
		a.m[i] = a.Beta1*a.m[i] + (1-a.Beta1)*grad[i]
		a.v[i] = a.Beta2*a.v[i] + (1-a.Beta2)*grad[i]*grad[i]

		mHat := a.m[i] / bc1
		vHat := a.v[i] / bc2

		params[i] -= a.LearningRate * mHat / (math.Sqrt(vHat) + a.Epsilon)
	}
}

// Reset clears the moment estimates.
func (a *Adam) Reset() {
	for i := range a.m {
		a.m[i] = 0
		a.v[i] = 0
	}
	a.t = 0
}
