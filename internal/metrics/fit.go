// Package metrics provides goodness-of-fit statistics for comparing
// predicted fields against the closed-form solution.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// refFloor guards the chi-squared denominator where the reference is ~0.
const refFloor = 1e-12

// ChiSquaredPerDOF is sum((pred-ref)^2/|ref|) divided by (n - params).
func ChiSquaredPerDOF(pred, ref []float64, params int) float64 {
	if len(pred) != len(ref) {
		panic("metrics: length mismatch")
	}
	dof := len(pred) - params
	if dof <= 0 {
		dof = 1
	}
	sum := 0.0
	for i := range pred {
		d := pred[i] - ref[i]
		sum += d * d / math.Max(math.Abs(ref[i]), refFloor)
	}
	return sum / float64(dof)
}

// RMSE is the root-mean-square error between pred and ref.
func RMSE(pred, ref []float64) float64 {
	if len(pred) != len(ref) {
		panic("metrics: length mismatch")
	}
	return floats.Distance(pred, ref, 2) / math.Sqrt(float64(len(pred)))
}

// MaxAbsErr is the largest pointwise deviation.
func MaxAbsErr(pred, ref []float64) float64 {
	if len(pred) != len(ref) {
		panic("metrics: length mismatch")
	}
	maxd := 0.0
	for i := range pred {
		if d := math.Abs(pred[i] - ref[i]); d > maxd {
			maxd = d
		}
	}
	return maxd
}

// HistorySummary reports mean and standard deviation of a loss history.
func HistorySummary(history []float64) (mean, std float64) {
	if len(history) == 0 {
		return 0, 0
	}
	mean = stat.Mean(history, nil)
	std = stat.StdDev(history, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}
