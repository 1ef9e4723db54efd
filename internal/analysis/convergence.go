// Package analysis fits observed convergence rates of quadrature error
// curves.
package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrTooFewPoints indicates fewer than two usable (n, err) pairs.
var ErrTooFewPoints = errors.New("analysis: need at least two positive error samples to fit")

// Fit is a power-law fit err ≈ C * n^Order obtained by linear
// regression in log-log space. Order is negative for a converging
// method: −1 for first-order grid quadrature in points per axis, −0.5
// for Monte Carlo in total samples.
type Fit struct {
	Order    float64
	LogConst float64
	R2       float64
}

// FitOrder regresses log(err) on log(n). Zero or negative errors are
// skipped (an estimator occasionally lands exactly on the true value);
// at least two pairs must survive.
func FitOrder(ns []int, errs []float64) (Fit, error) {
	if len(ns) != len(errs) {
		return Fit{}, errors.New("analysis: mismatched sample lengths")
	}

	logN := make([]float64, 0, len(ns))
	logE := make([]float64, 0, len(errs))
	for i, n := range ns {
		if n < 1 || errs[i] <= 0 || math.IsNaN(errs[i]) || math.IsInf(errs[i], 0) {
			continue
		}
		logN = append(logN, math.Log(float64(n)))
		logE = append(logE, math.Log(errs[i]))
	}

	if len(logN) < 2 {
		return Fit{}, ErrTooFewPoints
	}

	alpha, beta := stat.LinearRegression(logN, logE, nil, false)
	r2 := stat.RSquared(logN, logE, nil, alpha, beta)

	return Fit{Order: beta, LogConst: alpha, R2: r2}, nil
}

// MeanAbs returns the mean absolute error of a curve, a scalar summary
// used when comparing methods at a glance.
func MeanAbs(errs []float64) float64 {
	if len(errs) == 0 {
		return 0
	}
	abs := make([]float64, len(errs))
	for i, e := range errs {
		abs[i] = math.Abs(e)
	}
	return floats.Sum(abs) / float64(len(abs))
}
