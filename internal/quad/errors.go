package quad

import "errors"

// Domain errors for estimator preconditions.
var (
	// ErrInvalidSamples indicates a points-per-axis count below 1.
	ErrInvalidSamples = errors.New("quad: points per axis must be at least 1")

	// ErrInvalidDimension indicates a dimensionality below 1.
	ErrInvalidDimension = errors.New("quad: dimension must be at least 1")

	// ErrInvalidDomain indicates a lower bound above the upper bound.
	ErrInvalidDomain = errors.New("quad: domain lower bound exceeds upper bound")

	// ErrGridTooLarge indicates n^d overflows the point counter.
	ErrGridTooLarge = errors.New("quad: grid size n^d overflows")

	// ErrNilIntegrand indicates a missing integrand function.
	ErrNilIntegrand = errors.New("quad: integrand is nil")
)
