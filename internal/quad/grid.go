package quad

import "math"

// Grid materializes the full Cartesian grid of n equally spaced values
// per axis over dom, in dim dimensions. Points are emitted in odometer
// order: the first axis is the most significant digit, the last axis
// varies fastest. Every one of the n^dim axis-value combinations
// appears exactly once.
//
// Endpoints are inclusive. With n == 1 the single axis value is the
// lower bound. The caller is responsible for keeping n^dim tractable;
// only counter overflow is rejected here.
func Grid(dom Domain, n, dim int) ([]Point, error) {
	total, err := gridSize(dom, n, dim)
	if err != nil {
		return nil, err
	}

	axis := axisValues(dom, n)
	points := make([]Point, total)

	for idx := 0; idx < total; idx++ {
		p := make(Point, dim)
		rem := idx
		for ax := dim - 1; ax >= 0; ax-- {
			p[ax] = axis[rem%n]
			rem /= n
		}
		points[idx] = p
	}

	return points, nil
}

// GridSize returns n^dim after validating the estimator preconditions.
func GridSize(dom Domain, n, dim int) (int, error) {
	return gridSize(dom, n, dim)
}

func gridSize(dom Domain, n, dim int) (int, error) {
	if n < 1 {
		return 0, ErrInvalidSamples
	}
	if dim < 1 {
		return 0, ErrInvalidDimension
	}
	if err := dom.Validate(); err != nil {
		return 0, err
	}

	total := 1
	for i := 0; i < dim; i++ {
		if total > math.MaxInt/n {
			return 0, ErrGridTooLarge
		}
		total *= n
	}
	return total, nil
}

// axisValues returns the n equally spaced values in [dom.Lower,
// dom.Upper], both endpoints included. n == 1 degenerates to the lower
// bound alone.
func axisValues(dom Domain, n int) []float64 {
	vals := make([]float64, n)
	if n == 1 {
		vals[0] = dom.Lower
		return vals
	}
	step := dom.Width() / float64(n-1)
	for i := 0; i < n; i++ {
		vals[i] = dom.Lower + float64(i)*step
	}
	vals[n-1] = dom.Upper
	return vals
}
