package quad

// Riemann estimates the integral of f over dom^dim with a full grid of
// n points per axis: the mean of f over the n^dim grid points scaled by
// the domain volume. Deterministic: identical arguments always yield
// bit-identical results.
func Riemann(f Integrand, dom Domain, n, dim int) (float64, error) {
	if f == nil {
		return 0, ErrNilIntegrand
	}

	points, err := Grid(dom, n, dim)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, p := range points {
		sum += f(p)
	}

	return sum / float64(len(points)) * dom.Volume(dim), nil
}
