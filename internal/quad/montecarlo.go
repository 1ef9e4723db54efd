package quad

import (
	"math/rand"
	"sync"
	"time"
)

var (
	defaultRngMu sync.Mutex
	defaultRng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// MonteCarlo estimates the integral of f over dom^dim from n^dim
// i.i.d. uniform samples: the sample mean of f scaled by the domain
// volume. The sample count matches the Riemann grid at the same (n,
// dim) so the two estimators are comparable point for point.
//
// rng may be nil, in which case a shared time-seeded source is used and
// repeated calls with identical arguments yield different results.
// Passing an explicitly seeded rng makes the estimate reproducible.
func MonteCarlo(f Integrand, dom Domain, n, dim int, rng *rand.Rand) (float64, error) {
	if f == nil {
		return 0, ErrNilIntegrand
	}

	total, err := gridSize(dom, n, dim)
	if err != nil {
		return 0, err
	}

	width := dom.Width()
	p := make(Point, dim)
	sum := 0.0

	for i := 0; i < total; i++ {
		for ax := 0; ax < dim; ax++ {
			p[ax] = dom.Lower + width*uniform(rng)
		}
		sum += f(p)
	}

	return sum / float64(total) * dom.Volume(dim), nil
}

// MonteCarloN estimates the integral from an explicit total sample
// count instead of a per-axis count, for fixed-budget comparisons
// across dimensions.
func MonteCarloN(f Integrand, dom Domain, samples, dim int, rng *rand.Rand) (float64, error) {
	if f == nil {
		return 0, ErrNilIntegrand
	}
	if samples < 1 {
		return 0, ErrInvalidSamples
	}
	if dim < 1 {
		return 0, ErrInvalidDimension
	}
	if err := dom.Validate(); err != nil {
		return 0, err
	}

	width := dom.Width()
	p := make(Point, dim)
	sum := 0.0

	for i := 0; i < samples; i++ {
		for ax := 0; ax < dim; ax++ {
			p[ax] = dom.Lower + width*uniform(rng)
		}
		sum += f(p)
	}

	return sum / float64(samples) * dom.Volume(dim), nil
}

func uniform(rng *rand.Rand) float64 {
	if rng != nil {
		return rng.Float64()
	}
	defaultRngMu.Lock()
	v := defaultRng.Float64()
	defaultRngMu.Unlock()
	return v
}
