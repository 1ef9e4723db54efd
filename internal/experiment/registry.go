package experiment

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/kasakh/quadlab/internal/quad"
)

// Estimator adapts a quadrature routine to the sweep driver. rng is
// ignored by deterministic methods.
type Estimator struct {
	Name          string
	Deterministic bool
	Estimate      func(f quad.Integrand, dom quad.Domain, n, dim int, rng *rand.Rand) (float64, error)
}

var estimators = map[string]Estimator{
	"riemann": {
		Name:          "riemann",
		Deterministic: true,
		Estimate: func(f quad.Integrand, dom quad.Domain, n, dim int, _ *rand.Rand) (float64, error) {
			return quad.Riemann(f, dom, n, dim)
		},
	},
	"montecarlo": {
		Name:          "montecarlo",
		Deterministic: false,
		Estimate: func(f quad.Integrand, dom quad.Domain, n, dim int, rng *rand.Rand) (float64, error) {
			return quad.MonteCarlo(f, dom, n, dim, rng)
		},
	},
}

// GetEstimator looks up a quadrature method by name.
func GetEstimator(name string) (Estimator, error) {
	est, ok := estimators[name]
	if !ok {
		return Estimator{}, fmt.Errorf("unknown method: %s (available: %v)", name, Methods())
	}
	return est, nil
}

// Methods returns the registered method names in sorted order.
func Methods() []string {
	names := make([]string, 0, len(estimators))
	for name := range estimators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
