// Package integrand provides named test integrands with analytically
// known integrals, so experiments can report true absolute error.
package integrand

import (
	"fmt"
	"math"
	"sort"

	"github.com/kasakh/quadlab/internal/quad"
)

// Integrand is a test function paired with the closed form of its
// integral over [dom.Lower, dom.Upper]^dim.
type Integrand struct {
	Name        string
	Description string
	F           quad.Integrand
	True        func(dom quad.Domain, dim int) float64
}

var catalog = map[string]Integrand{
	"quadratic": {
		Name:        "quadratic",
		Description: "1 - mean of squared coordinates",
		F: func(p quad.Point) float64 {
			sum := 0.0
			for _, x := range p {
				sum += x * x
			}
			return 1 - sum/float64(len(p))
		},
		// Per-axis integral of x^2 over [a,b] is (b^3-a^3)/3; the mean
		// over axes keeps the value independent of dim.
		True: func(dom quad.Domain, dim int) float64 {
			a, b := dom.Lower, dom.Upper
			w := dom.Width()
			if w == 0 {
				return 0
			}
			meanSq := (b*b*b - a*a*a) / 3 / w
			return (1 - meanSq) * dom.Volume(dim)
		},
	},
	"coscube": {
		Name:        "coscube",
		Description: "product of cos(x_i)",
		F: func(p quad.Point) float64 {
			v := 1.0
			for _, x := range p {
				v *= math.Cos(x)
			}
			return v
		},
		True: func(dom quad.Domain, dim int) float64 {
			per := math.Sin(dom.Upper) - math.Sin(dom.Lower)
			return math.Pow(per, float64(dim))
		},
	},
	"gaussian": {
		Name:        "gaussian",
		Description: "exp(-sum of squared coordinates)",
		F: func(p quad.Point) float64 {
			sum := 0.0
			for _, x := range p {
				sum += x * x
			}
			return math.Exp(-sum)
		},
		True: func(dom quad.Domain, dim int) float64 {
			per := math.Sqrt(math.Pi) / 2 * (math.Erf(dom.Upper) - math.Erf(dom.Lower))
			return math.Pow(per, float64(dim))
		},
	},
}

// Get looks up an integrand by name.
func Get(name string) (Integrand, error) {
	ig, ok := catalog[name]
	if !ok {
		return Integrand{}, fmt.Errorf("unknown integrand: %s (available: %v)", name, List())
	}
	return ig, nil
}

// List returns the catalog names in sorted order.
func List() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
