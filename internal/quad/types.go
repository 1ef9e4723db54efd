package quad

import "math"

// Point is one coordinate tuple in the integration domain.
type Point []float64

func (p Point) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Integrand is a pure function over a point. Both estimators evaluate
// the same integrand; implementations must not keep state across calls.
type Integrand func(p Point) float64

// Domain is the per-axis integration interval. The same interval is
// used for every axis, so the full domain is [Lower, Upper]^dim.
type Domain struct {
	Lower float64
	Upper float64
}

// UnitDomain is the unit hypercube interval [0, 1].
func UnitDomain() Domain {
	return Domain{Lower: 0, Upper: 1}
}

func (d Domain) Validate() error {
	if math.IsNaN(d.Lower) || math.IsNaN(d.Upper) || d.Lower > d.Upper {
		return ErrInvalidDomain
	}
	return nil
}

// Width returns the per-axis interval length.
func (d Domain) Width() float64 {
	return d.Upper - d.Lower
}

// Volume returns the measure of [Lower, Upper]^dim.
func (d Domain) Volume(dim int) float64 {
	return math.Pow(d.Width(), float64(dim))
}
