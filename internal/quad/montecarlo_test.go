package quad

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestMonteCarloSeededReproducibility(t *testing.T) {
	a, err := MonteCarlo(quadratic, UnitDomain(), 32, 2, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("montecarlo failed: %v", err)
	}
	b, err := MonteCarlo(quadratic, UnitDomain(), 32, 2, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("montecarlo failed: %v", err)
	}
	if a != b {
		t.Errorf("same seed should reproduce the estimate: %v vs %v", a, b)
	}
}

func TestMonteCarloNilRngVaries(t *testing.T) {
	a, err := MonteCarlo(quadratic, UnitDomain(), 64, 1, nil)
	if err != nil {
		t.Fatalf("montecarlo failed: %v", err)
	}
	b, err := MonteCarlo(quadratic, UnitDomain(), 64, 1, nil)
	if err != nil {
		t.Fatalf("montecarlo failed: %v", err)
	}
	if a == b {
		t.Errorf("repeated unseeded calls should differ, both returned %v", a)
	}
}

func TestMonteCarloMeanErrorShrinks(t *testing.T) {
	// Mean absolute error over many trials should drop when the sample
	// count rises by a factor 16 (expected error drop: factor 4).
	const truth = 2.0 / 3.0
	const trials = 64

	meanAbsErr := func(n int) float64 {
		sum := 0.0
		for i := 0; i < trials; i++ {
			rng := rand.New(rand.NewSource(int64(1000 + i)))
			est, err := MonteCarlo(quadratic, UnitDomain(), n, 1, rng)
			if err != nil {
				t.Fatalf("montecarlo(n=%d) failed: %v", n, err)
			}
			sum += math.Abs(est - truth)
		}
		return sum / trials
	}

	coarse := meanAbsErr(16)
	fine := meanAbsErr(256)

	if fine >= coarse {
		t.Errorf("mean error should shrink with samples: n=16 err=%e, n=256 err=%e", coarse, fine)
	}
	// Crude scaling check: a 16x budget should buy roughly 4x accuracy;
	// allow a factor-2 band either way.
	ratio := coarse / fine
	if ratio < 2 || ratio > 8 {
		t.Errorf("error ratio %f outside the 1/sqrt(M) band [2, 8]", ratio)
	}
}

func TestMonteCarloBudgetIndependentOfDimension(t *testing.T) {
	// At a fixed total sample count the error depends only on the
	// integrand's variance, not on how the budget splits across axes.
	const samples = 4096
	const trials = 32

	meanAbsErr := func(dim int) float64 {
		truth := 2.0 / 3.0
		sum := 0.0
		for i := 0; i < trials; i++ {
			rng := rand.New(rand.NewSource(int64(5000 + i)))
			est, err := MonteCarloN(quadratic, UnitDomain(), samples, dim, rng)
			if err != nil {
				t.Fatalf("montecarlo(dim=%d) failed: %v", dim, err)
			}
			sum += math.Abs(est - truth)
		}
		return sum / trials
	}

	min, max := math.Inf(1), 0.0
	for dim := 1; dim <= 4; dim++ {
		e := meanAbsErr(dim)
		if e < min {
			min = e
		}
		if e > max {
			max = e
		}
	}

	if max/min > 10 {
		t.Errorf("fixed-budget error should stay within an order of magnitude across dimensions: min=%e max=%e", min, max)
	}
}

func TestMonteCarloPreconditions(t *testing.T) {
	tests := []struct {
		name string
		dom  Domain
		n    int
		dim  int
		want error
	}{
		{"zero n", UnitDomain(), 0, 1, ErrInvalidSamples},
		{"zero dim", UnitDomain(), 4, 0, ErrInvalidDimension},
		{"inverted domain", Domain{Lower: 2, Upper: 1}, 4, 1, ErrInvalidDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MonteCarlo(quadratic, tt.dom, tt.n, tt.dim, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("MonteCarlo: expected %v, got %v", tt.want, err)
			}
			_, err = MonteCarloN(quadratic, tt.dom, tt.n, tt.dim, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("MonteCarloN: expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := MonteCarlo(nil, UnitDomain(), 4, 1, nil); !errors.Is(err, ErrNilIntegrand) {
		t.Errorf("expected ErrNilIntegrand, got %v", err)
	}
}
