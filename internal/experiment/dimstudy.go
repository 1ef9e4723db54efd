package experiment

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/kasakh/quadlab/internal/integrand"
	"github.com/kasakh/quadlab/internal/quad"
)

// DimRow is one dimension's entry in a fixed-budget study.
type DimRow struct {
	Dim          int
	GridN        int     // points per axis for the Riemann grid
	GridSamples  int     // GridN^Dim, as close to the budget as possible
	RiemannErr   float64 // absolute error of the grid estimate
	MonteSamples int     // exact budget spent by Monte Carlo
	MonteErr     float64 // trial-averaged absolute error
}

// DimStudy holds total evaluation budget approximately constant while
// dimension varies: Riemann uses the largest n with n^dim <= budget,
// Monte Carlo spends exactly the budget. Monte Carlo error should stay
// roughly flat across rows while Riemann error climbs with dimension.
func DimStudy(ctx context.Context, name string, dims []int, budget, trials int, seed int64, dom quad.Domain) ([]DimRow, error) {
	if budget < 1 {
		return nil, quad.ErrInvalidSamples
	}
	if trials < 1 {
		trials = 1
	}
	if err := dom.Validate(); err != nil {
		return nil, err
	}

	ig, err := integrand.Get(name)
	if err != nil {
		return nil, err
	}

	rows := make([]DimRow, 0, len(dims))
	for _, dim := range dims {
		select {
		case <-ctx.Done():
			return rows, ctx.Err()
		default:
		}

		if dim < 1 {
			return rows, quad.ErrInvalidDimension
		}

		truth := ig.True(dom, dim)
		n := axisCountForBudget(budget, dim)

		gridEst, err := quad.Riemann(ig.F, dom, n, dim)
		if err != nil {
			return rows, err
		}

		monteErr, err := trialAverage(ig, dom, budget, dim, trials, seed, truth)
		if err != nil {
			return rows, err
		}

		rows = append(rows, DimRow{
			Dim:          dim,
			GridN:        n,
			GridSamples:  pow(n, dim),
			RiemannErr:   math.Abs(gridEst - truth),
			MonteSamples: budget,
			MonteErr:     monteErr,
		})
	}

	return rows, nil
}

func trialAverage(ig integrand.Integrand, dom quad.Domain, samples, dim, trials int, seed int64, truth float64) (float64, error) {
	errsAbs := make([]float64, trials)
	errs := make([]error, trials)

	var wg sync.WaitGroup
	for i := 0; i < trials; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(idx)))
			est, err := quad.MonteCarloN(ig.F, dom, samples, dim, rng)
			if err != nil {
				errs[idx] = err
				return
			}
			errsAbs[idx] = math.Abs(est - truth)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}

	sum := 0.0
	for _, e := range errsAbs {
		sum += e
	}
	return sum / float64(trials), nil
}

// axisCountForBudget returns the largest n with n^dim <= budget, at
// least 1.
func axisCountForBudget(budget, dim int) int {
	n := int(math.Floor(math.Pow(float64(budget), 1/float64(dim))))
	for pow(n+1, dim) <= budget {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

func pow(n, d int) int {
	v := 1
	for i := 0; i < d; i++ {
		v *= n
	}
	return v
}
