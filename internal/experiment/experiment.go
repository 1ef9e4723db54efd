package experiment

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/kasakh/quadlab/internal/integrand"
	"github.com/kasakh/quadlab/internal/quad"
)

// Config describes one convergence sweep.
type Config struct {
	Integrand string
	Method    string
	Dim       int
	Ns        []int
	Trials    int
	Seed      int64
	Domain    quad.Domain
}

// Result holds per-N errors from a sweep. Errors[i] is the absolute
// error of the estimate at Ns[i] points per axis; for stochastic
// methods it is the mean absolute error over Config.Trials independent
// trials and Estimates[i] is the last trial's estimate.
type Result struct {
	Ns        []int
	Samples   []int
	Estimates []float64
	Errors    []float64
	TrueValue float64
}

type Experiment struct {
	cfg Config
	ig  integrand.Integrand
	est Estimator
}

func New(cfg Config) (*Experiment, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ig, err := integrand.Get(cfg.Integrand)
	if err != nil {
		return nil, err
	}

	est, err := GetEstimator(cfg.Method)
	if err != nil {
		return nil, err
	}

	return &Experiment{cfg: cfg, ig: ig, est: est}, nil
}

func (c Config) validate() error {
	if c.Dim < 1 {
		return quad.ErrInvalidDimension
	}
	if len(c.Ns) == 0 {
		return fmt.Errorf("experiment: empty N list")
	}
	for _, n := range c.Ns {
		if n < 1 {
			return quad.ErrInvalidSamples
		}
	}
	if c.Trials < 1 {
		return fmt.Errorf("experiment: trials must be at least 1, got %d", c.Trials)
	}
	return c.Domain.Validate()
}

// Run performs the sweep: one estimate per N for deterministic methods,
// a trial-averaged absolute error for stochastic ones. Cancellation is
// checked between N values.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	truth := e.ig.True(e.cfg.Domain, e.cfg.Dim)

	result := &Result{
		Ns:        make([]int, 0, len(e.cfg.Ns)),
		Samples:   make([]int, 0, len(e.cfg.Ns)),
		Estimates: make([]float64, 0, len(e.cfg.Ns)),
		Errors:    make([]float64, 0, len(e.cfg.Ns)),
		TrueValue: truth,
	}

	for _, n := range e.cfg.Ns {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		total, err := quad.GridSize(e.cfg.Domain, n, e.cfg.Dim)
		if err != nil {
			return result, err
		}

		estimate, meanErr, err := e.runPoint(n, truth)
		if err != nil {
			return result, err
		}

		result.Ns = append(result.Ns, n)
		result.Samples = append(result.Samples, total)
		result.Estimates = append(result.Estimates, estimate)
		result.Errors = append(result.Errors, meanErr)
	}

	return result, nil
}

// runPoint evaluates one N. Trials run concurrently with per-trial seed
// offsets so repeated sweeps with the same seed reproduce exactly.
func (e *Experiment) runPoint(n int, truth float64) (float64, float64, error) {
	trials := e.cfg.Trials
	if e.est.Deterministic {
		trials = 1
	}

	estimates := make([]float64, trials)
	errs := make([]error, trials)

	var wg sync.WaitGroup
	for i := 0; i < trials; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(e.cfg.Seed + int64(idx)))
			estimates[idx], errs[idx] = e.est.Estimate(e.ig.F, e.cfg.Domain, n, e.cfg.Dim, rng)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return 0, 0, err
		}
	}

	sumErr := 0.0
	for _, est := range estimates {
		sumErr += math.Abs(est - truth)
	}

	return estimates[trials-1], sumErr / float64(trials), nil
}
