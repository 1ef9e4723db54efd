package quad_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kasakh/quadlab/internal/analysis"
	"github.com/kasakh/quadlab/internal/quad"
)

var quadratic = func(p quad.Point) float64 {
	sum := 0.0
	for _, x := range p {
		sum += x * x
	}
	return 1 - sum/float64(len(p))
}

const truth = 2.0 / 3.0

var _ = Describe("convergence rates", func() {
	ns := []int{4, 8, 16, 32, 64, 128, 256}

	Describe("Riemann", func() {
		It("fits a first-order error curve in points per axis", func() {
			errs := make([]float64, len(ns))
			for i, n := range ns {
				est, err := quad.Riemann(quadratic, quad.UnitDomain(), n, 1)
				Expect(err).NotTo(HaveOccurred())
				errs[i] = math.Abs(est - truth)
			}

			fit, err := analysis.FitOrder(ns, errs)
			Expect(err).NotTo(HaveOccurred())
			Expect(fit.Order).To(BeNumerically("~", -1.0, 0.2))
			Expect(fit.R2).To(BeNumerically(">", 0.99))
		})
	})

	Describe("MonteCarlo", func() {
		It("fits a half-order error curve in total samples", func() {
			const trials = 128

			errs := make([]float64, len(ns))
			for i, n := range ns {
				sum := 0.0
				for trial := 0; trial < trials; trial++ {
					rng := rand.New(rand.NewSource(int64(100*n + trial)))
					est, err := quad.MonteCarlo(quadratic, quad.UnitDomain(), n, 1, rng)
					Expect(err).NotTo(HaveOccurred())
					sum += math.Abs(est - truth)
				}
				errs[i] = sum / trials
			}

			fit, err := analysis.FitOrder(ns, errs)
			Expect(err).NotTo(HaveOccurred())
			Expect(fit.Order).To(BeNumerically("~", -0.5, 0.15))
		})

		It("loses no accuracy when a fixed budget is spread over more axes", func() {
			const samples = 2048
			const trials = 32

			meanErr := func(dim int) float64 {
				sum := 0.0
				for trial := 0; trial < trials; trial++ {
					rng := rand.New(rand.NewSource(int64(9000 + trial)))
					est, err := quad.MonteCarloN(quadratic, quad.UnitDomain(), samples, dim, rng)
					Expect(err).NotTo(HaveOccurred())
					sum += math.Abs(est - truth)
				}
				return sum / trials
			}

			low := meanErr(1)
			high := meanErr(5)
			Expect(high).To(BeNumerically("<", low*10))
			Expect(low).To(BeNumerically("<", high*10))
		})
	})
})
