// Package quad provides the two quadrature estimators the experiments
// compare:
//
//   - [Riemann]: deterministic mean over a full Cartesian grid of n
//     points per axis (n^dim evaluations)
//   - [MonteCarlo]: stochastic mean over the same number of i.i.d.
//     uniform samples
//
// Both consume the same [Integrand] over the same [Domain], so a run at
// identical (n, dim) spends identical evaluation budget on each method.
//
// # Error scaling
//
// For a smooth integrand, Riemann error shrinks as O(1/n) at fixed dim
// (so O(total^(-1/dim)) in total evaluations), while Monte Carlo error
// shrinks as O(1/sqrt(total)) regardless of dim. The crossover as dim
// grows is the point of the whole exercise.
package quad
