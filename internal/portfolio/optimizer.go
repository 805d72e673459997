package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/wonny/frontier/internal/contracts"
)

// Options configures a constrained solve. The zero value disables everything;
// use DefaultOptions for the standard long-only fully-invested setup.
type Options struct {
	// EnforceWeightSum adds the equality constraint sum(w) == 1.
	EnforceWeightSum bool
	// EnforceBounds restricts each weight to [0, 1].
	EnforceBounds bool
	// TargetReturn pins the portfolio's annualized return (frontier points).
	TargetReturn *float64
	// TargetVolatility pins the annualized volatility. Only valid for the
	// Sharpe-maximizing objective, mutually exclusive with TargetReturn.
	TargetVolatility *float64
}

// DefaultOptions returns the long-only, fully-invested configuration.
func DefaultOptions() Options {
	return Options{EnforceWeightSum: true, EnforceBounds: true}
}

// Optimizer solves mean-variance weight problems with equality and bound
// constraints. It is stateless and safe for concurrent use.
type Optimizer struct {
	maxIterations int
	tolerance     float64
}

// NewOptimizer creates an optimizer with the given iteration budget per solve
// and absolute constraint-violation tolerance. Non-positive arguments fall
// back to 1000 iterations and 1e-6.
func NewOptimizer(maxIterations int, tolerance float64) *Optimizer {
	if maxIterations <= 0 {
		maxIterations = 1000
	}
	if tolerance <= 0 {
		tolerance = 1e-6
	}
	return &Optimizer{maxIterations: maxIterations, tolerance: tolerance}
}

// constraintKind identifies an equality constraint in the solve.
type constraintKind string

const (
	constraintWeightSum        constraintKind = "weight_sum"
	constraintTargetReturn     constraintKind = "target_return"
	constraintTargetVolatility constraintKind = "target_volatility"
)

// constraint is an equality-constraint descriptor: residual value (zero when
// satisfied) and its gradient accumulator. The descriptor list is assembled
// once per call.
type constraint struct {
	Kind   constraintKind
	Target float64
	value  func(w []float64) float64
	// addGrad accumulates scale * d(value)/dw into g.
	addGrad func(g, w []float64, scale float64)
}

// MinimumVolatility finds the weights minimizing sqrt(w'Σw) subject to the
// configured constraints. With Options.TargetReturn set, the result is one
// point of the efficient frontier; without it, the global minimum-volatility
// portfolio.
func (o *Optimizer) MinimumVolatility(annReturns []float64, cov *mat.SymDense, opts Options) ([]float64, error) {
	n, err := checkShapes(annReturns, cov)
	if err != nil {
		return nil, err
	}
	if opts.TargetVolatility != nil {
		return nil, fmt.Errorf("%w: target volatility applies to the Sharpe objective only", contracts.ErrInputShape)
	}
	if n == 1 && opts.EnforceWeightSum {
		return []float64{1.0}, nil
	}

	base := func(w []float64) float64 {
		return quadraticForm(w, cov)
	}
	baseGrad := func(g, w []float64) {
		covTimes(g, w, cov)
		for i := range g {
			g[i] *= 2
		}
	}

	cons := buildConstraints(annReturns, cov, opts, 1)
	return o.solve(n, base, baseGrad, cons, opts)
}

// MaximumSharpe finds the weights maximizing the annualized Sharpe ratio by
// minimizing its negative. riskFreeRate is annual; periodsPerYear annualizes
// the per-period volatility from the covariance matrix.
func (o *Optimizer) MaximumSharpe(annReturns []float64, cov *mat.SymDense, riskFreeRate float64, periodsPerYear int, opts Options) ([]float64, error) {
	n, err := checkShapes(annReturns, cov)
	if err != nil {
		return nil, err
	}
	if opts.TargetReturn != nil && opts.TargetVolatility != nil {
		return nil, fmt.Errorf("%w: target return and target volatility are mutually exclusive", contracts.ErrInputShape)
	}
	if n == 1 && opts.EnforceWeightSum {
		return []float64{1.0}, nil
	}

	scale := math.Sqrt(float64(periodsPerYear))

	base := func(w []float64) float64 {
		ret := dot(annReturns, w)
		vol := math.Sqrt(math.Max(quadraticForm(w, cov), 1e-16))
		return -(ret - riskFreeRate) / (scale * vol)
	}
	baseGrad := func(g, w []float64) {
		ret := dot(annReturns, w)
		vol := math.Sqrt(math.Max(quadraticForm(w, cov), 1e-16))
		covTimes(g, w, cov)
		for i := range g {
			g[i] = -annReturns[i]/(scale*vol) + (ret-riskFreeRate)*g[i]/(scale*vol*vol*vol)
		}
	}

	cons := buildConstraints(annReturns, cov, opts, periodsPerYear)
	return o.solve(n, base, baseGrad, cons, opts)
}

// buildConstraints assembles the equality-constraint descriptors for a solve.
func buildConstraints(annReturns []float64, cov *mat.SymDense, opts Options, periodsPerYear int) []constraint {
	var cons []constraint

	if opts.EnforceWeightSum {
		cons = append(cons, constraint{
			Kind:   constraintWeightSum,
			Target: 1.0,
			value: func(w []float64) float64 {
				var sum float64
				for _, wi := range w {
					sum += wi
				}
				return sum - 1.0
			},
			addGrad: func(g, w []float64, scale float64) {
				for i := range g {
					g[i] += scale
				}
			},
		})
	}

	if opts.TargetReturn != nil {
		target := *opts.TargetReturn
		cons = append(cons, constraint{
			Kind:   constraintTargetReturn,
			Target: target,
			value: func(w []float64) float64 {
				return dot(annReturns, w) - target
			},
			addGrad: func(g, w []float64, scale float64) {
				for i := range g {
					g[i] += scale * annReturns[i]
				}
			},
		})
	}

	if opts.TargetVolatility != nil {
		target := *opts.TargetVolatility
		ann := math.Sqrt(float64(periodsPerYear))
		cons = append(cons, constraint{
			Kind:   constraintTargetVolatility,
			Target: target,
			value: func(w []float64) float64 {
				vol := math.Sqrt(math.Max(quadraticForm(w, cov), 1e-16))
				return ann*vol - target
			},
			addGrad: func(g, w []float64, scale float64) {
				vol := math.Sqrt(math.Max(quadraticForm(w, cov), 1e-16))
				sw := make([]float64, len(w))
				covTimes(sw, w, cov)
				for i := range g {
					g[i] += scale * ann * sw[i] / vol
				}
			},
		})
	}

	return cons
}

// Penalty continuation: each stage re-solves from the previous stage's point
// with a stiffer penalty, and escalation stops as soon as the finished
// candidate satisfies every constraint. The ceiling keeps the residual target
// reachable even when the covariance entries are orders of magnitude larger
// than the constraint scale.
const (
	initialPenalty = 1e4
	penaltyGrowth  = 1e2
	penaltyCeiling = 1e14
)

// solve runs the penalty-augmented minimization from the equal-weight start,
// applies bound projection and normalization, and verifies every active
// constraint to within tolerance. Solver status alone is not trusted either
// way: an iteration-limited iterate that verifies feasible is a valid result,
// and a converged iterate that fails verification is a divergence.
func (o *Optimizer) solve(n int, base func([]float64) float64, baseGrad func(g, w []float64), cons []constraint, opts Options) ([]float64, error) {
	w := equalWeights(n)
	var candidate []float64

	for penalty := initialPenalty; penalty <= penaltyCeiling; penalty *= penaltyGrowth {
		problem := optimize.Problem{
			Func: func(x []float64) float64 {
				obj := base(x)
				for _, c := range cons {
					v := c.value(x)
					obj += penalty * v * v
				}
				if opts.EnforceBounds {
					for _, xi := range x {
						if xi < 0 {
							obj += penalty * xi * xi
						} else if xi > 1 {
							obj += penalty * (xi - 1) * (xi - 1)
						}
					}
				}
				return obj
			},
			Grad: func(grad, x []float64) {
				baseGrad(grad, x)
				for _, c := range cons {
					v := c.value(x)
					c.addGrad(grad, x, 2*penalty*v)
				}
				if opts.EnforceBounds {
					for i, xi := range x {
						if xi < 0 {
							grad[i] += 2 * penalty * xi
						} else if xi > 1 {
							grad[i] += 2 * penalty * (xi - 1)
						}
					}
				}
			},
		}

		settings := &optimize.Settings{MajorIterations: o.maxIterations}

		result, err := optimize.Minimize(problem, w, settings, &optimize.LBFGS{})
		if err != nil {
			// Gradient methods can fail line searches on stiff penalties;
			// retry derivative-free.
			result, err = optimize.Minimize(problem, w, settings, &optimize.NelderMead{})
			if err != nil {
				return nil, fmt.Errorf("%w: %v", contracts.ErrDivergence, err)
			}
		}

		w = result.X
		finished, err := finishWeights(w, opts)
		if err != nil {
			continue
		}
		candidate = finished
		if maxViolation(cons, candidate) <= o.tolerance {
			break
		}
	}

	if candidate == nil {
		return nil, fmt.Errorf("%w: weights collapsed to zero", contracts.ErrDivergence)
	}

	for _, c := range cons {
		if v := math.Abs(c.value(candidate)); v > o.tolerance {
			return nil, fmt.Errorf("%w: %s constraint violated by %.3g (target %.6g)",
				contracts.ErrDivergence, c.Kind, v, c.Target)
		}
	}

	return candidate, nil
}

// finishWeights clamps a raw solver iterate to the bounds and renormalizes
// the budget constraint, leaving the raw iterate untouched for the next
// continuation stage.
func finishWeights(w []float64, opts Options) ([]float64, error) {
	out := append([]float64(nil), w...)

	if opts.EnforceBounds {
		for i, wi := range out {
			out[i] = math.Max(0.0, math.Min(1.0, wi))
		}
	}
	if opts.EnforceWeightSum {
		var sum float64
		for _, wi := range out {
			sum += wi
		}
		if math.Abs(sum) < 1e-12 {
			return nil, fmt.Errorf("%w: weights collapsed to zero", contracts.ErrDivergence)
		}
		for i := range out {
			out[i] /= sum
		}
	}

	return out, nil
}

// maxViolation returns the worst absolute constraint residual at w.
func maxViolation(cons []constraint, w []float64) float64 {
	var worst float64
	for _, c := range cons {
		if v := math.Abs(c.value(w)); v > worst {
			worst = v
		}
	}
	return worst
}

func checkShapes(annReturns []float64, cov *mat.SymDense) (int, error) {
	n := cov.SymmetricDim()
	if n == 0 {
		return 0, fmt.Errorf("%w: empty covariance matrix", contracts.ErrInputShape)
	}
	if len(annReturns) != n {
		return 0, fmt.Errorf("%w: %d returns vs %dx%d covariance", contracts.ErrInputShape, len(annReturns), n, n)
	}
	return n, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
