package portfolio

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/wonny/frontier/internal/contracts"
	"github.com/wonny/frontier/internal/returns"
	"github.com/wonny/frontier/internal/risk"
	"github.com/wonny/frontier/pkg/logger"
)

// Builder assembles efficient frontiers from a return matrix. Each grid point
// is an independent minimum-volatility solve, run in parallel; the output
// sequence is ordered by increasing target return regardless of completion
// order.
type Builder struct {
	optimizer *Optimizer
	logger    *logger.Logger
}

// NewBuilder creates a frontier builder around the given optimizer.
func NewBuilder(optimizer *Optimizer, log *logger.Logger) *Builder {
	return &Builder{optimizer: optimizer, logger: log}
}

// Build computes the discretized efficient frontier plus the three named
// reference portfolios. nPortfolios target returns are spaced linearly from
// the minimum to the maximum annualized asset return, inclusive.
//
// An infeasible grid point fails the whole frontier with a wrapped
// divergence error naming the offending target return; no per-point fallback
// is applied.
func (b *Builder) Build(m *returns.Matrix, periodsPerYear int, riskFreeRate float64, nPortfolios int) (*contracts.Frontier, error) {
	if m.NumAssets() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 assets, got %d", contracts.ErrDegenerateInput, m.NumAssets())
	}
	if nPortfolios < 2 {
		return nil, fmt.Errorf("%w: need at least 2 frontier points, got %d", contracts.ErrDegenerateInput, nPortfolios)
	}

	annReturns := make([]float64, m.NumAssets())
	for i := range annReturns {
		annReturns[i] = risk.AnnualizeReturns(m.Column(i), periodsPerYear)
	}
	cov := m.Covariance()

	grid := targetReturnGrid(annReturns, nPortfolios)

	portfolios := make([]contracts.Portfolio, len(grid))
	var g errgroup.Group
	for i, target := range grid {
		i, target := i, target
		g.Go(func() error {
			opts := DefaultOptions()
			opts.TargetReturn = &target

			w, err := b.optimizer.MinimumVolatility(annReturns, cov, opts)
			if err != nil {
				return fmt.Errorf("frontier point %d (target return %.6g): %w", i, target, err)
			}

			portfolios[i] = b.describe(w, annReturns, cov, riskFreeRate, periodsPerYear)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	named, err := b.referencePortfolios(annReturns, cov, riskFreeRate, periodsPerYear)
	if err != nil {
		return nil, err
	}

	b.logger.WithFields(map[string]interface{}{
		"assets":       m.NumAssets(),
		"grid_points":  len(grid),
		"min_target":   grid[0],
		"max_target":   grid[len(grid)-1],
		"max_sharpe":   named[contracts.LabelMaxSharpe].Sharpe,
		"min_vol":      named[contracts.LabelMinVolatility].Volatility,
	}).Info("Efficient frontier computed")

	return &contracts.Frontier{
		Assets:     append([]string(nil), m.Assets...),
		Portfolios: portfolios,
		Named:      named,
	}, nil
}

// referencePortfolios computes the three labeled portfolios. The equal-weight
// portfolio is closed form and never touches the solver.
func (b *Builder) referencePortfolios(annReturns []float64, cov *mat.SymDense, riskFreeRate float64, periodsPerYear int) (map[string]contracts.Portfolio, error) {
	named := make(map[string]contracts.Portfolio, 3)

	msr, err := b.optimizer.MaximumSharpe(annReturns, cov, riskFreeRate, periodsPerYear, DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("maximum sharpe portfolio: %w", err)
	}
	named[contracts.LabelMaxSharpe] = b.describe(msr, annReturns, cov, riskFreeRate, periodsPerYear)

	mvp, err := b.optimizer.MinimumVolatility(annReturns, cov, DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("minimum volatility portfolio: %w", err)
	}
	named[contracts.LabelMinVolatility] = b.describe(mvp, annReturns, cov, riskFreeRate, periodsPerYear)

	named[contracts.LabelEqualWeight] = b.describe(equalWeights(len(annReturns)), annReturns, cov, riskFreeRate, periodsPerYear)

	return named, nil
}

// describe derives the reported statistics of a weight vector.
func (b *Builder) describe(w, annReturns []float64, cov *mat.SymDense, riskFreeRate float64, periodsPerYear int) contracts.Portfolio {
	ret := dot(w, annReturns)

	vol, err := Volatility(w, cov)
	if err != nil {
		// Shapes were validated on entry; a mismatch here is a programmer error.
		panic(err)
	}
	annVol := risk.AnnualizeVol(vol, periodsPerYear)

	return contracts.Portfolio{
		Weights:    w,
		Return:     ret,
		Volatility: annVol,
		Sharpe:     risk.SharpeFromAnnual(ret, annVol, riskFreeRate),
	}
}

// targetReturnGrid builds n equally spaced targets over [min, max] of the
// annualized returns, endpoints included.
func targetReturnGrid(annReturns []float64, n int) []float64 {
	lo, hi := annReturns[0], annReturns[0]
	for _, r := range annReturns[1:] {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}

	grid := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	grid[n-1] = hi
	return grid
}
