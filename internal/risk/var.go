package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// =============================================================================
// VaR / CVaR (loss-positive convention)
// =============================================================================
// VaR and CVaR express losses as positive numbers: VaR=0.05 at level 0.05
// means a 5% loss is not exceeded with 95% confidence.

// HistoricVaR computes the (1-level) VaR using the historical method: the
// negated level-quantile of the return series. level is the tail probability,
// e.g. 0.05 for the 95% VaR.
func HistoricVaR(returns []float64, level float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	return -percentile(sorted, level*100)
}

// HistoricCVaR computes the (1-level) Conditional VaR (Expected Shortfall):
// the negated mean of the returns below the negated historic VaR.
func HistoricCVaR(returns []float64, level float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	cutoff := -HistoricVaR(returns, level)

	var sum float64
	var count int
	for _, r := range returns {
		if r < cutoff {
			sum += r
			count++
		}
	}
	if count == 0 {
		return 0
	}

	return -(sum / float64(count))
}

// GaussianVaR computes the (1-level) parametric VaR assuming normally
// distributed returns. With cornishFisher set, the Gaussian quantile is
// modified by the Cornish-Fisher expansion using the series' skewness and
// kurtosis, which accounts for non-normal tails.
func GaussianVaR(returns []float64, level float64, cornishFisher bool) float64 {
	if len(returns) == 0 {
		return 0
	}

	za := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(level)
	if cornishFisher {
		s := Skewness(returns)
		k := Kurtosis(returns)
		za = za +
			(za*za-1.0)*s/6.0 +
			(za*za*za-3.0*za)*(k-3.0)/24.0 -
			(2.0*za*za*za-5.0*za)*(s*s)/36.0
	}

	mean := stat.Mean(returns, nil)
	std := popStdDev(returns, mean)

	return -(mean + za*std)
}

// percentile computes the p-th percentile (0-100) of an ascending-sorted
// slice with linear interpolation between order statistics.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	idx := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
