package risk

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// =============================================================================
// Annualization
// =============================================================================

// AnnualizeReturns computes the annualized (compound) return of a periodic
// return series. periodsPerYear is e.g. 12, 52, 252 for monthly, weekly and
// daily data.
func AnnualizeReturns(returns []float64, periodsPerYear int) float64 {
	if len(returns) == 0 {
		return 0
	}

	growth := 1.0
	for _, r := range returns {
		growth *= 1.0 + r
	}

	return math.Pow(growth, float64(periodsPerYear)/float64(len(returns))) - 1.0
}

// AnnualizeVolatility computes the annualized volatility of a periodic return
// series using the sample standard deviation.
func AnnualizeVolatility(returns []float64, periodsPerYear int) float64 {
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(float64(periodsPerYear))
}

// AnnualizeVol annualizes a single per-period volatility computed beforehand,
// e.g. the volatility of a portfolio from its covariance matrix.
func AnnualizeVol(vol float64, periodsPerYear int) float64 {
	return vol * math.Sqrt(float64(periodsPerYear))
}

// =============================================================================
// Sharpe Ratio
// =============================================================================

// SharpeRatio computes the annualized Sharpe ratio of a periodic return
// series. riskFreeRate is the annual rate; it is converted to the period
// frequency via (1+rf)^(1/ppy) - 1 before excess returns are taken.
func SharpeRatio(returns []float64, riskFreeRate float64, periodsPerYear int) float64 {
	if len(returns) < 2 {
		return 0
	}

	rfPerPeriod := math.Pow(1.0+riskFreeRate, 1.0/float64(periodsPerYear)) - 1.0

	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - rfPerPeriod
	}

	annVol := AnnualizeVolatility(returns, periodsPerYear)
	if annVol == 0 {
		return 0
	}

	return AnnualizeReturns(excess, periodsPerYear) / annVol
}

// SharpeFromAnnual computes the Sharpe ratio from already-annualized portfolio
// return and volatility.
func SharpeFromAnnual(annReturn, annVol, riskFreeRate float64) float64 {
	if annVol == 0 {
		return 0
	}
	return (annReturn - riskFreeRate) / annVol
}

// =============================================================================
// Higher Moments
// =============================================================================

// Skewness computes the skewness of a return series using the population
// standard deviation.
func Skewness(returns []float64) float64 {
	return standardizedMoment(returns, 3)
}

// Kurtosis computes the kurtosis (not excess) of a return series using the
// population standard deviation.
func Kurtosis(returns []float64) float64 {
	return standardizedMoment(returns, 4)
}

// ExcessKurtosis returns Kurtosis minus 3.
func ExcessKurtosis(returns []float64) float64 {
	return Kurtosis(returns) - 3.0
}

func standardizedMoment(returns []float64, order float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	mean := stat.Mean(returns, nil)
	std := popStdDev(returns, mean)
	if std == 0 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += math.Pow((r-mean)/std, order)
	}
	return sum / float64(len(returns))
}

// popStdDev is the population (ddof=0) standard deviation.
func popStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// Semivolatility returns the population standard deviation of the negative
// returns only.
func Semivolatility(returns []float64) float64 {
	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	if len(negative) == 0 {
		return 0
	}
	return popStdDev(negative, stat.Mean(negative, nil))
}

// =============================================================================
// Wealth
// =============================================================================

// TerminalWealth computes the final compounded growth factor of a return
// series: prod(1 + r).
func TerminalWealth(returns []float64) float64 {
	wealth := 1.0
	for _, r := range returns {
		wealth *= 1.0 + r
	}
	return wealth
}

// CompoundReturns compounds a return series from an initial value, returning
// the running wealth index.
func CompoundReturns(returns []float64, start float64) []float64 {
	wealth := make([]float64, len(returns))
	value := start
	for i, r := range returns {
		value *= 1.0 + r
		wealth[i] = value
	}
	return wealth
}
