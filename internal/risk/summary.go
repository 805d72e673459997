package risk

import (
	"github.com/wonny/frontier/internal/returns"
)

// SummaryStats aggregates the standard risk/return report for one series.
type SummaryStats struct {
	Asset            string  `json:"asset,omitempty"`
	AnnualReturn     float64 `json:"annual_return"`
	AnnualVolatility float64 `json:"annual_volatility"`
	Sharpe           float64 `json:"sharpe"`
	Skewness         float64 `json:"skewness"`
	Kurtosis         float64 `json:"kurtosis"`
	HistoricCVaR     float64 `json:"historic_cvar"`
	CornishFisherVaR float64 `json:"cornish_fisher_var"`
	MaxDrawdown      float64 `json:"max_drawdown"`
}

// Summarize computes the summary statistics of a single return series.
// riskFreeRate is annual, varLevel is the VaR tail probability (e.g. 0.05).
func Summarize(series []float64, riskFreeRate float64, periodsPerYear int, varLevel float64) SummaryStats {
	return SummaryStats{
		AnnualReturn:     AnnualizeReturns(series, periodsPerYear),
		AnnualVolatility: AnnualizeVolatility(series, periodsPerYear),
		Sharpe:           SharpeRatio(series, riskFreeRate, periodsPerYear),
		Skewness:         Skewness(series),
		Kurtosis:         Kurtosis(series),
		HistoricCVaR:     HistoricCVaR(series, varLevel),
		CornishFisherVaR: GaussianVaR(series, varLevel, true),
		MaxDrawdown:      MaxDrawdown(series),
	}
}

// SummarizeMatrix computes summary statistics per asset, in the matrix's
// asset ordering.
func SummarizeMatrix(m *returns.Matrix, riskFreeRate float64, periodsPerYear int, varLevel float64) []SummaryStats {
	stats := make([]SummaryStats, m.NumAssets())
	for i, asset := range m.Assets {
		s := Summarize(m.Column(i), riskFreeRate, periodsPerYear, varLevel)
		s.Asset = asset
		stats[i] = s
	}
	return stats
}
