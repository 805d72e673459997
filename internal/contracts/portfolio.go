package contracts

// Portfolio pairs a weight vector with its realized annualized statistics.
// Weights are ordered by the asset ordering of the inputs the portfolio was
// computed against. Instances are produced once per optimization call and are
// immutable thereafter.
type Portfolio struct {
	Weights    []float64 `json:"weights"`
	Return     float64   `json:"return"`     // annualized
	Volatility float64   `json:"volatility"` // annualized
	Sharpe     float64   `json:"sharpe"`
}

// Named portfolio labels produced alongside every frontier.
const (
	LabelMaxSharpe     = "Maximum Sharpe Ratio"
	LabelMinVolatility = "Minimum Volatility"
	LabelEqualWeight   = "Equally Weighted"
)

// Frontier is a discretized efficient frontier: portfolios ordered by
// increasing target return, plus the labeled reference portfolios.
type Frontier struct {
	Assets     []string             `json:"assets"`
	Portfolios []Portfolio          `json:"portfolios"`
	Named      map[string]Portfolio `json:"named"`
}
