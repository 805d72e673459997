package risk

// DrawdownResult decomposes a return series into its wealth index, running
// peaks and drawdown series. Drawdowns are non-positive fractions of the
// preceding peak.
type DrawdownResult struct {
	Wealth   []float64 `json:"wealth"`
	Peaks    []float64 `json:"peaks"`
	Drawdown []float64 `json:"drawdown"`
}

// Drawdown computes the wealth index for a hypothetical starting investment,
// all previous peaks, and the drawdown at every period.
func Drawdown(returns []float64, start float64) DrawdownResult {
	wealth := CompoundReturns(returns, start)

	peaks := make([]float64, len(wealth))
	drawdown := make([]float64, len(wealth))

	peak := start
	for i, w := range wealth {
		if w > peak {
			peak = w
		}
		peaks[i] = peak
		drawdown[i] = (w - peak) / peak
	}

	return DrawdownResult{Wealth: wealth, Peaks: peaks, Drawdown: drawdown}
}

// MaxDrawdown returns the deepest drawdown of a return series as a
// non-positive fraction.
func MaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	cumValue := 1.0
	peak := 1.0
	maxDD := 0.0

	for _, r := range returns {
		cumValue *= 1.0 + r
		if cumValue > peak {
			peak = cumValue
		}
		dd := (cumValue - peak) / peak
		if dd < maxDD {
			maxDD = dd
		}
	}

	return maxDD
}
