package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/wonny/frontier/internal/contracts"
)

// Return computes the portfolio return as the dot product of the weight
// vector and a return vector aligned by asset ordering.
func Return(weights, rets []float64) (float64, error) {
	if len(weights) != len(rets) {
		return 0, fmt.Errorf("%w: %d weights vs %d returns", contracts.ErrInputShape, len(weights), len(rets))
	}

	var sum float64
	for i, w := range weights {
		sum += w * rets[i]
	}
	return sum, nil
}

// Volatility computes the per-period portfolio volatility sqrt(w'Σw). A tiny
// negative quadratic form from floating-point error is clamped to zero; a
// genuinely non-PSD covariance yields NaN, which is a caller-input
// precondition violation rather than something this function corrects.
func Volatility(weights []float64, cov *mat.SymDense) (float64, error) {
	n := cov.SymmetricDim()
	if len(weights) != n {
		return 0, fmt.Errorf("%w: %d weights vs %dx%d covariance", contracts.ErrInputShape, len(weights), n, n)
	}

	variance := quadraticForm(weights, cov)
	if variance < 0 && variance > -1e-12 {
		variance = 0
	}
	return math.Sqrt(variance), nil
}

// quadraticForm computes w'Σw.
func quadraticForm(w []float64, cov *mat.SymDense) float64 {
	var total float64
	n := len(w)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			total += w[i] * w[j] * cov.At(i, j)
		}
	}
	return total
}

// covTimes computes Σw into dst.
func covTimes(dst, w []float64, cov *mat.SymDense) {
	n := len(w)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += cov.At(i, j) * w[j]
		}
		dst[i] = sum
	}
}

// equalWeights returns the 1/N weight vector.
func equalWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}
