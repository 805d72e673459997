package portfolio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wonny/frontier/internal/contracts"
)

func TestTangencyWeights(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{
		0.04, 0.00,
		0.00, 0.01,
	})
	excess := []float64{0.08, 0.05}

	raw, err := TangencyWeights(cov, excess, false)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, raw[0], 1e-10)
	assert.InDelta(t, 5.0, raw[1], 1e-10)

	rescaled, err := TangencyWeights(cov, excess, true)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/7.0, rescaled[0], 1e-10)
	assert.InDelta(t, 5.0/7.0, rescaled[1], 1e-10)
}

func TestTangencyWeightsEqualExcess(t *testing.T) {
	// Identical variances and identical excess returns give the 1/N portfolio.
	cov := mat.NewSymDense(3, []float64{
		0.04, 0, 0,
		0, 0.04, 0,
		0, 0, 0.04,
	})

	w, err := TangencyWeights(cov, []float64{0.06, 0.06, 0.06}, true)
	require.NoError(t, err)
	for i := range w {
		assert.InDelta(t, 1.0/3.0, w[i], 1e-10, "weight %d", i)
	}
}

func TestTangencyWeightsShortPosition(t *testing.T) {
	// A negative excess return yields an unconstrained short.
	cov := mat.NewSymDense(2, []float64{
		0.04, 0.00,
		0.00, 0.01,
	})

	raw, err := TangencyWeights(cov, []float64{-0.02, 0.05}, false)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, raw[0], 1e-10)
	assert.InDelta(t, 5.0, raw[1], 1e-10)
}

func TestTangencyWeightsSingularCovariance(t *testing.T) {
	// Rank-1 covariance: two perfectly correlated assets.
	cov := mat.NewSymDense(2, []float64{
		0.04, 0.04,
		0.04, 0.04,
	})

	_, err := TangencyWeights(cov, []float64{0.08, 0.05}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrSingularCovariance), "want ErrSingularCovariance, got %v", err)
}

func TestTangencyWeightsIllConditioned(t *testing.T) {
	// Positive definite but with a condition number past the viability cutoff.
	cov := mat.NewSymDense(2, []float64{
		1.0, 0.0,
		0.0, 1e-14,
	})

	_, err := TangencyWeights(cov, []float64{0.08, 0.05}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrSingularCovariance))
}

func TestTangencyWeightsShapeMismatch(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{0.04, 0, 0, 0.01})

	_, err := TangencyWeights(cov, []float64{0.08}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrInputShape))

	var empty mat.SymDense
	_, err = TangencyWeights(&empty, nil, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrInputShape))
}

func TestTangencyWeightsZeroSumRescale(t *testing.T) {
	// Antisymmetric excess returns on identical variances cancel exactly.
	cov := mat.NewSymDense(2, []float64{
		0.04, 0.00,
		0.00, 0.04,
	})

	_, err := TangencyWeights(cov, []float64{0.05, -0.05}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrDegenerateInput), "want ErrDegenerateInput, got %v", err)
}
