package returns

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/frontier/internal/contracts"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix(
		[]string{"AAA", "BBB"},
		[]Series{
			{0.01, -0.01, 0.02},
			{0.02, 0.00, -0.01},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, m.NumAssets())
	assert.Equal(t, 3, m.Periods)
	assert.Equal(t, []string{"AAA", "BBB"}, m.Assets)
	assert.Equal(t, Series{0.02, 0.00, -0.01}, m.Column(1))
}

func TestNewMatrixCopiesInput(t *testing.T) {
	src := Series{0.01, 0.02}
	m, err := NewMatrix([]string{"AAA"}, []Series{src})
	require.NoError(t, err)

	src[0] = 99.0
	assert.Equal(t, 0.01, m.Column(0)[0], "matrix must not alias caller slices")
}

func TestNewMatrixShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		assets []string
		series []Series
	}{
		{"no assets", nil, nil},
		{"count mismatch", []string{"AAA", "BBB"}, []Series{{0.01, 0.02}}},
		{"empty series", []string{"AAA"}, []Series{{}}},
		{"single period", []string{"AAA"}, []Series{{0.01}}},
		{"misaligned periods", []string{"AAA", "BBB"}, []Series{{0.01, 0.02}, {0.01}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatrix(tt.assets, tt.series)
			require.Error(t, err)
			assert.True(t, errors.Is(err, contracts.ErrInputShape), "want ErrInputShape, got %v", err)
		})
	}
}

func TestCovariance(t *testing.T) {
	// Two perfectly correlated alternating series with known sample moments.
	m, err := NewMatrix(
		[]string{"AAA", "BBB"},
		[]Series{
			{0.01, -0.01, 0.01, -0.01},
			{0.02, -0.02, 0.02, -0.02},
		},
	)
	require.NoError(t, err)

	cov := m.Covariance()

	assert.InDelta(t, 0.0001*4.0/3.0, cov.At(0, 0), 1e-12)
	assert.InDelta(t, 0.0004*4.0/3.0, cov.At(1, 1), 1e-12)
	assert.InDelta(t, 0.0002*4.0/3.0, cov.At(0, 1), 1e-12)
	assert.Equal(t, cov.At(0, 1), cov.At(1, 0))
}
