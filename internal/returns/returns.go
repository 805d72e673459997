package returns

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wonny/frontier/internal/contracts"
)

// Series is an ordered sequence of fractional periodic returns for one asset.
// A value of 0.01 means a 1% gain over the period.
type Series []float64

// Matrix holds aligned return series for a set of assets. All series share the
// same period index; column order is the canonical asset ordering used by
// covariance matrices and weight vectors downstream.
type Matrix struct {
	Assets  []string
	Periods int
	columns []Series
}

// NewMatrix builds a Matrix from asset names and their return series. Every
// series must have the same length, and at least two periods are required so
// that sample covariance is defined.
func NewMatrix(assets []string, series []Series) (*Matrix, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: no assets", contracts.ErrInputShape)
	}
	if len(assets) != len(series) {
		return nil, fmt.Errorf("%w: %d assets but %d series", contracts.ErrInputShape, len(assets), len(series))
	}

	periods := len(series[0])
	if periods < 2 {
		return nil, fmt.Errorf("%w: series %s has %d periods, need at least 2", contracts.ErrInputShape, assets[0], periods)
	}
	for i, s := range series {
		if len(s) != periods {
			return nil, fmt.Errorf("%w: series %s has %d periods, expected %d",
				contracts.ErrInputShape, assets[i], len(s), periods)
		}
	}

	cols := make([]Series, len(series))
	for i, s := range series {
		cols[i] = append(Series(nil), s...)
	}

	return &Matrix{
		Assets:  append([]string(nil), assets...),
		Periods: periods,
		columns: cols,
	}, nil
}

// NumAssets returns the number of assets (columns).
func (m *Matrix) NumAssets() int {
	return len(m.Assets)
}

// Column returns the return series for asset index i.
func (m *Matrix) Column(i int) Series {
	return m.columns[i]
}

// Dense converts the matrix to a gonum Dense with periods as rows and assets
// as columns.
func (m *Matrix) Dense() *mat.Dense {
	d := mat.NewDense(m.Periods, len(m.columns), nil)
	for j, col := range m.columns {
		for i, v := range col {
			d.Set(i, j, v)
		}
	}
	return d
}

// Covariance computes the sample covariance matrix of the asset returns,
// indexed in the matrix's asset ordering.
func (m *Matrix) Covariance() *mat.SymDense {
	cov := mat.NewSymDense(len(m.columns), nil)
	stat.CovarianceMatrix(cov, m.Dense(), nil)
	return cov
}
