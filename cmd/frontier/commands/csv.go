package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/wonny/frontier/internal/returns"
)

// loadReturnsCSV reads a return matrix from a CSV file. The header row names
// the assets; every following row holds one period of fractional returns in
// the same column order.
func loadReturnsCSV(path string) (*returns.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 3 {
		return nil, fmt.Errorf("%s: need a header row and at least two return periods", path)
	}

	assets := records[0]
	series := make([]returns.Series, len(assets))
	for i := range series {
		series[i] = make(returns.Series, 0, len(records)-1)
	}

	for rowIdx, row := range records[1:] {
		if len(row) != len(assets) {
			return nil, fmt.Errorf("%s: row %d has %d columns, expected %d", path, rowIdx+2, len(row), len(assets))
		}
		for col, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %q: %w", path, rowIdx+2, assets[col], err)
			}
			series[col] = append(series[col], v)
		}
	}

	return returns.NewMatrix(assets, series)
}
