package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/frontier/internal/contracts"
	"github.com/wonny/frontier/internal/portfolio"
	"github.com/wonny/frontier/pkg/logger"
)

func newTestHandler() *AnalysisHandler {
	log := logger.NewWithWriter(io.Discard, "error")
	builder := portfolio.NewBuilder(portfolio.NewOptimizer(1000, 1e-6), log)
	return NewAnalysisHandler(builder, log)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// testReturns builds three aligned asset rows with distinct profiles.
func testReturns() (assets []string, rows [][]float64) {
	assets = []string{"GROWTH", "BALANCED", "BOND"}
	rows = [][]float64{
		{0.039, -0.021, 0.039, -0.021, 0.039, -0.021, 0.039, -0.021, 0.039, -0.021, 0.039, -0.021},
		{0.026, 0.026, -0.014, -0.014, 0.026, 0.026, -0.014, -0.014, 0.026, 0.026, -0.014, -0.014},
		{0.012, -0.004, -0.004, 0.012, 0.012, -0.004, -0.004, 0.012, 0.012, -0.004, -0.004, 0.012},
	}
	return assets, rows
}

func TestGetStats(t *testing.T) {
	assets, rows := testReturns()
	h := newTestHandler()

	rec := postJSON(t, h.GetStats, map[string]interface{}{
		"assets":           assets,
		"returns":          rows,
		"periods_per_year": 12,
		"risk_free_rate":   0.02,
		"var_level":        0.05,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Stats []struct {
			Asset            string  `json:"asset"`
			AnnualReturn     float64 `json:"annual_return"`
			AnnualVolatility float64 `json:"annual_volatility"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Stats, 3)

	assert.Equal(t, "GROWTH", resp.Stats[0].Asset)
	assert.Equal(t, "BOND", resp.Stats[2].Asset)
	assert.Greater(t, resp.Stats[0].AnnualVolatility, resp.Stats[2].AnnualVolatility)
}

func TestGetStatsInvalidBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.GetStats(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStatsOmittedFieldsDefault(t *testing.T) {
	assets, rows := testReturns()
	h := newTestHandler()

	rec := postJSON(t, h.GetStats, map[string]interface{}{
		"assets":  assets,
		"returns": rows,
	})

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetStatsRejectsInvalidOptionalFields(t *testing.T) {
	assets, rows := testReturns()
	h := newTestHandler()

	tests := []struct {
		name  string
		field string
		value interface{}
	}{
		{"zero periods per year", "periods_per_year", 0},
		{"negative periods per year", "periods_per_year", -12},
		{"zero var level", "var_level", 0.0},
		{"var level at one", "var_level", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.GetStats, map[string]interface{}{
				"assets":  assets,
				"returns": rows,
				tt.field:  tt.value,
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetFrontierRejectsZeroPeriods(t *testing.T) {
	assets, rows := testReturns()
	h := newTestHandler()

	rec := postJSON(t, h.GetFrontier, map[string]interface{}{
		"assets":           assets,
		"returns":          rows,
		"periods_per_year": 0,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStatsShapeMismatch(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.GetStats, map[string]interface{}{
		"assets":  []string{"AAA", "BBB"},
		"returns": [][]float64{{0.01, 0.02}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "2 assets")
}

func TestGetFrontier(t *testing.T) {
	assets, rows := testReturns()
	h := newTestHandler()

	rec := postJSON(t, h.GetFrontier, map[string]interface{}{
		"assets":           assets,
		"returns":          rows,
		"periods_per_year": 12,
		"risk_free_rate":   0.02,
		"n_portfolios":     5,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var frontier contracts.Frontier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &frontier))

	assert.Equal(t, assets, frontier.Assets)
	assert.Len(t, frontier.Portfolios, 5)
	require.Len(t, frontier.Named, 3)
	assert.Contains(t, frontier.Named, contracts.LabelMaxSharpe)
	assert.Contains(t, frontier.Named, contracts.LabelMinVolatility)
	assert.Contains(t, frontier.Named, contracts.LabelEqualWeight)
}

func TestGetFrontierTooFewAssets(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.GetFrontier, map[string]interface{}{
		"assets":  []string{"ONLY"},
		"returns": [][]float64{{0.01, 0.02, -0.01, 0.03}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input shape", contracts.ErrInputShape, http.StatusBadRequest},
		{"degenerate input", contracts.ErrDegenerateInput, http.StatusBadRequest},
		{"divergence", contracts.ErrDivergence, http.StatusUnprocessableEntity},
		{"singular covariance", contracts.ErrSingularCovariance, http.StatusUnprocessableEntity},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
