package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/wonny/frontier/internal/contracts"
	"github.com/wonny/frontier/internal/portfolio"
	"github.com/wonny/frontier/internal/returns"
	"github.com/wonny/frontier/internal/risk"
	"github.com/wonny/frontier/pkg/logger"
)

// AnalysisHandler handles portfolio-analysis API endpoints
type AnalysisHandler struct {
	builder *portfolio.Builder
	logger  *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(builder *portfolio.Builder, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		builder: builder,
		logger:  log,
	}
}

// statsRequest carries a return matrix for per-asset summary statistics.
// Returns are fractional periodic returns, one row per asset, all rows
// aligned on the same period index. Optional fields are pointers so an
// omitted field defaults while an explicit invalid value is rejected.
type statsRequest struct {
	Assets         []string    `json:"assets"`
	Returns        [][]float64 `json:"returns"`
	PeriodsPerYear *int        `json:"periods_per_year"`
	RiskFreeRate   float64     `json:"risk_free_rate"`
	VaRLevel       *float64    `json:"var_level"`
}

// frontierRequest extends statsRequest with the frontier grid size.
type frontierRequest struct {
	statsRequest
	NPortfolios int `json:"n_portfolios"`
}

// GetStats returns per-asset summary statistics
// POST /api/v1/stats
func (h *AnalysisHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	var req statsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ppy, varLevel, err := req.resolve()
	if err != nil {
		h.logger.WithError(err).Warn("Rejected stats request")
		respondError(w, statusForError(err), err.Error())
		return
	}

	m, err := buildMatrix(req.Assets, req.Returns)
	if err != nil {
		h.logger.WithError(err).Warn("Rejected stats request")
		respondError(w, statusForError(err), err.Error())
		return
	}

	stats := risk.SummarizeMatrix(m, req.RiskFreeRate, ppy, varLevel)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stats": stats,
	})
}

// GetFrontier returns the efficient frontier and named portfolios
// POST /api/v1/frontier
func (h *AnalysisHandler) GetFrontier(w http.ResponseWriter, r *http.Request) {
	var req frontierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NPortfolios == 0 {
		req.NPortfolios = 20
	}

	ppy, _, err := req.resolve()
	if err != nil {
		h.logger.WithError(err).Warn("Rejected frontier request")
		respondError(w, statusForError(err), err.Error())
		return
	}

	m, err := buildMatrix(req.Assets, req.Returns)
	if err != nil {
		h.logger.WithError(err).Warn("Rejected frontier request")
		respondError(w, statusForError(err), err.Error())
		return
	}

	frontier, err := h.builder.Build(m, ppy, req.RiskFreeRate, req.NPortfolios)
	if err != nil {
		h.logger.WithError(err).Error("Frontier build failed")
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, frontier)
}

// resolve defaults the omitted optional fields and rejects explicit invalid
// values: omitting periods_per_year means monthly data, sending zero is an
// error.
func (req *statsRequest) resolve() (periodsPerYear int, varLevel float64, err error) {
	periodsPerYear = 12
	if req.PeriodsPerYear != nil {
		periodsPerYear = *req.PeriodsPerYear
	}
	if periodsPerYear < 1 {
		return 0, 0, fmt.Errorf("%w: periods_per_year must be positive, got %d", contracts.ErrInputShape, periodsPerYear)
	}

	varLevel = 0.05
	if req.VaRLevel != nil {
		varLevel = *req.VaRLevel
	}
	if varLevel <= 0 || varLevel >= 1 {
		return 0, 0, fmt.Errorf("%w: var_level must be in (0, 1), got %g", contracts.ErrInputShape, varLevel)
	}

	return periodsPerYear, varLevel, nil
}

func buildMatrix(assets []string, rows [][]float64) (*returns.Matrix, error) {
	series := make([]returns.Series, len(rows))
	for i, row := range rows {
		series[i] = returns.Series(row)
	}
	return returns.NewMatrix(assets, series)
}

// statusForError maps the analytics error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, contracts.ErrInputShape),
		errors.Is(err, contracts.ErrDegenerateInput):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrDivergence),
		errors.Is(err, contracts.ErrSingularCovariance):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
