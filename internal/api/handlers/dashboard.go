package handlers

import (
	"net/http"
	"time"

	"github.com/alexandrekoury/painel-backend/internal/service"
)

// DashboardHandler handles valuation report HTTP requests.
//
// All endpoints accept optional start_date/end_date query parameters in
// "2006-01-02" format. Absent or malformed values fall back to the defaults
// (first day of the current month, previous calendar day) without error.
type DashboardHandler struct {
	reportService *service.ReportService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(reportService *service.ReportService) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
	}
}

func reportWindow(r *http.Request) (time.Time, time.Time) {
	query := r.URL.Query()
	return service.ResolveWindow(query.Get("start_date"), query.Get("end_date"), time.Now())
}

// Report returns the combined valuation report for the window.
//
// Endpoint: GET /api/dashboard/report
func (h *DashboardHandler) Report(w http.ResponseWriter, r *http.Request) {
	start, end := reportWindow(r)

	report, err := h.reportService.Report(r.Context(), start, end)
	if err != nil {
		respondServiceError(w, "Failed to compute report", err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// BalanceDifference returns the custodial balance change for the window.
//
// Endpoint: GET /api/dashboard/balance-difference
func (h *DashboardHandler) BalanceDifference(w http.ResponseWriter, r *http.Request) {
	start, end := reportWindow(r)

	result, err := h.reportService.BalanceDifference(r.Context(), start, end)
	if err != nil {
		respondServiceError(w, "Failed to compute balance difference", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CashFlow returns the net investor cash flow for the window.
//
// Endpoint: GET /api/dashboard/cash-flow
func (h *DashboardHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	start, end := reportWindow(r)

	result, err := h.reportService.CashFlow(r.Context(), start, end)
	if err != nil {
		respondServiceError(w, "Failed to compute cash flow", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CryptoVariation returns the crypto holdings value variation for the window.
//
// Endpoint: GET /api/dashboard/crypto-variation
func (h *DashboardHandler) CryptoVariation(w http.ResponseWriter, r *http.Request) {
	start, end := reportWindow(r)

	result, err := h.reportService.CryptoVariation(r.Context(), start, end)
	if err != nil {
		respondServiceError(w, "Failed to compute crypto variation", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
