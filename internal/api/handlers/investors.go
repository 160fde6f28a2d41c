package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alexandrekoury/painel-backend/internal/api/request"
	"github.com/alexandrekoury/painel-backend/internal/service"
)

// InvestorHandler handles investor-related HTTP requests
type InvestorHandler struct {
	investorService *service.InvestorService
}

// NewInvestorHandler creates a new InvestorHandler
func NewInvestorHandler(investorService *service.InvestorService) *InvestorHandler {
	return &InvestorHandler{
		investorService: investorService,
	}
}

// Investors lists all investors
func (h *InvestorHandler) Investors(w http.ResponseWriter, r *http.Request) {
	investors, err := h.investorService.GetAllInvestors(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to retrieve investors", err)
		return
	}

	respondJSON(w, http.StatusOK, investors)
}

// CreateInvestor creates a new investor
func (h *InvestorHandler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	var req request.CreateInvestorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	investor, err := h.investorService.CreateInvestor(r.Context(), req.Alias, req.Username)
	if err != nil {
		respondServiceError(w, "Failed to create investor", err)
		return
	}

	respondJSON(w, http.StatusCreated, investor)
}
