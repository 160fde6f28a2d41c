package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexandrekoury/painel-backend/internal/api/request"
	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/service"
)

// CurrencyHandler handles currency-related HTTP requests
type CurrencyHandler struct {
	currencyService *service.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencyService *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
	}
}

// Currencies lists all currencies
func (h *CurrencyHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.currencyService.GetAllCurrencies(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to retrieve currencies", err)
		return
	}

	respondJSON(w, http.StatusOK, currencies)
}

// Currency retrieves a single currency by ID
func (h *CurrencyHandler) Currency(w http.ResponseWriter, r *http.Request) {
	currency, err := h.currencyService.GetCurrency(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "Failed to retrieve currency", err)
		return
	}

	respondJSON(w, http.StatusOK, currency)
}

// CreateCurrency creates a new currency
func (h *CurrencyHandler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	currency, err := h.currencyService.CreateCurrency(r.Context(), req.Code, req.Name)
	if err != nil {
		respondServiceError(w, "Failed to create currency", err)
		return
	}

	respondJSON(w, http.StatusCreated, currency)
}

// UpdateCurrency updates a currency's code and name
func (h *CurrencyHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	currency, err := h.currencyService.UpdateCurrency(r.Context(), model.Currency{
		ID:   chi.URLParam(r, "uuid"),
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		respondServiceError(w, "Failed to update currency", err)
		return
	}

	respondJSON(w, http.StatusOK, currency)
}

// DeleteCurrency removes a currency
func (h *CurrencyHandler) DeleteCurrency(w http.ResponseWriter, r *http.Request) {
	if err := h.currencyService.DeleteCurrency(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, "Failed to delete currency", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
