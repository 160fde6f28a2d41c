package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alexandrekoury/painel-backend/internal/api/request"
	"github.com/alexandrekoury/painel-backend/internal/service"
	"github.com/alexandrekoury/painel-backend/internal/validation"
)

// PriceHandler handles coin price quote HTTP requests
type PriceHandler struct {
	priceService *service.PriceService
	syncService  *service.PriceSyncService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(priceService *service.PriceService, syncService *service.PriceSyncService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
		syncService:  syncService,
	}
}

// PricesForCurrency lists all quotes for a currency, newest first
func (h *PriceHandler) PricesForCurrency(w http.ResponseWriter, r *http.Request) {
	prices, err := h.priceService.GetPricesForCurrency(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "Failed to retrieve prices", err)
		return
	}

	respondJSON(w, http.StatusOK, prices)
}

// LatestPriceForCurrency returns the newest quote for a currency
func (h *PriceHandler) LatestPriceForCurrency(w http.ResponseWriter, r *http.Request) {
	price, err := h.priceService.LatestPrice(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "Failed to retrieve latest price", err)
		return
	}

	respondJSON(w, http.StatusOK, price)
}

// CreatePrice records a manual price quote. QuoteTime defaults to now.
func (h *PriceHandler) CreatePrice(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	quoteTime := time.Now().UTC()
	if req.QuoteTime != "" {
		parsed, err := validation.ParseDatetime(req.QuoteTime)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid quoteTime"})
			return
		}
		quoteTime = parsed
	}

	price, err := h.priceService.CreatePrice(r.Context(), req.CurrencyID, quoteTime, req.Price)
	if err != nil {
		respondServiceError(w, "Failed to create price", err)
		return
	}

	respondJSON(w, http.StatusCreated, price)
}

// SyncResponse represents the price sync response
type SyncResponse struct {
	Stored int `json:"stored"`
}

// Sync pulls current quotes from the external feed for all non-fiat currencies
//
// Endpoint: POST /api/prices/sync
func (h *PriceHandler) Sync(w http.ResponseWriter, r *http.Request) {
	stored, err := h.syncService.SyncAll(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to sync prices", err)
		return
	}

	respondJSON(w, http.StatusOK, SyncResponse{Stored: stored})
}
