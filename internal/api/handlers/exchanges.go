package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alexandrekoury/painel-backend/internal/api/request"
	"github.com/alexandrekoury/painel-backend/internal/service"
	"github.com/alexandrekoury/painel-backend/internal/validation"
)

// ExchangeHandler handles exchange, strategy, and balance snapshot HTTP requests
type ExchangeHandler struct {
	exchangeService *service.ExchangeService
	balanceService  *service.BalanceService
}

// NewExchangeHandler creates a new ExchangeHandler
func NewExchangeHandler(exchangeService *service.ExchangeService, balanceService *service.BalanceService) *ExchangeHandler {
	return &ExchangeHandler{
		exchangeService: exchangeService,
		balanceService:  balanceService,
	}
}

// Exchanges lists all exchanges (API keys are never included)
func (h *ExchangeHandler) Exchanges(w http.ResponseWriter, r *http.Request) {
	exchanges, err := h.exchangeService.GetAllExchanges(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to retrieve exchanges", err)
		return
	}

	respondJSON(w, http.StatusOK, exchanges)
}

// CreateExchange creates a new exchange
func (h *ExchangeHandler) CreateExchange(w http.ResponseWriter, r *http.Request) {
	var req request.CreateExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	exchange, err := h.exchangeService.CreateExchange(r.Context(), req.Name, req.Description, req.APIKey)
	if err != nil {
		respondServiceError(w, "Failed to create exchange", err)
		return
	}

	respondJSON(w, http.StatusCreated, exchange)
}

// Strategies lists all strategies
func (h *ExchangeHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	strategies, err := h.exchangeService.GetAllStrategies(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to retrieve strategies", err)
		return
	}

	respondJSON(w, http.StatusOK, strategies)
}

// CreateStrategy creates a new strategy
func (h *ExchangeHandler) CreateStrategy(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	strategy, err := h.exchangeService.CreateStrategy(r.Context(), req.Name, req.Description)
	if err != nil {
		respondServiceError(w, "Failed to create strategy", err)
		return
	}

	respondJSON(w, http.StatusCreated, strategy)
}

// Balances lists balance snapshots. An optional ?date=2006-01-02 query
// parameter restricts the list to snapshots taken on that calendar date.
func (h *ExchangeHandler) Balances(w http.ResponseWriter, r *http.Request) {
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, err := validation.ParseDate(dateParam)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date parameter"})
			return
		}

		balances, err := h.balanceService.GetBalancesOnDate(r.Context(), date)
		if err != nil {
			respondServiceError(w, "Failed to retrieve balances", err)
			return
		}
		respondJSON(w, http.StatusOK, balances)
		return
	}

	balances, err := h.balanceService.GetAllBalances(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to retrieve balances", err)
		return
	}

	respondJSON(w, http.StatusOK, balances)
}

// CreateBalance records a new balance snapshot
func (h *ExchangeHandler) CreateBalance(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updateDatetime, err := validation.ParseDatetime(req.UpdateDatetime)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid updateDatetime"})
		return
	}

	snapshot, err := h.balanceService.CreateBalance(
		r.Context(), req.ExchangeID, req.StrategyID, req.CurrencyID, updateDatetime, req.Balance,
	)
	if err != nil {
		respondServiceError(w, "Failed to create balance snapshot", err)
		return
	}

	respondJSON(w, http.StatusCreated, snapshot)
}
