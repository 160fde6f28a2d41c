package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexandrekoury/painel-backend/internal/api/request"
	"github.com/alexandrekoury/painel-backend/internal/api/response"
	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/service"
	"github.com/alexandrekoury/painel-backend/internal/validation"
)

// TransactionHandler handles crypto and investor transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CryptoTransactions lists all crypto ledger entries
func (h *TransactionHandler) CryptoTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetAllCryptoTransactions(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to retrieve crypto transactions", err)
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

// CreateCryptoTransaction records a new crypto ledger entry
func (h *TransactionHandler) CreateCryptoTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCryptoTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := validation.ValidateCreateCryptoTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	effectiveDate, err := validation.ParseDate(req.EffectiveDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid effectiveDate"})
		return
	}

	transaction, err := h.transactionService.CreateCryptoTransaction(
		r.Context(), req.CurrencyID, req.InvestorID, effectiveDate, req.Amount, req.Price,
	)
	if err != nil {
		respondServiceError(w, "Failed to create crypto transaction", err)
		return
	}

	respondJSON(w, http.StatusCreated, transaction)
}

// DeleteCryptoTransaction removes a crypto ledger entry
func (h *TransactionHandler) DeleteCryptoTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteCryptoTransaction(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, "Failed to delete crypto transaction", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// InvestorTransactions lists all investor cash/kind movements
func (h *TransactionHandler) InvestorTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetAllInvestorTransactions(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to retrieve investor transactions", err)
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

// CreateInvestorTransaction records a new investor cash/kind movement
func (h *TransactionHandler) CreateInvestorTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.CreateInvestorTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := validation.ValidateCreateInvestorTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	effectiveDate, err := validation.ParseDate(req.EffectiveDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid effectiveDate"})
		return
	}

	transaction, err := h.transactionService.CreateInvestorTransaction(r.Context(), model.InvestorTransaction{
		InvestorID:     req.InvestorID,
		EffectiveDate:  effectiveDate,
		Type:           req.Type,
		CashAmount:     req.CashAmount,
		KindAmount:     req.KindAmount,
		CashCurrencyID: req.CashCurrencyID,
		KindCurrencyID: req.KindCurrencyID,
		NAV:            req.NAV,
	})
	if err != nil {
		respondServiceError(w, "Failed to create investor transaction", err)
		return
	}

	respondJSON(w, http.StatusCreated, transaction)
}

// DeleteInvestorTransaction removes an investor transaction
func (h *TransactionHandler) DeleteInvestorTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteInvestorTransaction(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, "Failed to delete investor transaction", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
