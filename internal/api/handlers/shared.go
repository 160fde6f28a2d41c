package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alexandrekoury/painel-backend/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps service errors to HTTP status codes and sends a
// structured error response. Not-found sentinels map to 404, validation
// sentinels to 400, everything else to 500.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrCurrencyNotFound),
		errors.Is(err, apperrors.ErrInvestorNotFound),
		errors.Is(err, apperrors.ErrExchangeNotFound),
		errors.Is(err, apperrors.ErrStrategyNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrQuoteNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrMissingRequiredField),
		errors.Is(err, apperrors.ErrInvalidTransactionType),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrEmptyID):
		status = http.StatusBadRequest
	}

	errorResponse := map[string]string{
		"error":  message,
		"detail": err.Error(),
	}
	respondJSON(w, status, errorResponse)
}
