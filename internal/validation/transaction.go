package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexandrekoury/painel-backend/internal/api/request"
	"github.com/alexandrekoury/painel-backend/internal/model"
)

// ValidInvestorTransactionType contains the allowed investor movement types.
var ValidInvestorTransactionType = map[string]bool{
	model.TransactionCashDeposit:    true,
	model.TransactionCashRedemption: true,
	model.TransactionKindDeposit:    true,
	model.TransactionKindRedemption: true,
}

// ValidateCreateCryptoTransaction validates a crypto ledger entry creation request.
//
// Required fields:
//   - currencyId: Must be a valid UUID
//   - effectiveDate: Must be in YYYY-MM-DD format
//   - amount: Must be non-zero (signed; positive buys, negative sells)
//   - price: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateCryptoTransaction(req request.CreateCryptoTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.CurrencyID); err != nil {
		return err
	}

	if strings.TrimSpace(req.EffectiveDate) == "" {
		errors["effectiveDate"] = "effectiveDate is required"
	} else if _, err := time.Parse("2006-01-02", req.EffectiveDate); err != nil {
		errors["effectiveDate"] = err.Error()
	}

	if req.Amount.IsZero() {
		errors["amount"] = "amount must be non-zero"
	}

	if req.Price.IsNegative() {
		errors["price"] = "price must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCreateInvestorTransaction validates an investor movement creation request.
//
// Required fields:
//   - investorId: Must be a valid UUID
//   - effectiveDate: Must be in YYYY-MM-DD format
//   - type: Must be one of the investor transaction types
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateInvestorTransaction(req request.CreateInvestorTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.InvestorID); err != nil {
		return err
	}

	if strings.TrimSpace(req.EffectiveDate) == "" {
		errors["effectiveDate"] = "effectiveDate is required"
	} else if _, err := time.Parse("2006-01-02", req.EffectiveDate); err != nil {
		errors["effectiveDate"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidInvestorTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
