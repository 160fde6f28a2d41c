package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CryptoTransaction represents a crypto ledger entry. Amount is signed: a
// positive amount is an acquisition (buy), a negative amount a disposal (sell).
// Entries are immutable once created.
type CryptoTransaction struct {
	ID            string          `json:"id"`
	CurrencyID    string          `json:"currencyId"`
	InvestorID    string          `json:"investorId,omitempty"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	Amount        decimal.Decimal `json:"amount"`
	Price         decimal.Decimal `json:"price"`
}
