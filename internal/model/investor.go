package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investor represents a fund investor.
type Investor struct {
	ID       string `json:"id"`
	Alias    string `json:"alias"`
	Username string `json:"username"`
}

// Investor transaction types. Cash movements affect the fund's cash position;
// kind movements are in-kind contributions or redemptions of crypto assets.
const (
	TransactionCashDeposit    = "cash-deposit"
	TransactionCashRedemption = "cash-redemption"
	TransactionKindDeposit    = "kind-deposit"
	TransactionKindRedemption = "kind-redemption"
)

// InvestorTransaction represents an investor cash or in-kind movement.
// CashAmount is signed: deposits positive, redemptions negative.
type InvestorTransaction struct {
	ID             string          `json:"id"`
	InvestorID     string          `json:"investorId"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	Type           string          `json:"type"`
	CashAmount     decimal.Decimal `json:"cashAmount"`
	KindAmount     decimal.Decimal `json:"kindAmount"`
	CashCurrencyID string          `json:"cashCurrencyId,omitempty"`
	KindCurrencyID string          `json:"kindCurrencyId,omitempty"`
	NAV            decimal.Decimal `json:"nav"`
}
