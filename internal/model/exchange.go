package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exchange represents a custodial exchange account.
// APIKey is stored fernet-encrypted and is never returned by the API.
type Exchange struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	APIKey      string    `json:"-"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Strategy represents a trading strategy under which balances are held.
type Strategy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ExchangeBalance represents a point-in-time custodial balance snapshot for an
// exchange/strategy/currency combination. Balances are taken as of a specific
// calendar date, never summed across a range.
type ExchangeBalance struct {
	ID             string          `json:"id"`
	ExchangeID     string          `json:"exchangeId"`
	StrategyID     string          `json:"strategyId"`
	CurrencyID     string          `json:"currencyId"`
	UpdateDatetime time.Time       `json:"updateDatetime"`
	Balance        decimal.Decimal `json:"balance"`
}
