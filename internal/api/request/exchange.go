package request

import "github.com/shopspring/decimal"

// CreateExchangeRequest represents the request body for creating an exchange.
// APIKey, when present, is encrypted before storage and never echoed back.
type CreateExchangeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	APIKey      string `json:"apiKey,omitempty"`
}

// CreateStrategyRequest represents the request body for creating a strategy
type CreateStrategyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateBalanceRequest represents the request body for recording a balance snapshot.
// UpdateDatetime is RFC3339; the snapshot's calendar date drives report queries.
type CreateBalanceRequest struct {
	ExchangeID     string          `json:"exchangeId"`
	StrategyID     string          `json:"strategyId,omitempty"`
	CurrencyID     string          `json:"currencyId"`
	UpdateDatetime string          `json:"updateDatetime"`
	Balance        decimal.Decimal `json:"balance"`
}
