package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoinPrice represents a price quote for a currency at a point in time.
// Multiple quotes per currency per day may exist; "the price on date D" means
// the latest quote whose calendar date equals D.
type CoinPrice struct {
	ID         string          `json:"id"`
	CurrencyID string          `json:"currencyId"`
	QuoteTime  time.Time       `json:"quoteTime"`
	Price      decimal.Decimal `json:"price"`
}
