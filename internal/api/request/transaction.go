package request

import "github.com/shopspring/decimal"

// CreateCryptoTransactionRequest represents the request body for recording a
// crypto ledger entry. Amount is signed: positive buys, negative sells.
type CreateCryptoTransactionRequest struct {
	CurrencyID    string          `json:"currencyId"`
	InvestorID    string          `json:"investorId,omitempty"`
	EffectiveDate string          `json:"effectiveDate"`
	Amount        decimal.Decimal `json:"amount"`
	Price         decimal.Decimal `json:"price"`
}

// CreateInvestorTransactionRequest represents the request body for recording
// an investor cash/kind movement.
type CreateInvestorTransactionRequest struct {
	InvestorID     string          `json:"investorId"`
	EffectiveDate  string          `json:"effectiveDate"`
	Type           string          `json:"type"`
	CashAmount     decimal.Decimal `json:"cashAmount"`
	KindAmount     decimal.Decimal `json:"kindAmount"`
	CashCurrencyID string          `json:"cashCurrencyId,omitempty"`
	KindCurrencyID string          `json:"kindCurrencyId,omitempty"`
	NAV            decimal.Decimal `json:"nav"`
}

// CreatePriceRequest represents the request body for recording a manual quote.
type CreatePriceRequest struct {
	CurrencyID string          `json:"currencyId"`
	QuoteTime  string          `json:"quoteTime,omitempty"`
	Price      decimal.Decimal `json:"price"`
}
