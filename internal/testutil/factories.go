package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/repository"
)

// Factories insert test fixtures through the real repositories so tests
// exercise the same SQL paths as production code. Date parameters are
// "2006-01-02" strings; decimal parameters are decimal strings.

// MustDate parses a "2006-01-02" date string or fails the test.
func MustDate(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Failed to parse test date %q: %v", date, err)
	}
	return parsed.UTC()
}

// MustDecimal parses a decimal string or fails the test.
func MustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("Failed to parse test decimal %q: %v", value, err)
	}
	return parsed
}

// CreateCurrency inserts a currency and returns it.
func CreateCurrency(t *testing.T, db *sql.DB, code, name string) model.Currency {
	t.Helper()

	currency := model.Currency{
		ID:   uuid.NewString(),
		Code: code,
		Name: name,
	}
	if err := repository.NewCurrencyRepository(db).Create(context.Background(), currency); err != nil {
		t.Fatalf("Failed to create test currency: %v", err)
	}
	return currency
}

// CreateInvestor inserts an investor and returns it.
func CreateInvestor(t *testing.T, db *sql.DB, alias string) model.Investor {
	t.Helper()

	investor := model.Investor{
		ID:       uuid.NewString(),
		Alias:    alias,
		Username: alias,
	}
	if err := repository.NewInvestorRepository(db).Create(context.Background(), investor); err != nil {
		t.Fatalf("Failed to create test investor: %v", err)
	}
	return investor
}

// CreateExchange inserts an exchange and returns it.
func CreateExchange(t *testing.T, db *sql.DB, name string) model.Exchange {
	t.Helper()

	exchange := model.Exchange{
		ID:        uuid.NewString(),
		Name:      name,
		UpdatedAt: time.Now().UTC(),
	}
	if err := repository.NewExchangeRepository(db).CreateExchange(context.Background(), exchange); err != nil {
		t.Fatalf("Failed to create test exchange: %v", err)
	}
	return exchange
}

// CreateCryptoTransaction inserts a crypto ledger entry and returns it.
// amount is signed: positive buys, negative sells.
func CreateCryptoTransaction(t *testing.T, db *sql.DB, currencyID, date, amount, price string) model.CryptoTransaction {
	t.Helper()

	transaction := model.CryptoTransaction{
		ID:            uuid.NewString(),
		CurrencyID:    currencyID,
		EffectiveDate: MustDate(t, date),
		Amount:        MustDecimal(t, amount),
		Price:         MustDecimal(t, price),
	}
	if err := repository.NewLedgerRepository(db).Create(context.Background(), transaction); err != nil {
		t.Fatalf("Failed to create test crypto transaction: %v", err)
	}
	return transaction
}

// CreateInvestorTransaction inserts an investor cash movement and returns it.
func CreateInvestorTransaction(t *testing.T, db *sql.DB, investorID, date, cashAmount, transactionType string) model.InvestorTransaction {
	t.Helper()

	transaction := model.InvestorTransaction{
		ID:            uuid.NewString(),
		InvestorID:    investorID,
		EffectiveDate: MustDate(t, date),
		Type:          transactionType,
		CashAmount:    MustDecimal(t, cashAmount),
		KindAmount:    decimal.Zero,
		NAV:           decimal.Zero,
	}
	if err := repository.NewCashFlowRepository(db).Create(context.Background(), transaction); err != nil {
		t.Fatalf("Failed to create test investor transaction: %v", err)
	}
	return transaction
}

// CreateBalance inserts a balance snapshot taken on the given date and returns it.
func CreateBalance(t *testing.T, db *sql.DB, exchangeID, currencyID, date, balance string) model.ExchangeBalance {
	t.Helper()

	snapshot := model.ExchangeBalance{
		ID:             uuid.NewString(),
		ExchangeID:     exchangeID,
		CurrencyID:     currencyID,
		UpdateDatetime: MustDate(t, date),
		Balance:        MustDecimal(t, balance),
	}
	if err := repository.NewBalanceRepository(db).Create(context.Background(), snapshot); err != nil {
		t.Fatalf("Failed to create test balance snapshot: %v", err)
	}
	return snapshot
}

// CreatePrice inserts a price quote at midnight UTC of the given date and returns it.
func CreatePrice(t *testing.T, db *sql.DB, currencyID, date, price string) model.CoinPrice {
	t.Helper()
	return CreatePriceAt(t, db, currencyID, MustDate(t, date), price)
}

// CreatePriceAt inserts a price quote with an explicit timestamp and returns it.
// Use this to test same-day tie-breaking between multiple quotes.
func CreatePriceAt(t *testing.T, db *sql.DB, currencyID string, quoteTime time.Time, price string) model.CoinPrice {
	t.Helper()

	quote := model.CoinPrice{
		ID:         uuid.NewString(),
		CurrencyID: currencyID,
		QuoteTime:  quoteTime,
		Price:      MustDecimal(t, price),
	}
	if err := repository.NewPriceRepository(db).Insert(context.Background(), quote); err != nil {
		t.Fatalf("Failed to create test price quote: %v", err)
	}
	return quote
}
