package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexandrekoury/painel-backend/internal/repository"
	"github.com/alexandrekoury/painel-backend/internal/service"
)

// DefaultFiatCodes is the fiat exclusion set used by tests.
var DefaultFiatCodes = []string{"USD", "BRL"}

// NewTestReportService wires a ReportService against the test database.
func NewTestReportService(t *testing.T, db *sql.DB) *service.ReportService {
	t.Helper()

	return service.NewReportService(
		repository.NewLedgerRepository(db),
		repository.NewCashFlowRepository(db),
		repository.NewBalanceRepository(db),
		repository.NewCurrencyRepository(db),
		repository.NewPriceRepository(db),
		DefaultFiatCodes,
	)
}

// NewTestCurrencyService wires a CurrencyService against the test database.
func NewTestCurrencyService(t *testing.T, db *sql.DB) *service.CurrencyService {
	t.Helper()

	return service.NewCurrencyService(repository.NewCurrencyRepository(db), DefaultFiatCodes)
}

// NewTestTransactionService wires a TransactionService against the test database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewLedgerRepository(db),
		repository.NewCashFlowRepository(db),
		repository.NewCurrencyRepository(db),
	)
}

// NewTestBalanceService wires a BalanceService against the test database.
func NewTestBalanceService(t *testing.T, db *sql.DB) *service.BalanceService {
	t.Helper()

	return service.NewBalanceService(
		repository.NewBalanceRepository(db),
		repository.NewExchangeRepository(db),
	)
}

// NewTestSystemService wires a SystemService against the test database.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestExchangeService wires an ExchangeService with a generated fernet key.
func NewTestExchangeService(t *testing.T, db *sql.DB, fernetKey string) *service.ExchangeService {
	t.Helper()

	svc, err := service.NewExchangeService(repository.NewExchangeRepository(db), fernetKey)
	if err != nil {
		t.Fatalf("Failed to create exchange service: %v", err)
	}
	return svc
}
