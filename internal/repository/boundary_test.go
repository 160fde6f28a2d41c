package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexandrekoury/painel-backend/internal/repository"
	"github.com/alexandrekoury/painel-backend/internal/testutil"
)

// TestLedgerRepository_DateBoundaries tests the strict/inclusive date bounds
// of the ledger window queries.
//
// WHY: The variation calculator splits the ledger into "before the window"
// (strictly earlier) and "in the window" (inclusive both ends). An off-by-one
// on either bound double-counts or drops transactions dated exactly on the
// window edges.
func TestLedgerRepository_DateBoundaries(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewLedgerRepository(db)

	btc := testutil.CreateCurrency(t, db, "BTC", "Bitcoin")
	testutil.CreateCryptoTransaction(t, db, btc.ID, "2026-05-31", "1", "100")
	onStart := testutil.CreateCryptoTransaction(t, db, btc.ID, "2026-06-01", "2", "110")
	onEnd := testutil.CreateCryptoTransaction(t, db, btc.ID, "2026-06-30", "3", "120")
	testutil.CreateCryptoTransaction(t, db, btc.ID, "2026-07-01", "4", "130")

	start := testutil.MustDate(t, "2026-06-01")
	end := testutil.MustDate(t, "2026-06-30")

	t.Run("before is strictly earlier than the cutoff", func(t *testing.T) {
		before, err := repo.CryptoTransactionsBefore(ctx, btc.ID, start)
		if err != nil {
			t.Fatalf("CryptoTransactionsBefore() returned unexpected error: %v", err)
		}

		if len(before) != 1 {
			t.Fatalf("Expected 1 transaction before window, got %d", len(before))
		}
		if got, want := before[0].EffectiveDate.Format("2006-01-02"), "2026-05-31"; got != want {
			t.Errorf("EffectiveDate = %s, want %s", got, want)
		}
	})

	t.Run("between includes both edge dates in ascending order", func(t *testing.T) {
		between, err := repo.CryptoTransactionsBetween(ctx, btc.ID, start, end)
		if err != nil {
			t.Fatalf("CryptoTransactionsBetween() returned unexpected error: %v", err)
		}

		if len(between) != 2 {
			t.Fatalf("Expected 2 transactions in window, got %d", len(between))
		}
		if between[0].ID != onStart.ID || between[1].ID != onEnd.ID {
			t.Errorf("Window transactions = [%s, %s], want [%s, %s]",
				between[0].ID, between[1].ID, onStart.ID, onEnd.ID)
		}
	})
}

// TestCashFlowRepository_SumCashThrough tests the inclusive cumulative sum.
func TestCashFlowRepository_SumCashThrough(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewCashFlowRepository(db)

	investor := testutil.CreateInvestor(t, db, "alice")
	testutil.CreateInvestorTransaction(t, db, investor.ID, "2026-05-31", "1000", "cash-deposit")
	testutil.CreateInvestorTransaction(t, db, investor.ID, "2026-06-01", "250", "cash-deposit")
	testutil.CreateInvestorTransaction(t, db, investor.ID, "2026-06-02", "-100", "cash-redemption")

	t.Run("includes transactions on the cutoff date", func(t *testing.T) {
		sum, err := repo.SumCashThrough(ctx, testutil.MustDate(t, "2026-06-01"))
		if err != nil {
			t.Fatalf("SumCashThrough() returned unexpected error: %v", err)
		}
		if got, want := sum.String(), "1250"; got != want {
			t.Errorf("Sum = %s, want %s", got, want)
		}
	})

	t.Run("signed amounts net out", func(t *testing.T) {
		sum, err := repo.SumCashThrough(ctx, testutil.MustDate(t, "2026-06-02"))
		if err != nil {
			t.Fatalf("SumCashThrough() returned unexpected error: %v", err)
		}
		if got, want := sum.String(), "1150"; got != want {
			t.Errorf("Sum = %s, want %s", got, want)
		}
	})

	t.Run("cutoff before all transactions sums to zero", func(t *testing.T) {
		sum, err := repo.SumCashThrough(ctx, testutil.MustDate(t, "2026-01-01"))
		if err != nil {
			t.Fatalf("SumCashThrough() returned unexpected error: %v", err)
		}
		if !sum.IsZero() {
			t.Errorf("Sum = %s, want zero", sum)
		}
	})
}

// TestBalanceRepository_BalancesOnDate tests exact-date snapshot selection.
func TestBalanceRepository_BalancesOnDate(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewBalanceRepository(db)

	exchange := testutil.CreateExchange(t, db, "Binance")
	usd := testutil.CreateCurrency(t, db, "USD", "US Dollar")
	testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-01", "4000")
	testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-01", "5000")
	testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-02", "6000")

	balances, err := repo.BalancesOnDate(ctx, testutil.MustDate(t, "2026-06-01"))
	if err != nil {
		t.Fatalf("BalancesOnDate() returned unexpected error: %v", err)
	}

	if len(balances) != 2 {
		t.Fatalf("Expected 2 snapshots on date, got %d", len(balances))
	}
}

// TestPriceRepository_Lookups tests quote selection for the two lookup modes.
func TestPriceRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewPriceRepository(db)

	btc := testutil.CreateCurrency(t, db, "BTC", "Bitcoin")

	t.Run("exact lookup picks the latest quote of the day", func(t *testing.T) {
		morning := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)
		evening := time.Date(2026, time.June, 10, 21, 0, 0, 0, time.UTC)
		testutil.CreatePriceAt(t, db, btc.ID, morning, "100")
		testutil.CreatePriceAt(t, db, btc.ID, evening, "105")

		price, found, err := repo.PriceOn(ctx, btc.ID, testutil.MustDate(t, "2026-06-10"))
		if err != nil {
			t.Fatalf("PriceOn() returned unexpected error: %v", err)
		}
		if !found {
			t.Fatal("Expected quote to be found")
		}
		if got, want := price.String(), "105"; got != want {
			t.Errorf("Price = %s, want %s", got, want)
		}
	})

	t.Run("exact lookup does not match other dates", func(t *testing.T) {
		_, found, err := repo.PriceOn(ctx, btc.ID, testutil.MustDate(t, "2026-06-11"))
		if err != nil {
			t.Fatalf("PriceOn() returned unexpected error: %v", err)
		}
		if found {
			t.Error("Expected no quote on a date without quotes")
		}
	})

	t.Run("on-or-before falls back to the most recent earlier quote", func(t *testing.T) {
		price, found, err := repo.PriceOnOrBefore(ctx, btc.ID, testutil.MustDate(t, "2026-06-15"))
		if err != nil {
			t.Fatalf("PriceOnOrBefore() returned unexpected error: %v", err)
		}
		if !found {
			t.Fatal("Expected quote to be found")
		}
		if got, want := price.String(), "105"; got != want {
			t.Errorf("Price = %s, want %s", got, want)
		}
	})

	t.Run("on-or-before finds nothing before the first quote", func(t *testing.T) {
		_, found, err := repo.PriceOnOrBefore(ctx, btc.ID, testutil.MustDate(t, "2026-06-01"))
		if err != nil {
			t.Fatalf("PriceOnOrBefore() returned unexpected error: %v", err)
		}
		if found {
			t.Error("Expected no quote before the first stored quote")
		}
	})

	t.Run("latest returns the newest quote across all dates", func(t *testing.T) {
		later := time.Date(2026, time.June, 20, 12, 0, 0, 0, time.UTC)
		testutil.CreatePriceAt(t, db, btc.ID, later, "110")

		quote, found, err := repo.Latest(ctx, btc.ID)
		if err != nil {
			t.Fatalf("Latest() returned unexpected error: %v", err)
		}
		if !found {
			t.Fatal("Expected quote to be found")
		}
		if got, want := quote.Price.String(), "110"; got != want {
			t.Errorf("Price = %s, want %s", got, want)
		}
		if !quote.QuoteTime.Equal(later) {
			t.Errorf("QuoteTime = %v, want %v", quote.QuoteTime, later)
		}
	})

	t.Run("latest reports not found for a currency without quotes", func(t *testing.T) {
		eth := testutil.CreateCurrency(t, db, "ETH", "Ethereum")

		_, found, err := repo.Latest(ctx, eth.ID)
		if err != nil {
			t.Fatalf("Latest() returned unexpected error: %v", err)
		}
		if found {
			t.Error("Expected no quote for a currency without stored quotes")
		}
	})
}

// TestCurrencyRepository_ListNonFiat tests fiat exclusion and ordering.
func TestCurrencyRepository_ListNonFiat(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewCurrencyRepository(db)

	testutil.CreateCurrency(t, db, "ETH", "Ethereum")
	testutil.CreateCurrency(t, db, "USD", "US Dollar")
	testutil.CreateCurrency(t, db, "BTC", "Bitcoin")
	testutil.CreateCurrency(t, db, "BRL", "Brazilian Real")

	currencies, err := repo.ListNonFiat(ctx, []string{"USD", "BRL"})
	if err != nil {
		t.Fatalf("ListNonFiat() returned unexpected error: %v", err)
	}

	if len(currencies) != 2 {
		t.Fatalf("Expected 2 non-fiat currencies, got %d", len(currencies))
	}
	if currencies[0].Code != "BTC" || currencies[1].Code != "ETH" {
		t.Errorf("Codes = [%s, %s], want [BTC, ETH]", currencies[0].Code, currencies[1].Code)
	}
}
