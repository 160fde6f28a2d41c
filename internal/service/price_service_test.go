package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alexandrekoury/painel-backend/internal/repository"
	"github.com/alexandrekoury/painel-backend/internal/service"
	"github.com/alexandrekoury/painel-backend/internal/testutil"
)

// stubFeed returns canned quotes and records the codes it was asked for.
type stubFeed struct {
	prices     map[string]decimal.Decimal
	err        error
	askedCodes []string
}

func (f *stubFeed) SimplePrices(_ context.Context, codes []string, _ string) (map[string]decimal.Decimal, error) {
	f.askedCodes = codes
	if f.err != nil {
		return nil, f.err
	}
	return f.prices, nil
}

// TestPriceSyncService_SyncAll tests the scheduled quote sync.
//
// WHY: The sync job is the only automated writer of coin_price rows. It must
// ask the feed for exactly the non-fiat set and tolerate partial feed
// coverage, or the dashboard silently loses its quote history.
func TestPriceSyncService_SyncAll(t *testing.T) {
	ctx := context.Background()

	t.Run("stores one quote per covered currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := &stubFeed{prices: map[string]decimal.Decimal{
			"btc": testutil.MustDecimal(t, "64250.12"),
			"eth": testutil.MustDecimal(t, "3120.55"),
		}}
		svc := service.NewPriceSyncService(
			feed,
			repository.NewPriceRepository(db),
			repository.NewCurrencyRepository(db),
			testutil.DefaultFiatCodes,
			"usd",
		)

		btc := testutil.CreateCurrency(t, db, "BTC", "Bitcoin")
		testutil.CreateCurrency(t, db, "ETH", "Ethereum")
		testutil.CreateCurrency(t, db, "USD", "US Dollar")

		stored, err := svc.SyncAll(ctx)
		if err != nil {
			t.Fatalf("SyncAll() returned unexpected error: %v", err)
		}
		if stored != 2 {
			t.Errorf("Expected 2 quotes stored, got %d", stored)
		}

		// Fiat must not be requested from the feed.
		for _, code := range feed.askedCodes {
			if code == "USD" {
				t.Error("Feed was asked for a fiat code")
			}
		}

		quotes, err := repository.NewPriceRepository(db).ListByCurrency(ctx, btc.ID)
		if err != nil {
			t.Fatalf("ListByCurrency() returned unexpected error: %v", err)
		}
		if len(quotes) != 1 {
			t.Fatalf("Expected 1 stored quote, got %d", len(quotes))
		}
		if got, want := quotes[0].Price.String(), "64250.12"; got != want {
			t.Errorf("Price = %s, want %s", got, want)
		}
	})

	t.Run("skips currencies the feed does not cover", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := &stubFeed{prices: map[string]decimal.Decimal{
			"btc": testutil.MustDecimal(t, "100"),
		}}
		svc := service.NewPriceSyncService(
			feed,
			repository.NewPriceRepository(db),
			repository.NewCurrencyRepository(db),
			testutil.DefaultFiatCodes,
			"usd",
		)

		testutil.CreateCurrency(t, db, "BTC", "Bitcoin")
		testutil.CreateCurrency(t, db, "OBSCURE", "Obscure Coin")

		stored, err := svc.SyncAll(ctx)
		if err != nil {
			t.Fatalf("SyncAll() returned unexpected error: %v", err)
		}
		if stored != 1 {
			t.Errorf("Expected 1 quote stored, got %d", stored)
		}
	})

	t.Run("feed failure aborts the sync", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := &stubFeed{err: errors.New("feed unavailable")}
		svc := service.NewPriceSyncService(
			feed,
			repository.NewPriceRepository(db),
			repository.NewCurrencyRepository(db),
			testutil.DefaultFiatCodes,
			"usd",
		)

		testutil.CreateCurrency(t, db, "BTC", "Bitcoin")

		if _, err := svc.SyncAll(ctx); err == nil {
			t.Error("Expected error when feed fails")
		}
	})

	t.Run("no non-fiat currencies stores nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := &stubFeed{}
		svc := service.NewPriceSyncService(
			feed,
			repository.NewPriceRepository(db),
			repository.NewCurrencyRepository(db),
			testutil.DefaultFiatCodes,
			"usd",
		)

		testutil.CreateCurrency(t, db, "USD", "US Dollar")

		stored, err := svc.SyncAll(ctx)
		if err != nil {
			t.Fatalf("SyncAll() returned unexpected error: %v", err)
		}
		if stored != 0 {
			t.Errorf("Expected 0 quotes stored, got %d", stored)
		}
		if feed.askedCodes != nil {
			t.Errorf("Feed should not have been queried, asked for %v", feed.askedCodes)
		}
	})
}
