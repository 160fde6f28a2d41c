package service_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/service"
)

func ledgerEntry(t *testing.T, amount, price string) model.CryptoTransaction {
	t.Helper()

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("Failed to parse amount %q: %v", amount, err)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("Failed to parse price %q: %v", price, err)
	}
	return model.CryptoTransaction{Amount: amt, Price: p}
}

// TestCostBasisTracker_Apply tests the weighted-average cost replay.
//
// WHY: Every variation figure on the dashboard is built on this replay. The
// proportional cost reduction on disposals and the exact-zero reset when a
// position empties are the two behaviors that silently corrupt average prices
// when they regress.
func TestCostBasisTracker_Apply(t *testing.T) {
	t.Run("accumulates cost on acquisitions", func(t *testing.T) {
		tracker := service.NewCostBasisTracker()
		tracker.Apply(ledgerEntry(t, "10", "100"))
		tracker.Apply(ledgerEntry(t, "5", "130"))

		if got, want := tracker.Amount().String(), "15"; got != want {
			t.Errorf("Amount = %s, want %s", got, want)
		}
		if got, want := tracker.CostBasis().String(), "1650"; got != want {
			t.Errorf("CostBasis = %s, want %s", got, want)
		}
		if got, want := tracker.AveragePrice().String(), "110"; got != want {
			t.Errorf("AveragePrice = %s, want %s", got, want)
		}
	})

	t.Run("scales cost proportionally on partial disposal", func(t *testing.T) {
		tracker := service.NewCostBasisTracker()
		tracker.Apply(ledgerEntry(t, "10", "100"))
		tracker.Apply(ledgerEntry(t, "-4", "250"))

		// Selling 40% of holdings removes 40% of the cost basis; the
		// disposal price is irrelevant to the remaining basis.
		if got, want := tracker.Amount().String(), "6"; got != want {
			t.Errorf("Amount = %s, want %s", got, want)
		}
		if got, want := tracker.CostBasis().String(), "600"; got != want {
			t.Errorf("CostBasis = %s, want %s", got, want)
		}
		if got, want := tracker.AveragePrice().String(), "100"; got != want {
			t.Errorf("AveragePrice = %s, want %s", got, want)
		}
	})

	t.Run("resets to exact zero when position empties", func(t *testing.T) {
		tracker := service.NewCostBasisTracker()
		tracker.Apply(ledgerEntry(t, "3", "333.33"))
		tracker.Apply(ledgerEntry(t, "-3", "400"))

		if !tracker.Amount().IsZero() {
			t.Errorf("Amount = %s, want exact zero", tracker.Amount())
		}
		if !tracker.CostBasis().IsZero() {
			t.Errorf("CostBasis = %s, want exact zero", tracker.CostBasis())
		}
	})

	t.Run("resets to exact zero on overdrawn disposal", func(t *testing.T) {
		tracker := service.NewCostBasisTracker()
		tracker.Apply(ledgerEntry(t, "2", "50"))
		tracker.Apply(ledgerEntry(t, "-5", "60"))

		if !tracker.Amount().IsZero() {
			t.Errorf("Amount = %s, want exact zero", tracker.Amount())
		}
		if !tracker.CostBasis().IsZero() {
			t.Errorf("CostBasis = %s, want exact zero", tracker.CostBasis())
		}
	})

	t.Run("ignores disposal with no holdings", func(t *testing.T) {
		tracker := service.NewCostBasisTracker()
		tracker.Apply(ledgerEntry(t, "-5", "100"))

		if !tracker.Amount().IsZero() {
			t.Errorf("Amount = %s, want zero", tracker.Amount())
		}
		if !tracker.CostBasis().IsZero() {
			t.Errorf("CostBasis = %s, want zero", tracker.CostBasis())
		}
	})

	t.Run("rebuilding after full disposal starts from clean state", func(t *testing.T) {
		tracker := service.NewCostBasisTracker()
		tracker.Apply(ledgerEntry(t, "10", "100"))
		tracker.Apply(ledgerEntry(t, "-10", "120"))
		tracker.Apply(ledgerEntry(t, "4", "200"))

		if got, want := tracker.Amount().String(), "4"; got != want {
			t.Errorf("Amount = %s, want %s", got, want)
		}
		if got, want := tracker.AveragePrice().String(), "200"; got != want {
			t.Errorf("AveragePrice = %s, want %s", got, want)
		}
	})
}

// TestCostBasisTracker_AveragePrice tests the derived unit price.
func TestCostBasisTracker_AveragePrice(t *testing.T) {
	t.Run("returns zero for empty holdings", func(t *testing.T) {
		tracker := service.NewCostBasisTracker()

		if !tracker.AveragePrice().IsZero() {
			t.Errorf("AveragePrice = %s, want zero", tracker.AveragePrice())
		}
	})

	t.Run("stays non-negative across buy and sell sequences", func(t *testing.T) {
		tracker := service.NewCostBasisTracker()
		entries := []model.CryptoTransaction{
			ledgerEntry(t, "1.5", "30000"),
			ledgerEntry(t, "-0.5", "35000"),
			ledgerEntry(t, "2", "28000"),
			ledgerEntry(t, "-2.9", "40000"),
			ledgerEntry(t, "0.25", "31000"),
		}
		for _, entry := range entries {
			tracker.Apply(entry)
			if tracker.AveragePrice().IsNegative() {
				t.Fatalf("AveragePrice went negative after entry %s @ %s: %s",
					entry.Amount, entry.Price, tracker.AveragePrice())
			}
		}
	})
}

// TestSeededCostBasisTracker tests resuming replay from a prior state.
func TestSeededCostBasisTracker(t *testing.T) {
	full := service.NewCostBasisTracker()
	full.Apply(ledgerEntry(t, "10", "100"))
	full.Apply(ledgerEntry(t, "-2", "150"))
	full.Apply(ledgerEntry(t, "5", "120"))

	// Seeding from an intermediate state must produce the same result as
	// replaying the whole sequence in one pass.
	partial := service.NewCostBasisTracker()
	partial.Apply(ledgerEntry(t, "10", "100"))
	partial.Apply(ledgerEntry(t, "-2", "150"))
	resumed := service.SeededCostBasisTracker(partial.Amount(), partial.CostBasis())
	resumed.Apply(ledgerEntry(t, "5", "120"))

	if !resumed.Amount().Equal(full.Amount()) {
		t.Errorf("Amount = %s, want %s", resumed.Amount(), full.Amount())
	}
	if !resumed.CostBasis().Equal(full.CostBasis()) {
		t.Errorf("CostBasis = %s, want %s", resumed.CostBasis(), full.CostBasis())
	}
}
