package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// PriceMode selects how a quote date is matched.
type PriceMode int

const (
	// PriceExact matches the latest quote whose calendar date equals the lookup date.
	PriceExact PriceMode = iota
	// PriceOnOrBefore matches the most recent quote on or before the lookup date.
	PriceOnOrBefore
)

func (m PriceMode) String() string {
	if m == PriceExact {
		return "exact"
	}
	return "on-or-before"
}

// PriceStore is the read contract the resolver needs from the quote store.
// The boolean reports whether a quote was found; absence is not an error.
type PriceStore interface {
	PriceOn(ctx context.Context, currencyID string, date time.Time) (decimal.Decimal, bool, error)
	PriceOnOrBefore(ctx context.Context, currencyID string, date time.Time) (decimal.Decimal, bool, error)
}

// MissingPrice records a lookup that found no quote and fell back to zero.
// The report surfaces these so zero-priced variation entries can be audited.
type MissingPrice struct {
	CurrencyID string `json:"currency_id"`
	Date       string `json:"date"`
	Mode       string `json:"mode"`
}

type priceKey struct {
	currencyID string
	mode       PriceMode
	date       string
}

// priceResolver resolves quote prices with per-computation memoization.
// One resolver is allocated per report run and discarded afterward: quote data
// is assumed immutable for the duration of a single computation, so entries
// are never invalidated, and nothing is shared across runs.
//
// A missing quote resolves to zero, never an error. That is the engine's
// documented best-effort policy; every zero fallback is recorded in the
// missing list.
//
// The resolver is safe for use from the concurrent per-currency goroutines of
// a single report run.
type priceResolver struct {
	store PriceStore

	mu      sync.Mutex
	cache   map[priceKey]decimal.Decimal
	missing []MissingPrice
}

func newPriceResolver(store PriceStore) *priceResolver {
	return &priceResolver{
		store: store,
		cache: make(map[priceKey]decimal.Decimal),
	}
}

// Resolve returns the price for a currency at a date under the given mode,
// or zero when no quote exists.
func (r *priceResolver) Resolve(ctx context.Context, currencyID string, mode PriceMode, date time.Time) (decimal.Decimal, error) {
	key := priceKey{currencyID: currencyID, mode: mode, date: date.Format("2006-01-02")}

	r.mu.Lock()
	if price, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return price, nil
	}
	r.mu.Unlock()

	var price decimal.Decimal
	var found bool
	var err error
	switch mode {
	case PriceExact:
		price, found, err = r.store.PriceOn(ctx, currencyID, date)
	default:
		price, found, err = r.store.PriceOnOrBefore(ctx, currencyID, date)
	}
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		price = decimal.Zero
	}

	r.mu.Lock()
	r.cache[key] = price
	if !found {
		r.missing = append(r.missing, MissingPrice{
			CurrencyID: currencyID,
			Date:       key.date,
			Mode:       mode.String(),
		})
	}
	r.mu.Unlock()

	return price, nil
}

// MissingPrices returns the recorded zero fallbacks in a deterministic order,
// regardless of how the concurrent per-currency lookups interleaved.
func (r *priceResolver) MissingPrices() []MissingPrice {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]MissingPrice, len(r.missing))
	copy(out, r.missing)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CurrencyID != out[j].CurrencyID {
			return out[i].CurrencyID < out[j].CurrencyID
		}
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Mode < out[j].Mode
	})
	return out
}
