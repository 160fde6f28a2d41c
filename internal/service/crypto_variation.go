package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// TransactionVariation records one in-window transaction's contribution to a
// currency's value variation, kept for audit and display.
type TransactionVariation struct {
	TransactionID           string          `json:"transaction_id"`
	TransactionDate         string          `json:"transaction_date"`
	Amount                  decimal.Decimal `json:"amount"`
	TransactionPrice        decimal.Decimal `json:"transaction_price"`
	MeasurementStart        string          `json:"measurement_start"`
	PriceAtMeasurementStart decimal.Decimal `json:"price_at_measurement_start"`
	PriceAtEnd              decimal.Decimal `json:"price_at_end"`
	Variation               decimal.Decimal `json:"variation"`
	AveragePriceAfter       decimal.Decimal `json:"avg_price_after_tx"`
}

// CurrencyVariation holds one currency's value variation over the window.
type CurrencyVariation struct {
	CurrencyID   string                 `json:"currency_id"`
	CurrencyCode string                 `json:"currency_code"`
	Amount       decimal.Decimal        `json:"amount"`
	AveragePrice decimal.Decimal        `json:"average_price"`
	StartPrice   decimal.Decimal        `json:"start_price"`
	EndPrice     decimal.Decimal        `json:"end_price"`
	Variation    decimal.Decimal        `json:"variation"`
	Transactions []TransactionVariation `json:"holdings_details"`
}

// CryptoVariationResult holds the aggregate crypto variation for a window.
// MissingPrices lists every lookup that fell back to zero during the run.
type CryptoVariationResult struct {
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date"`
	TotalVariation decimal.Decimal     `json:"total_variation"`
	Currencies     []CurrencyVariation `json:"variations_by_currency"`
	MissingPrices  []MissingPrice      `json:"missing_prices,omitempty"`
}

// CryptoVariation computes the value variation of crypto holdings between two
// dates using the weighted-average cost method.
//
// Per non-fiat currency, the total decomposes into "what was already held,
// multiplied by price drift over the whole window" plus "what was traded,
// multiplied by price drift since it was traded". Partial disposals
// mid-window are handled because the cost tracker is re-seeded from the exact
// pre-window state.
//
// Currencies are computed concurrently; each one's computation is independent,
// sharing only this run's price cache. The result list is ordered by currency
// code regardless of execution order.
func (s *ReportService) CryptoVariation(ctx context.Context, start, end time.Time) (CryptoVariationResult, error) {
	currencies, err := s.currencies.ListNonFiat(ctx, s.fiatCodes)
	if err != nil {
		return CryptoVariationResult{}, err
	}

	resolver := newPriceResolver(s.prices)

	// ListNonFiat returns currencies sorted by code; fan-in by index keeps
	// that ordering deterministic.
	results := make([]*CurrencyVariation, len(currencies))
	g, gctx := errgroup.WithContext(ctx)
	for i, currency := range currencies {
		i, currency := i, currency
		g.Go(func() error {
			variation, err := s.currencyVariation(gctx, resolver, currency, start, end)
			if err != nil {
				return err
			}
			results[i] = variation
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CryptoVariationResult{}, err
	}

	total := decimal.Zero
	variations := []CurrencyVariation{}
	for _, variation := range results {
		if variation == nil {
			continue
		}
		total = total.Add(variation.Variation)
		variations = append(variations, *variation)
	}

	return CryptoVariationResult{
		StartDate:      start.Format(DateFormat),
		EndDate:        end.Format(DateFormat),
		TotalVariation: total,
		Currencies:     variations,
		MissingPrices:  resolver.MissingPrices(),
	}, nil
}

// currencyVariation computes one currency's variation. Returns nil (no entry)
// when the currency had no holdings before the window and no in-window
// transactions.
func (s *ReportService) currencyVariation(
	ctx context.Context,
	resolver *priceResolver,
	currency model.Currency,
	start, end time.Time,
) (*CurrencyVariation, error) {

	inWindow, err := s.ledger.CryptoTransactionsBetween(ctx, currency.ID, start, end)
	if err != nil {
		return nil, err
	}

	before, err := s.ledger.CryptoTransactionsBefore(ctx, currency.ID, start)
	if err != nil {
		return nil, err
	}
	tracker := replayTransactions(before)
	amountBefore := tracker.Amount()

	if amountBefore.IsZero() && len(inWindow) == 0 {
		return nil, nil
	}

	startPrice, err := resolver.Resolve(ctx, currency.ID, PriceExact, start)
	if err != nil {
		return nil, err
	}
	endPrice, err := resolver.Resolve(ctx, currency.ID, PriceExact, end)
	if err != nil {
		return nil, err
	}

	// Price movement over the whole window, attributed to holdings that
	// existed at the window's start.
	variation := amountBefore.Mul(endPrice.Sub(startPrice))

	totalHeld := amountBefore
	details := []TransactionVariation{}

	for _, tx := range inWindow {
		totalHeld = totalHeld.Add(tx.Amount)
		tracker.Apply(tx)

		measurementStart := maxDate(start, tx.EffectiveDate)
		if measurementStart.After(end) || !totalHeld.IsPositive() {
			continue
		}

		// The price when this slice started being held: the transaction's
		// own recorded price when the measurement start is the transaction's
		// date inside the window, otherwise the most recent earlier quote.
		var priceWhenHeld decimal.Decimal
		if sameDay(measurementStart, tx.EffectiveDate) && !tx.EffectiveDate.Before(start) {
			priceWhenHeld = tx.Price
		} else {
			priceWhenHeld, err = resolver.Resolve(ctx, currency.ID, PriceOnOrBefore, measurementStart)
			if err != nil {
				return nil, err
			}
		}

		txVariation := tx.Amount.Mul(endPrice.Sub(priceWhenHeld))
		variation = variation.Add(txVariation)

		details = append(details, TransactionVariation{
			TransactionID:           tx.ID,
			TransactionDate:         tx.EffectiveDate.Format(DateFormat),
			Amount:                  tx.Amount,
			TransactionPrice:        tx.Price,
			MeasurementStart:        measurementStart.Format(DateFormat),
			PriceAtMeasurementStart: priceWhenHeld,
			PriceAtEnd:              endPrice,
			Variation:               txVariation,
			AveragePriceAfter:       tracker.AveragePrice(),
		})
	}

	return &CurrencyVariation{
		CurrencyID:   currency.ID,
		CurrencyCode: currency.Code,
		Amount:       totalHeld,
		AveragePrice: tracker.AveragePrice(),
		StartPrice:   startPrice,
		EndPrice:     endPrice,
		Variation:    variation,
		Transactions: details,
	}, nil
}

func maxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func sameDay(a, b time.Time) bool {
	return a.Format(DateFormat) == b.Format(DateFormat)
}
