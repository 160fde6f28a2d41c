package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// PriceRepository provides data access methods for the coin_price table.
// Lookups resolve a quote for a calendar date; when several quotes share that
// date, the latest by timestamp wins.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// PriceOn returns the price of the latest quote whose calendar date equals the
// given date for a currency. The boolean reports whether a quote was found;
// missing data is not an error.
func (s *PriceRepository) PriceOn(ctx context.Context, currencyID string, date time.Time) (decimal.Decimal, bool, error) {
	query := `
		SELECT price
		FROM coin_price
		WHERE currency_id = ?
		AND date(quote_time) = ?
		ORDER BY quote_time DESC
		LIMIT 1
	`
	return s.queryPrice(ctx, query, currencyID, date.Format(DateFormat))
}

// PriceOnOrBefore returns the price of the most recent quote whose calendar
// date is on or before the given date for a currency.
func (s *PriceRepository) PriceOnOrBefore(ctx context.Context, currencyID string, date time.Time) (decimal.Decimal, bool, error) {
	query := `
		SELECT price
		FROM coin_price
		WHERE currency_id = ?
		AND date(quote_time) <= ?
		ORDER BY quote_time DESC
		LIMIT 1
	`
	return s.queryPrice(ctx, query, currencyID, date.Format(DateFormat))
}

func (s *PriceRepository) queryPrice(ctx context.Context, query string, args ...any) (decimal.Decimal, bool, error) {
	var priceStr string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&priceStr)
	if err == sql.ErrNoRows {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to query coin_price table: %w", err)
	}

	price, err := ParseDecimal(priceStr)
	if err != nil {
		return decimal.Zero, false, err
	}
	return price, true, nil
}

// Latest returns the most recent quote for a currency regardless of date.
// The boolean reports whether any quote exists.
func (s *PriceRepository) Latest(ctx context.Context, currencyID string) (model.CoinPrice, bool, error) {
	var timeStr, priceStr string
	var p model.CoinPrice

	err := s.db.QueryRowContext(ctx, `
		SELECT id, currency_id, quote_time, price
		FROM coin_price
		WHERE currency_id = ?
		ORDER BY quote_time DESC
		LIMIT 1`,
		currencyID,
	).Scan(&p.ID, &p.CurrencyID, &timeStr, &priceStr)
	if err == sql.ErrNoRows {
		return model.CoinPrice{}, false, nil
	}
	if err != nil {
		return model.CoinPrice{}, false, fmt.Errorf("failed to query coin_price table: %w", err)
	}

	p.QuoteTime, err = ParseTime(timeStr)
	if err != nil || p.QuoteTime.IsZero() {
		return model.CoinPrice{}, false, fmt.Errorf("failed to parse date: %w", err)
	}
	p.Price, err = ParseDecimal(priceStr)
	if err != nil {
		return model.CoinPrice{}, false, err
	}

	return p, true, nil
}

// ListByCurrency retrieves all quotes for a currency, newest first.
func (s *PriceRepository) ListByCurrency(ctx context.Context, currencyID string) ([]model.CoinPrice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, currency_id, quote_time, price
		FROM coin_price
		WHERE currency_id = ?
		ORDER BY quote_time DESC`,
		currencyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query coin_price table: %w", err)
	}
	defer rows.Close()

	prices := []model.CoinPrice{}
	for rows.Next() {

		var timeStr, priceStr string
		var p model.CoinPrice

		if err := rows.Scan(&p.ID, &p.CurrencyID, &timeStr, &priceStr); err != nil {
			return nil, fmt.Errorf("failed to scan coin_price table results: %w", err)
		}

		p.QuoteTime, err = ParseTime(timeStr)
		if err != nil || p.QuoteTime.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		p.Price, err = ParseDecimal(priceStr)
		if err != nil {
			return nil, err
		}

		prices = append(prices, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coin_price table: %w", err)
	}

	return prices, nil
}

// Insert stores a new price quote.
func (s *PriceRepository) Insert(ctx context.Context, p model.CoinPrice) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO coin_price (id, currency_id, quote_time, price)
		VALUES (?, ?, ?, ?)`,
		p.ID, p.CurrencyID, p.QuoteTime.UTC().Format(time.RFC3339), p.Price.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into coin_price table: %w", err)
	}
	return nil
}
