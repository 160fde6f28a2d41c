package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// CurrencyRepository provides data access methods for the currency table.
// It doubles as the currency directory used by the valuation engine.
type CurrencyRepository struct {
	db *sql.DB
}

// NewCurrencyRepository creates a new CurrencyRepository with the provided database connection.
func NewCurrencyRepository(db *sql.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

// List retrieves all currencies ordered by code.
func (s *CurrencyRepository) List(ctx context.Context) ([]model.Currency, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, code, name FROM currency ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency table: %w", err)
	}
	defer rows.Close()

	currencies := []model.Currency{}
	for rows.Next() {
		var c model.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan currency table results: %w", err)
		}
		currencies = append(currencies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency table: %w", err)
	}

	return currencies, nil
}

// ListNonFiat retrieves all currencies whose code is not in the excluded set,
// ordered by code. The exclusion is policy (the configured fiat codes), not a
// column on the table.
func (s *CurrencyRepository) ListNonFiat(ctx context.Context, excludedCodes []string) ([]model.Currency, error) {
	query := `SELECT id, code, name FROM currency`

	args := make([]any, 0, len(excludedCodes))
	if len(excludedCodes) > 0 {
		placeholders := make([]string, len(excludedCodes))
		for i, code := range excludedCodes {
			placeholders[i] = "?"
			args = append(args, code)
		}
		query += ` WHERE code NOT IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY code ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency table: %w", err)
	}
	defer rows.Close()

	currencies := []model.Currency{}
	for rows.Next() {
		var c model.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan currency table results: %w", err)
		}
		currencies = append(currencies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency table: %w", err)
	}

	return currencies, nil
}

// Get retrieves a single currency by ID.
// Returns an empty Currency if no row matches.
func (s *CurrencyRepository) Get(ctx context.Context, id string) (model.Currency, error) {
	var c model.Currency
	err := s.db.QueryRowContext(ctx,
		`SELECT id, code, name FROM currency WHERE id = ?`, id,
	).Scan(&c.ID, &c.Code, &c.Name)
	if err == sql.ErrNoRows {
		return model.Currency{}, nil
	}
	if err != nil {
		return model.Currency{}, fmt.Errorf("failed to scan currency table results: %w", err)
	}
	return c, nil
}

// Create inserts a new currency.
func (s *CurrencyRepository) Create(ctx context.Context, c model.Currency) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO currency (id, code, name) VALUES (?, ?, ?)`,
		c.ID, c.Code, c.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into currency table: %w", err)
	}
	return nil
}

// Update updates a currency's code and name.
func (s *CurrencyRepository) Update(ctx context.Context, c model.Currency) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE currency SET code = ?, name = ? WHERE id = ?`,
		c.Code, c.Name, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency table: %w", err)
	}
	return nil
}

// Delete removes a currency by ID.
func (s *CurrencyRepository) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM currency WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from currency table: %w", err)
	}
	return nil
}
