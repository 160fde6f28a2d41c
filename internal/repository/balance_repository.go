package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// BalanceRepository provides data access methods for the balance_history table.
type BalanceRepository struct {
	db *sql.DB
}

// NewBalanceRepository creates a new BalanceRepository with the provided database connection.
func NewBalanceRepository(db *sql.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

const balanceColumns = `id, exchange_id, strategy_id, currency_id, update_datetime, balance`

// BalancesOnDate retrieves all balance snapshots whose calendar date equals the
// given date. Snapshots are point-in-time values; the engine sums exactly the
// rows taken on a date, never a range.
func (s *BalanceRepository) BalancesOnDate(ctx context.Context, date time.Time) ([]model.ExchangeBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balance_history
		WHERE date(update_datetime) = ?
		ORDER BY update_datetime ASC
	`
	return s.queryBalances(ctx, query, date.Format(DateFormat))
}

// List retrieves all balance snapshots, newest first.
func (s *BalanceRepository) List(ctx context.Context) ([]model.ExchangeBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balance_history
		ORDER BY update_datetime DESC
	`
	return s.queryBalances(ctx, query)
}

func (s *BalanceRepository) queryBalances(ctx context.Context, query string, args ...any) ([]model.ExchangeBalance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance_history table: %w", err)
	}
	defer rows.Close()

	balances := []model.ExchangeBalance{}
	for rows.Next() {

		var datetimeStr, balanceStr string
		var strategyID sql.NullString
		var b model.ExchangeBalance

		err := rows.Scan(
			&b.ID,
			&b.ExchangeID,
			&strategyID,
			&b.CurrencyID,
			&datetimeStr,
			&balanceStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance_history table results: %w", err)
		}

		b.UpdateDatetime, err = ParseTime(datetimeStr)
		if err != nil || b.UpdateDatetime.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		b.Balance, err = ParseDecimal(balanceStr)
		if err != nil {
			return nil, err
		}
		if strategyID.Valid {
			b.StrategyID = strategyID.String
		}

		balances = append(balances, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance_history table: %w", err)
	}

	return balances, nil
}

// Create inserts a new balance snapshot.
func (s *BalanceRepository) Create(ctx context.Context, b model.ExchangeBalance) error {
	var strategyID any
	if b.StrategyID != "" {
		strategyID = b.StrategyID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO balance_history (id, exchange_id, strategy_id, currency_id, update_datetime, balance)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.ExchangeID, strategyID, b.CurrencyID,
		b.UpdateDatetime.UTC().Format(time.RFC3339), b.Balance.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into balance_history table: %w", err)
	}
	return nil
}
