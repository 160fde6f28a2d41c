package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// CashFlowRepository provides data access methods for the investor_transaction table.
// It serves both the CRUD surface and the cumulative cash-flow sums used by the
// valuation engine.
type CashFlowRepository struct {
	db *sql.DB
}

// NewCashFlowRepository creates a new CashFlowRepository with the provided database connection.
func NewCashFlowRepository(db *sql.DB) *CashFlowRepository {
	return &CashFlowRepository{db: db}
}

// SumCashThrough returns the cumulative-to-date sum of cash_amount over all
// investor transactions with an effective date on or before the given date.
//
// Amounts are stored as exact decimal TEXT, so the sum is computed in Go rather
// than with SQL SUM, which would coerce the column to floating point.
func (s *CashFlowRepository) SumCashThrough(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cash_amount
		FROM investor_transaction
		WHERE date(effective_date) <= ?`,
		date.Format(DateFormat),
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query investor_transaction table: %w", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var amountStr string
		if err := rows.Scan(&amountStr); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan investor_transaction table results: %w", err)
		}
		amount, err := ParseDecimal(amountStr)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(amount)
	}

	if err = rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating investor_transaction table: %w", err)
	}

	return sum, nil
}

const investorTransactionColumns = `id, investor_id, effective_date, type, cash_amount, kind_amount, cash_currency_id, kind_currency_id, nav`

// TransactionsBetween retrieves all investor transactions with an effective date
// inside [start, end], inclusive on both ends, sorted date-ascending.
// This is the display list returned alongside the cash-flow difference.
func (s *CashFlowRepository) TransactionsBetween(ctx context.Context, start, end time.Time) ([]model.InvestorTransaction, error) {
	query := `
		SELECT ` + investorTransactionColumns + `
		FROM investor_transaction
		WHERE date(effective_date) >= ?
		AND date(effective_date) <= ?
		ORDER BY effective_date ASC
	`
	return s.queryTransactions(ctx, query, start.Format(DateFormat), end.Format(DateFormat))
}

// List retrieves all investor transactions, sorted date-ascending.
func (s *CashFlowRepository) List(ctx context.Context) ([]model.InvestorTransaction, error) {
	query := `
		SELECT ` + investorTransactionColumns + `
		FROM investor_transaction
		ORDER BY effective_date ASC
	`
	return s.queryTransactions(ctx, query)
}

func (s *CashFlowRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]model.InvestorTransaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investor_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.InvestorTransaction{}
	for rows.Next() {

		var dateStr, cashStr, kindStr, navStr string
		var cashCurrencyID, kindCurrencyID sql.NullString
		var t model.InvestorTransaction

		err := rows.Scan(
			&t.ID,
			&t.InvestorID,
			&dateStr,
			&t.Type,
			&cashStr,
			&kindStr,
			&cashCurrencyID,
			&kindCurrencyID,
			&navStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor_transaction table results: %w", err)
		}

		t.EffectiveDate, err = ParseTime(dateStr)
		if err != nil || t.EffectiveDate.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		t.CashAmount, err = ParseDecimal(cashStr)
		if err != nil {
			return nil, err
		}
		t.KindAmount, err = ParseDecimal(kindStr)
		if err != nil {
			return nil, err
		}
		t.NAV, err = ParseDecimal(navStr)
		if err != nil {
			return nil, err
		}
		if cashCurrencyID.Valid {
			t.CashCurrencyID = cashCurrencyID.String
		}
		if kindCurrencyID.Valid {
			t.KindCurrencyID = kindCurrencyID.String
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor_transaction table: %w", err)
	}

	return transactions, nil
}

// Create inserts a new investor transaction.
func (s *CashFlowRepository) Create(ctx context.Context, t model.InvestorTransaction) error {
	var cashCurrencyID, kindCurrencyID any
	if t.CashCurrencyID != "" {
		cashCurrencyID = t.CashCurrencyID
	}
	if t.KindCurrencyID != "" {
		kindCurrencyID = t.KindCurrencyID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO investor_transaction (id, investor_id, effective_date, type, cash_amount, kind_amount, cash_currency_id, kind_currency_id, nav)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.InvestorID, t.EffectiveDate.Format(DateFormat), t.Type,
		t.CashAmount.String(), t.KindAmount.String(), cashCurrencyID, kindCurrencyID, t.NAV.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into investor_transaction table: %w", err)
	}
	return nil
}

// Delete removes an investor transaction by ID.
func (s *CashFlowRepository) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM investor_transaction WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from investor_transaction table: %w", err)
	}
	return nil
}
