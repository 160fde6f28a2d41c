package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// LedgerRepository provides data access methods for the crypto_transaction table.
// The valuation engine replays these entries in chronological order, so every
// query here returns rows sorted by effective date ascending.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository with the provided database connection.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

const cryptoTransactionColumns = `id, currency_id, investor_id, effective_date, amount, price`

// CryptoTransactionsBefore retrieves all ledger entries for a currency with an
// effective date strictly before the given date, sorted date-ascending.
// Used to reconstruct the pre-window holding state.
func (s *LedgerRepository) CryptoTransactionsBefore(ctx context.Context, currencyID string, date time.Time) ([]model.CryptoTransaction, error) {
	query := `
		SELECT ` + cryptoTransactionColumns + `
		FROM crypto_transaction
		WHERE currency_id = ?
		AND date(effective_date) < ?
		ORDER BY effective_date ASC
	`
	return s.queryTransactions(ctx, query, currencyID, date.Format(DateFormat))
}

// CryptoTransactionsBetween retrieves all ledger entries for a currency with an
// effective date inside [start, end], inclusive on both ends, sorted date-ascending.
func (s *LedgerRepository) CryptoTransactionsBetween(ctx context.Context, currencyID string, start, end time.Time) ([]model.CryptoTransaction, error) {
	query := `
		SELECT ` + cryptoTransactionColumns + `
		FROM crypto_transaction
		WHERE currency_id = ?
		AND date(effective_date) >= ?
		AND date(effective_date) <= ?
		ORDER BY effective_date ASC
	`
	return s.queryTransactions(ctx, query, currencyID, start.Format(DateFormat), end.Format(DateFormat))
}

// List retrieves all ledger entries, sorted date-ascending.
func (s *LedgerRepository) List(ctx context.Context) ([]model.CryptoTransaction, error) {
	query := `
		SELECT ` + cryptoTransactionColumns + `
		FROM crypto_transaction
		ORDER BY effective_date ASC
	`
	return s.queryTransactions(ctx, query)
}

func (s *LedgerRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]model.CryptoTransaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query crypto_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.CryptoTransaction{}
	for rows.Next() {

		var dateStr, amountStr, priceStr string
		var investorID sql.NullString
		var t model.CryptoTransaction

		err := rows.Scan(
			&t.ID,
			&t.CurrencyID,
			&investorID,
			&dateStr,
			&amountStr,
			&priceStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crypto_transaction table results: %w", err)
		}

		t.EffectiveDate, err = ParseTime(dateStr)
		if err != nil || t.EffectiveDate.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		t.Amount, err = ParseDecimal(amountStr)
		if err != nil {
			return nil, err
		}
		t.Price, err = ParseDecimal(priceStr)
		if err != nil {
			return nil, err
		}
		if investorID.Valid {
			t.InvestorID = investorID.String
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating crypto_transaction table: %w", err)
	}

	return transactions, nil
}

// Create inserts a new ledger entry. Entries are immutable once created.
func (s *LedgerRepository) Create(ctx context.Context, t model.CryptoTransaction) error {
	var investorID any
	if t.InvestorID != "" {
		investorID = t.InvestorID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crypto_transaction (id, currency_id, investor_id, effective_date, amount, price)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.CurrencyID, investorID, t.EffectiveDate.Format(DateFormat), t.Amount.String(), t.Price.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into crypto_transaction table: %w", err)
	}
	return nil
}

// Delete removes a ledger entry by ID.
func (s *LedgerRepository) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM crypto_transaction WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from crypto_transaction table: %w", err)
	}
	return nil
}
