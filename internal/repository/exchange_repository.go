package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// ExchangeRepository provides data access methods for the exchange and strategy tables.
type ExchangeRepository struct {
	db *sql.DB
}

// NewExchangeRepository creates a new ExchangeRepository with the provided database connection.
func NewExchangeRepository(db *sql.DB) *ExchangeRepository {
	return &ExchangeRepository{db: db}
}

// ListExchanges retrieves all exchanges ordered by name. The encrypted API key
// column is included so the service layer can decrypt it when needed.
func (s *ExchangeRepository) ListExchanges(ctx context.Context) ([]model.Exchange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, api_key, updated_at
		FROM exchange
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange table: %w", err)
	}
	defer rows.Close()

	exchanges := []model.Exchange{}
	for rows.Next() {

		var description, apiKey sql.NullString
		var updatedAtStr string
		var e model.Exchange

		if err := rows.Scan(&e.ID, &e.Name, &description, &apiKey, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan exchange table results: %w", err)
		}

		e.UpdatedAt, err = ParseTime(updatedAtStr)
		if err != nil {
			e.UpdatedAt = time.Time{}
		}
		e.Description = description.String
		e.APIKey = apiKey.String

		exchanges = append(exchanges, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange table: %w", err)
	}

	return exchanges, nil
}

// GetExchange retrieves a single exchange by ID.
// Returns an empty Exchange if no row matches.
func (s *ExchangeRepository) GetExchange(ctx context.Context, id string) (model.Exchange, error) {
	var description, apiKey sql.NullString
	var updatedAtStr string
	var e model.Exchange

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, api_key, updated_at
		FROM exchange
		WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &description, &apiKey, &updatedAtStr)
	if err == sql.ErrNoRows {
		return model.Exchange{}, nil
	}
	if err != nil {
		return model.Exchange{}, fmt.Errorf("failed to scan exchange table results: %w", err)
	}

	e.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		e.UpdatedAt = time.Time{}
	}
	e.Description = description.String
	e.APIKey = apiKey.String

	return e, nil
}

// CreateExchange inserts a new exchange. APIKey must already be encrypted.
func (s *ExchangeRepository) CreateExchange(ctx context.Context, e model.Exchange) error {
	var apiKey any
	if e.APIKey != "" {
		apiKey = e.APIKey
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exchange (id, name, description, api_key, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Description, apiKey, e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into exchange table: %w", err)
	}
	return nil
}

// ListStrategies retrieves all strategies ordered by name.
func (s *ExchangeRepository) ListStrategies(ctx context.Context) ([]model.Strategy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description
		FROM strategy
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategy table: %w", err)
	}
	defer rows.Close()

	strategies := []model.Strategy{}
	for rows.Next() {

		var description sql.NullString
		var st model.Strategy

		if err := rows.Scan(&st.ID, &st.Name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan strategy table results: %w", err)
		}
		st.Description = description.String

		strategies = append(strategies, st)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating strategy table: %w", err)
	}

	return strategies, nil
}

// CreateStrategy inserts a new strategy.
func (s *ExchangeRepository) CreateStrategy(ctx context.Context, st model.Strategy) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO strategy (id, name, description)
		VALUES (?, ?, ?)`,
		st.ID, st.Name, st.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into strategy table: %w", err)
	}
	return nil
}
