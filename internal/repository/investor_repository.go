package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// InvestorRepository provides data access methods for the investor table.
type InvestorRepository struct {
	db *sql.DB
}

// NewInvestorRepository creates a new InvestorRepository with the provided database connection.
func NewInvestorRepository(db *sql.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

// List retrieves all investors ordered by alias.
func (s *InvestorRepository) List(ctx context.Context) ([]model.Investor, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, alias, username FROM investor ORDER BY alias ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query investor table: %w", err)
	}
	defer rows.Close()

	investors := []model.Investor{}
	for rows.Next() {
		var alias, username sql.NullString
		var inv model.Investor
		if err := rows.Scan(&inv.ID, &alias, &username); err != nil {
			return nil, fmt.Errorf("failed to scan investor table results: %w", err)
		}
		inv.Alias = alias.String
		inv.Username = username.String
		investors = append(investors, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor table: %w", err)
	}

	return investors, nil
}

// Get retrieves a single investor by ID.
// Returns an empty Investor if no row matches.
func (s *InvestorRepository) Get(ctx context.Context, id string) (model.Investor, error) {
	var alias, username sql.NullString
	var inv model.Investor
	err := s.db.QueryRowContext(ctx,
		`SELECT id, alias, username FROM investor WHERE id = ?`, id,
	).Scan(&inv.ID, &alias, &username)
	if err == sql.ErrNoRows {
		return model.Investor{}, nil
	}
	if err != nil {
		return model.Investor{}, fmt.Errorf("failed to scan investor table results: %w", err)
	}
	inv.Alias = alias.String
	inv.Username = username.String
	return inv, nil
}

// Create inserts a new investor.
func (s *InvestorRepository) Create(ctx context.Context, inv model.Investor) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO investor (id, alias, username) VALUES (?, ?, ?)`,
		inv.ID, inv.Alias, inv.Username,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into investor table: %w", err)
	}
	return nil
}
