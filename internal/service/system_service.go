package service

import (
	"database/sql"

	"github.com/alexandrekoury/painel-backend/internal/database"
)

// Version is the application version, set at build time via -ldflags.
var Version = "dev"

// SystemService handles system-level operations like health checks.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService with the provided database connection.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// Health reports whether the database is reachable.
func (s *SystemService) Health() error {
	return database.HealthCheck(s.db)
}

// Version returns the application version string.
func (s *SystemService) Version() string {
	return Version
}
