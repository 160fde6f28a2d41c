// Package validation provides request-level validation helpers.
package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID      = fmt.Errorf("invalid UUID format")
	ErrInvalidDate      = fmt.Errorf("invalid date format")
	ErrInvalidDateRange = fmt.Errorf("invalid date range")
	ErrEmptySlice       = fmt.Errorf("slice cannot be empty")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateUUIDs validates a slice of UUIDs
func ValidateUUIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptySlice
	}
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return err
		}
	}
	return nil
}

// ParseDatetime parses an RFC3339 timestamp, falling back to a bare
// "2006-01-02" calendar date at midnight UTC.
func ParseDatetime(str string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, str); err == nil {
		return parsed.UTC(), nil
	}
	return ParseDate(str)
}

// ParseDate parses a strict "2006-01-02" calendar date.
// Note: mirrors repository.ParseTime; both are intentionally kept local to avoid cross-layer imports.
func ParseDate(str string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", str)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, str)
	}
	return parsed.UTC(), nil
}
