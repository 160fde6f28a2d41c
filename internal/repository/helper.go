package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-date layout used for all date comparisons.
// Engine queries compare on calendar dates, not timestamps.
const DateFormat = "2006-01-02"

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Note: mirrors validation.ParseTime; both are intentionally kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(DateFormat, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// ParseDecimal parses a stored decimal column value. Amounts are persisted as
// TEXT so values round-trip exactly; an empty column reads as zero.
func ParseDecimal(str string) (decimal.Decimal, error) {
	if str == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse decimal value %q: %w", str, err)
	}
	return d, nil
}
