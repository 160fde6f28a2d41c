package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrCurrencyNotFound indicates that a currency with the given ID does not exist.
	ErrCurrencyNotFound = errors.New("currency not found")

	// ErrInvestorNotFound indicates that an investor with the given ID does not exist.
	ErrInvestorNotFound = errors.New("investor not found")

	// ErrExchangeNotFound indicates that an exchange with the given ID does not exist.
	ErrExchangeNotFound = errors.New("exchange not found")

	// ErrStrategyNotFound indicates that a strategy with the given ID does not exist.
	ErrStrategyNotFound = errors.New("strategy not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrQuoteNotFound indicates no price quote for a specific currency and date combination.
	ErrQuoteNotFound = errors.New("price quote not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidTransactionType indicates an unknown investor transaction type.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
