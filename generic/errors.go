/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calculators are pure and never fail; these errors are produced by the
  layers that validate input before calling them (api, factory, input, store).

ERROR CATEGORIES:
  1. Input errors - amounts, dates, week types, expressions
  2. Configuration errors - malformed tax tables
  3. Store errors - missing profiles and history records

USAGE:
    if errors.Is(err, generic.ErrInvalidAmount) {
        // 400
    }
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRequiredField is returned when a mandatory request field is empty.
	ErrRequiredField = errors.New("field is required")

	// ErrInvalidAmount is returned when an amount is missing, zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidDate is returned when a date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidWeekType is returned for a weekly schedule other than 5 or 6 days.
	ErrInvalidWeekType = errors.New("week type must be \"5\" or \"6\"")

	// ErrInvalidExpression is returned when an amount expression cannot be evaluated.
	ErrInvalidExpression = errors.New("invalid amount expression")

	// ErrInvalidTaxTable is returned when a tax table definition breaks the
	// bracket invariants.
	ErrInvalidTaxTable = errors.New("invalid tax table")

	// ErrProfileNotFound is returned when a referenced employment profile doesn't exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrRecordNotFound is returned when a history record doesn't exist.
	ErrRecordNotFound = errors.New("history record not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError names the request field that failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// TableError describes which rule of a tax table was broken.
type TableError struct {
	Table  string // "income" or "solidarity"
	Index  int
	Reason string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("invalid tax table: %s bracket %d: %s", e.Table, e.Index, e.Reason)
}

func (e *TableError) Unwrap() error {
	return ErrInvalidTaxTable
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrRequiredField) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidWeekType) ||
		errors.Is(err, ErrInvalidExpression) ||
		errors.Is(err, ErrInvalidTaxTable)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrRecordNotFound)
}
