// =============================================================================
// Sales Order Splitter - Validation Engine
// =============================================================================
//
// This module checks that a loaded table has the shape the transformer needs
// before any row is enriched:
//   - Every required column is present
//   - ORDER ID is non-empty
//   - ITEM NUMBER is an integer (negative values are allowed)
//   - ITEM QUANTITY is a non-negative integer
//   - ITEM PRICE is a non-negative decimal amount
//
// ERROR HANDLING:
//   - Errors are collected, not returned on the first failure
//   - Each error includes the row number, column and offending value
//   - Any error makes the table unusable; the caller reports a SchemaError
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
)

// maxReportedErrors caps how many row errors are quoted in a SchemaError.
const maxReportedErrors = 10

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation error.
type ValidationError struct {
	// Column is the name of the column that failed validation.
	Column string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string

	// RowNumber is the 1-indexed data row (0 for table-level errors).
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RowNumber == 0 {
		return fmt.Sprintf("column '%s': %s", e.Column, e.Message)
	}
	return fmt.Sprintf("row %d, column '%s': %s (value: '%s')",
		e.RowNumber, e.Column, e.Message, e.Value)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors.
	IsValid bool

	// Errors contains all validation errors.
	Errors []*ValidationError

	// RowsValidated is the total number of rows validated.
	RowsValidated int
}

// Err converts the result into a *types.SchemaError, or nil when valid.
// Missing columns are reported by name; row errors are listed up to a cap.
func (r *ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}

	first := r.Errors[0]
	if first.Rule == "required_column" {
		return &types.SchemaError{Column: first.Column, Msg: "required column is missing"}
	}

	messages := make([]string, 0, maxReportedErrors)
	for i, e := range r.Errors {
		if i == maxReportedErrors {
			messages = append(messages, fmt.Sprintf("... and %d more", len(r.Errors)-maxReportedErrors))
			break
		}
		messages = append(messages, e.Error())
	}

	return &types.SchemaError{
		Msg: fmt.Sprintf("%d invalid value(s): %s", len(r.Errors), strings.Join(messages, "; ")),
	}
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// Validate validates the table and returns a detailed result.
func Validate(table *types.Table) *ValidationResult {
	result := &ValidationResult{
		IsValid: true,
		Errors:  make([]*ValidationError, 0),
	}

	// Row checks are meaningless when a column is absent.
	for _, column := range types.RequiredColumns {
		if !table.HasColumn(column) {
			result.add(&ValidationError{
				Column:  column,
				Rule:    "required_column",
				Message: "required column is missing",
			})
		}
	}
	if !result.IsValid {
		return result
	}

	for i, row := range table.Rows {
		result.RowsValidated++
		for _, err := range ValidateRow(row, i+1) {
			result.add(err)
		}
	}

	return result
}

// ValidateTable validates the table and returns a *types.SchemaError on the
// first class of failure found.
func ValidateTable(table *types.Table) error {
	return Validate(table).Err()
}

// ValidateRow validates the typed columns of a single row.
func ValidateRow(row map[string]string, rowNumber int) []*ValidationError {
	var errors []*ValidationError

	if strings.TrimSpace(row[types.ColOrderID]) == "" {
		errors = append(errors, &ValidationError{
			Column:    types.ColOrderID,
			Rule:      "required",
			Message:   "order identifier is empty",
			RowNumber: rowNumber,
		})
	}

	checks := []struct {
		column   string
		validate func(string) string
	}{
		{types.ColItemNumber, validateInteger},
		{types.ColItemQuantity, validateNonNegativeInteger},
		{types.ColItemPrice, validateNonNegativeDecimal},
	}

	for _, check := range checks {
		value := row[check.column]
		if msg := check.validate(value); msg != "" {
			errors = append(errors, &ValidationError{
				Column:    check.column,
				Value:     value,
				Rule:      "data_type",
				Message:   msg,
				RowNumber: rowNumber,
			})
		}
	}

	return errors
}

func (r *ValidationResult) add(err *ValidationError) {
	r.Errors = append(r.Errors, err)
	r.IsValid = false
}

// =============================================================================
// DATA TYPE VALIDATORS
// =============================================================================

// validateInteger returns an error message if value is not an integer,
// empty string if valid.
func validateInteger(value string) string {
	if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
		return fmt.Sprintf("value '%s' is not a valid integer", value)
	}
	return ""
}

// validateNonNegativeInteger returns an error message if value is not an
// integer >= 0, empty string if valid.
func validateNonNegativeInteger(value string) string {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Sprintf("value '%s' is not a valid integer", value)
	}
	if n < 0 {
		return "value must not be negative"
	}
	return ""
}

// validateNonNegativeDecimal returns an error message if value is not a
// decimal >= 0, empty string if valid.
func validateNonNegativeDecimal(value string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return fmt.Sprintf("value '%s' is not a valid decimal number", value)
	}
	if d.IsNegative() {
		return "value must not be negative"
	}
	return ""
}
