// =============================================================================
// Sales Order Splitter - Error Types
// =============================================================================
//
// This module defines the errors that abort a run. Callers classify them
// with errors.As or ErrorKind.
// =============================================================================

package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================
// Every failure that aborts a run is one of three kinds. Each carries the
// operation and path it happened on and wraps the underlying cause.

// InputError reports a missing, invalid or unparseable source file.
type InputError struct {
	Path string
	Msg  string
	Err  error
}

func (e *InputError) Error() string {
	return formatError(e.Msg, e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// SchemaError reports a required column that is absent or has the wrong shape.
type SchemaError struct {
	Column string
	Msg    string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := e.Msg
	if e.Column != "" {
		msg = fmt.Sprintf("column %q: %s", e.Column, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ExportError reports an unwritable destination or a workbook that could not
// be created.
type ExportError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ExportError) Error() string {
	return formatError(e.Msg, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func formatError(msg, path string, err error) string {
	if path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, path)
	}
	if err != nil {
		return fmt.Sprintf("%s: %v", msg, err)
	}
	return msg
}

// ErrorKind names the kind of a run-aborting error for user messages.
// Errors outside the taxonomy are reported as "internal error".
func ErrorKind(err error) string {
	var inputErr *InputError
	var schemaErr *SchemaError
	var exportErr *ExportError

	switch {
	case errors.As(err, &inputErr):
		return "input error"
	case errors.As(err, &schemaErr):
		return "schema error"
	case errors.As(err, &exportErr):
		return "export error"
	default:
		return "internal error"
	}
}
