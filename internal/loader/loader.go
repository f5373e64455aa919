// =============================================================================
// Sales Order Splitter - Loader Module
// =============================================================================
//
// This module reads the sales export into a typed in-memory table.
//
// KIND INFERENCE:
//   Every column gets the narrowest kind all its non-empty values satisfy:
//   integer, then decimal, then date, else text. Values with a leading zero
//   ("02134") are codes and make the column text.
//
// The loader only reads: it never creates directories or files. Every failure
// is reported as a *types.InputError.
//
// =============================================================================

package loader

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
	"github.com/ginjaninja78/sales-order-splitter/internal/csvparser"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
)

// dateLayouts are the order-date formats recognised during kind inference.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04",
	"01/02/2006",
}

// Load reads the CSV file at path and returns the table with the scalar kind
// of every column inferred from its values.
func Load(path string, settings config.CSVSettings) (*types.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.InputError{Path: path, Msg: "sales data file does not exist"}
		}
		return nil, &types.InputError{Path: path, Msg: "cannot access sales data file", Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &types.InputError{Path: path, Msg: "sales data path is not a regular file"}
	}

	data, err := csvparser.Parse(path, settings)
	if err != nil {
		return nil, &types.InputError{Path: path, Msg: "cannot parse sales data file", Err: err}
	}

	kinds := make(map[string]types.Kind, len(data.Headers))
	for _, header := range data.Headers {
		kinds[header] = InferKind(csvparser.GetColumnByHeader(data, header))
	}

	return &types.Table{
		Headers:    data.Headers,
		Kinds:      kinds,
		Rows:       data.Rows,
		SourceFile: path,
	}, nil
}

// InferKind returns the narrowest kind that every non-empty value satisfies.
// A column with no values is text.
func InferKind(values []string) types.Kind {
	isInt, isDecimal, isDate := true, true, true
	seen := false

	for _, v := range values {
		if v == "" {
			continue
		}
		seen = true

		if hasLeadingZero(v) {
			isInt, isDecimal = false, false
		}
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isDecimal {
			if _, err := decimal.NewFromString(v); err != nil {
				isDecimal = false
			}
		}
		if isDate && !parsesAsDate(v) {
			isDate = false
		}
		if !isInt && !isDecimal && !isDate {
			return types.KindText
		}
	}

	switch {
	case !seen:
		return types.KindText
	case isInt:
		return types.KindInteger
	case isDecimal:
		return types.KindDecimal
	case isDate:
		return types.KindDate
	default:
		return types.KindText
	}
}

// hasLeadingZero reports whether the integer part of v starts with a zero
// followed by more digits, as in "007" or "-01.5".
func hasLeadingZero(v string) bool {
	v = strings.TrimLeft(v, "+-")
	return len(v) > 1 && v[0] == '0' && v[1] >= '0' && v[1] <= '9'
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
