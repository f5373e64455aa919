// =============================================================================
// Sales Order Splitter - XLSX Writer Module
// =============================================================================
//
// This module writes one order group to its own workbook.
//
// WORKBOOK LAYOUT:
//   File:   Order<order_id>_<customer>.xlsx
//   Sheet:  "Order #<order_id>" (the only sheet)
//
//   | ORDER DATE | ITEM NUMBER | ... | ITEM PRICE   | TOTAL PRICE | ... |
//   |------------|-------------|-----|--------------|-------------|-----|
//   | 2024-03-01 | 1           | ... | $5.00        | $5.00       | ... |
//   | 2024-03-01 | 2           | ... | $10.00       | $30.00      | ... |
//   |            |             |     | GRAND TOTAL: | $35.00      |     |
//
//   Column widths come from a name -> width mapping; unlisted columns keep
//   the default width.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/pkg/utils"
)

// nonWord matches every rune that is not a letter, digit or underscore.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// Options contains options for workbook generation.
type Options struct {
	// ColumnWidths maps a column name to its width in character cells.
	ColumnWidths map[string]float64

	// SummaryMarker is written in the ITEM PRICE cell of the summary row.
	SummaryMarker string

	// FileExtension is appended to every file name, including the dot.
	FileExtension string

	// Currency renders ITEM PRICE and TOTAL PRICE.
	Currency *CurrencyFormatter
}

// OptionsFromConfig builds writer options from the application configuration.
func OptionsFromConfig(cfg *config.MainConfig) (Options, error) {
	currency, err := NewCurrencyFormatter(cfg.Currency.Symbol, cfg.Currency.Locale)
	if err != nil {
		return Options{}, err
	}

	return Options{
		ColumnWidths:  cfg.ColumnWidths,
		SummaryMarker: cfg.SummaryMarker,
		FileExtension: cfg.FileExtension,
		Currency:      currency,
	}, nil
}

// DefaultOptions returns the options of the default configuration.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.Default())
	if err != nil {
		panic(err)
	}
	return opts
}

// =============================================================================
// WRITER
// =============================================================================

// Writer exports order groups to workbooks.
type Writer struct {
	options Options
}

// New creates a Writer.
func New(options Options) *Writer {
	return &Writer{options: options}
}

// Export writes group to its workbook inside dir and returns the file path.
// The file is replaced atomically; failures are *types.ExportError.
func (w *Writer) Export(group types.OrderGroup, dir string) (string, error) {
	path := filepath.Join(dir, w.FileName(group))

	f, err := w.Build(group)
	if err != nil {
		return "", &types.ExportError{Path: path, Msg: "failed to build workbook", Err: err}
	}
	defer f.Close()

	err = utils.WriteFileAtomic(path, func(out io.Writer) error {
		_, err := f.WriteTo(out)
		return err
	})
	if err != nil {
		return "", &types.ExportError{Path: path, Msg: "failed to write workbook", Err: err}
	}

	return path, nil
}

// Build creates the in-memory workbook for group.
func (w *Writer) Build(group types.OrderGroup) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := SheetName(group.OrderID)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("invalid sheet name %q: %w", sheet, err)
	}

	for r, row := range w.Grid(group) {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set %s: %w", cell, err)
			}
		}
	}

	if err := w.styleHeader(f, sheet, len(group.Columns)); err != nil {
		f.Close()
		return nil, err
	}

	if err := w.applyColumnWidths(f, sheet, group.Columns); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// Grid returns the cell values of the sheet: the header row, one row per data
// row and the summary row. Nil marks an empty cell.
//
// The summary row is the only place the marker text appears; it is never
// currency-formatted.
func (w *Writer) Grid(group types.OrderGroup) [][]interface{} {
	grid := make([][]interface{}, 0, len(group.Rows)+1)

	header := make([]interface{}, len(group.Columns))
	for i, column := range group.Columns {
		header[i] = column
	}
	grid = append(grid, header)

	for _, row := range group.Rows {
		cells := make([]interface{}, len(group.Columns))

		switch r := row.(type) {
		case types.DataRow:
			for i, column := range group.Columns {
				cells[i] = w.dataCell(r, column, group.ColumnKinds)
			}
		case types.SummaryRow:
			for i, column := range group.Columns {
				switch column {
				case types.ColItemPrice:
					cells[i] = w.options.SummaryMarker
				case types.ColTotalPrice:
					cells[i] = w.options.Currency.Format(r.GrandTotal)
				}
			}
		}

		grid = append(grid, cells)
	}

	return grid
}

func (w *Writer) dataCell(row types.DataRow, column string, kinds map[string]types.Kind) interface{} {
	switch column {
	case types.ColItemNumber:
		return row.ItemNumber
	case types.ColItemQuantity:
		return row.Quantity
	case types.ColItemPrice:
		return w.options.Currency.Format(row.Price)
	case types.ColTotalPrice:
		return w.options.Currency.Format(row.Total)
	}

	value := row.Fields[column]
	if value == "" {
		return nil
	}
	return numericCell(value, kinds[column])
}

// numericCell returns value as a number when its column is numeric, so the
// spreadsheet stores a number rather than text. Values that do not parse
// stay text.
func numericCell(value string, kind types.Kind) interface{} {
	trimmed := strings.TrimSpace(value)

	switch kind {
	case types.KindInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case types.KindDecimal:
		if d, err := decimal.NewFromString(trimmed); err == nil {
			// Spreadsheet numbers are IEEE doubles.
			return d.InexactFloat64()
		}
	}
	return value
}

// styleHeader makes the header row bold.
func (w *Writer) styleHeader(f *excelize.File, sheet string, columns int) error {
	if columns == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}

	return f.SetCellStyle(sheet, "A1", last, style)
}

// applyColumnWidths sets the configured width of every known column.
func (w *Writer) applyColumnWidths(f *excelize.File, sheet string, columns []string) error {
	for i, column := range columns {
		width, ok := w.options.ColumnWidths[column]
		if !ok {
			continue
		}

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("failed to set width of %q: %w", column, err)
		}
	}

	return nil
}

// =============================================================================
// NAMING
// =============================================================================

// FileName returns Order<order_id>_<sanitized customer name><ext>.
func (w *Writer) FileName(group types.OrderGroup) string {
	return fmt.Sprintf("Order%s_%s%s", group.OrderID, SanitizeName(group.CustomerName()), w.options.FileExtension)
}

// SheetName returns the worksheet title for an order.
func SheetName(orderID string) string {
	return "Order #" + orderID
}

// SanitizeName removes every character that is not a letter, digit or
// underscore.
func SanitizeName(name string) string {
	return nonWord.ReplaceAllString(name, "")
}
