// =============================================================================
// Sales Order Splitter - XLSX Order Reader
// =============================================================================
//
// This module reads order workbooks back from disk. It is used by the inspect
// command and by tests that check exported files.
//
// EXPECTED LAYOUT:
//   - One sheet per workbook, named "Order #<order_id>"
//   - Row 1 holds the column headers
//   - Every following row is a data row, except the last which is the
//     summary row (marker in ITEM PRICE, grand total in TOTAL PRICE)
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/pkg/utils"
)

// =============================================================================
// ORDER SHEET
// =============================================================================

// OrderSheet is the cell content of one order workbook.
type OrderSheet struct {
	// Path is the workbook file path.
	Path string

	// SheetName is the title of the first sheet.
	SheetName string

	// Header contains the column headers from row 1.
	Header []string

	// Rows contains every row below the header, each padded to len(Header).
	Rows [][]string

	// ColumnWidths maps each header to the width of its column.
	ColumnWidths map[string]float64
}

// Column returns the index of the named column, or -1.
func (s *OrderSheet) Column(name string) int {
	for i, h := range s.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Values returns every cell of the named column below the header.
func (s *OrderSheet) Values(name string) []string {
	idx := s.Column(name)
	if idx < 0 {
		return nil
	}

	values := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		values[i] = row[idx]
	}
	return values
}

// DataRows returns the rows above the summary row.
func (s *OrderSheet) DataRows() [][]string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[:len(s.Rows)-1]
}

// SummaryTotal returns the marker and grand total text of the summary row.
func (s *OrderSheet) SummaryTotal() (marker, total string) {
	if len(s.Rows) == 0 {
		return "", ""
	}

	last := s.Rows[len(s.Rows)-1]
	if idx := s.Column(types.ColItemPrice); idx >= 0 {
		marker = last[idx]
	}
	if idx := s.Column(types.ColTotalPrice); idx >= 0 {
		total = last[idx]
	}
	return marker, total
}

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// ReadOrderFile reads the first sheet of an order workbook.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//
// RETURNS:
//   - A pointer to the OrderSheet with header, rows and column widths.
//   - An error if the file cannot be opened or has no sheets.
func ReadOrderFile(path string) (*OrderSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	sheet := &OrderSheet{
		Path:         path,
		SheetName:    sheetName,
		ColumnWidths: make(map[string]float64),
	}
	if len(rows) == 0 {
		return sheet, nil
	}

	sheet.Header = rows[0]
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		sheet.Rows = append(sheet.Rows, pad(row, len(sheet.Header)))
	}

	for i, header := range sheet.Header {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		width, err := f.GetColWidth(sheetName, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read width of %q: %w", header, err)
		}
		sheet.ColumnWidths[header] = width
	}

	return sheet, nil
}

// ReadOrdersDir reads every workbook with extension ext in dir, sorted by
// file name.
func ReadOrdersDir(dir, ext string) ([]*OrderSheet, error) {
	files, err := utils.ListFiles(dir, ext)
	if err != nil {
		return nil, err
	}

	sheets := make([]*OrderSheet, 0, len(files))
	for _, file := range files {
		sheet, err := ReadOrderFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", file, err)
		}
		sheets = append(sheets, sheet)
	}

	return sheets, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// pad extends row with empty cells up to n; longer rows are kept as is.
func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	padded := make([]string, n)
	copy(padded, row)
	return padded
}
