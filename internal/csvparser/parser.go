// =============================================================================
// Sales Order Splitter - CSV Parser Module
// =============================================================================
//
// This module is responsible for parsing the sales export. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Quoted fields, including lazily quoted ones
//   - Blank lines between records
//
// The first record is always the header row; every following non-empty
// record is a data row.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
)

// ErrEmptyFile is returned when the file holds no header row.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents the parsed CSV file.
type CSVData struct {
	// Headers contains the column headers from the CSV file.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	// Using maps allows for easy field access by name.
	Rows []map[string]string

	// SourceFile is the path to the source CSV file.
	SourceFile string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the CSVData struct containing the parsed data.
//   - An error if the file cannot be read or parsed.
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(file, settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath

	return data, nil
}

// ParseReader parses CSV content from r.
func ParseReader(r io.Reader, settings config.CSVSettings) (*CSVData, error) {
	csvReader := csv.NewReader(bufio.NewReader(r))
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 || isRowEmpty(allRows[0]) {
		return nil, ErrEmptyFile
	}

	headers := cleanHeaders(allRows[0])

	return &CSVData{
		Headers: headers,
		Rows:    extractDataRows(allRows[1:], headers),
	}, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	if len(settings.Comment) > 0 {
		reader.Comment = rune(settings.Comment[0])
	}

	// Rows shorter than the header are padded in extractDataRows.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// cleanHeaders trims headers, strips a UTF-8 byte order mark and names empty
// headers after their position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		header = strings.TrimSpace(header)

		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}

		cleaned[i] = header
	}

	return cleaned
}

// extractDataRows converts records to maps keyed by header, skipping empty
// records.
func extractDataRows(records [][]string, headers []string) []map[string]string {
	dataRows := make([]map[string]string, 0, len(records))

	for _, row := range records {
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for colIndex, header := range headers {
			if colIndex < len(row) {
				rowMap[header] = strings.TrimSpace(row[colIndex])
			} else {
				rowMap[header] = ""
			}
		}

		dataRows = append(dataRows, rowMap)
	}

	return dataRows
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// GetColumnByHeader returns all values for a specific column.
func GetColumnByHeader(data *CSVData, header string) []string {
	values := make([]string, len(data.Rows))
	for i, row := range data.Rows {
		values[i] = row[header]
	}
	return values
}
