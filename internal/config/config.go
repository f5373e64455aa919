// =============================================================================
// Sales Order Splitter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. The configuration file is optional: every setting has a
// default that reproduces the standard order layout.
//
// CONFIGURATION FILE (config.yaml):
//   log_level: info
//   log_format: text
//   output_dir_prefix: Orders_
//   summary_marker: "GRAND TOTAL:"
//   currency:
//     symbol: "$"
//     locale: en-US
//   column_widths:
//     CUSTOMER NAME: 30
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log handler: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDirPrefix is prepended to the ISO date to name the output
	// directory created next to the input file.
	// Default: "Orders_"
	OutputDirPrefix string `yaml:"output_dir_prefix"`

	// FileExtension is the extension of every order workbook.
	// Default: ".xlsx"
	FileExtension string `yaml:"file_extension"`

	// SummaryMarker is the literal text written in the ITEM PRICE cell of the
	// summary row.
	// Default: "GRAND TOTAL:"
	SummaryMarker string `yaml:"summary_marker"`

	// Currency controls how ITEM PRICE and TOTAL PRICE are rendered.
	Currency CurrencySettings `yaml:"currency"`

	// ColumnWidths maps a column name to its width in character cells.
	// Columns not listed keep the spreadsheet default width.
	ColumnWidths map[string]float64 `yaml:"column_widths"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// DropColumns are removed from every order before export.
	// Default: the five address columns.
	DropColumns []string `yaml:"drop_columns"`

	// CSVSettings contains settings for parsing the input CSV file.
	CSVSettings CSVSettings `yaml:"csv_settings"`
}

// CurrencySettings contains settings for currency formatting.
type CurrencySettings struct {
	// Symbol is placed before every amount.
	// Default: "$"
	Symbol string `yaml:"symbol"`

	// Locale is a BCP 47 tag selecting digit grouping and the decimal mark.
	// Default: "en-US"
	Locale string `yaml:"locale"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields in the CSV.
	// Common values: "," (comma), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Comment marks lines to skip. Empty disables comments.
	Comment string `yaml:"comment"`
}

// DefaultColumnWidths returns the standard order layout.
func DefaultColumnWidths() map[string]float64 {
	return map[string]float64{
		types.ColOrderDate:    11,
		types.ColItemNumber:   13,
		types.ColProductLine:  15,
		types.ColProductCode:  15,
		types.ColItemQuantity: 15,
		types.ColItemPrice:    13,
		types.ColTotalPrice:   13,
		types.ColStatus:       10,
		types.ColCustomerName: 30,
	}
}

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path returns
//     the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseMainConfig(data)
}

// ParseMainConfig parses YAML configuration data, applies defaults and
// validates the result.
func ParseMainConfig(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.OutputDirPrefix == "" {
		config.OutputDirPrefix = "Orders_"
	}
	if config.FileExtension == "" {
		config.FileExtension = ".xlsx"
	}
	if !strings.HasPrefix(config.FileExtension, ".") {
		config.FileExtension = "." + config.FileExtension
	}
	if config.SummaryMarker == "" {
		config.SummaryMarker = "GRAND TOTAL:"
	}
	if config.Currency.Symbol == "" {
		config.Currency.Symbol = "$"
	}
	if config.Currency.Locale == "" {
		config.Currency.Locale = "en-US"
	}
	if config.DropColumns == nil {
		config.DropColumns = append([]string(nil), types.AddressColumns...)
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}

	// User widths override individual defaults; unlisted defaults remain.
	widths := DefaultColumnWidths()
	for name, width := range config.ColumnWidths {
		widths[name] = width
	}
	config.ColumnWidths = widths
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	switch config.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}

	if _, err := language.Parse(config.Currency.Locale); err != nil {
		return fmt.Errorf("invalid currency locale %q: %w", config.Currency.Locale, err)
	}

	for name, width := range config.ColumnWidths {
		if width <= 0 || width > 255 {
			return fmt.Errorf("column width for %q must be between 1 and 255, got %v", name, width)
		}
	}

	// CUSTOMER NAME names the output file.
	protected := []string{
		types.ColOrderID,
		types.ColItemNumber,
		types.ColItemQuantity,
		types.ColItemPrice,
		types.ColCustomerName,
	}
	for _, column := range config.DropColumns {
		for _, p := range protected {
			if column == p {
				return fmt.Errorf("column %q cannot be dropped", column)
			}
		}
	}

	return nil
}
