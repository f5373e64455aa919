// =============================================================================
// Sales Order Splitter - Converter Module
// =============================================================================
//
// This module orchestrates one run of the splitter, from the sales CSV to
// one workbook per order.
//
// CONVERSION PIPELINE:
//   1. Load the sales CSV into a typed table
//   2. Transform the table into order groups (validate, total, group, sort)
//   3. Create the dated output directory next to the input file
//   4. Export every order group to its own workbook
//
// Nothing is created on disk before step 3, so input and schema errors
// leave the filesystem untouched. The first export failure aborts the run.
//
// =============================================================================

package converter

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
	"github.com/ginjaninja78/sales-order-splitter/internal/loader"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/internal/xlsxwriter"
	"github.com/ginjaninja78/sales-order-splitter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single sales file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputDir is the dated directory holding the workbooks.
	// It is set in dry-run mode too, but the directory is not created.
	OutputDir string

	// OutputFiles lists the written workbooks in order-group order.
	// In dry-run mode it lists the files that would have been written.
	OutputFiles []string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed. It is one of
	// *types.InputError, *types.SchemaError or *types.ExportError.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsProcessed is the number of data rows read from the CSV.
	RowsProcessed int

	// OrdersFound is the number of distinct order identifiers.
	OrdersFound int

	// FilesWritten is the number of workbooks written to disk.
	FilesWritten int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options configure a Converter.
type Options struct {
	// Config is the application configuration. Nil means config.Default().
	Config *config.MainConfig

	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger

	// Today names the output directory. The zero value means time.Now().
	Today time.Time

	// DryRun runs every step except creating the directory and writing files.
	DryRun bool
}

// Converter splits one sales CSV file into order workbooks.
type Converter struct {
	csvPath string
	cfg     *config.MainConfig
	logger  *slog.Logger
	today   time.Time
	dryRun  bool
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - csvPath: The path to the input sales CSV file.
//   - opts: Configuration, logger, run date and dry-run flag.
//
// RETURNS:
//   - A new Converter instance.
func New(csvPath string, opts Options) *Converter {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}

	return &Converter{
		csvPath: csvPath,
		cfg:     cfg,
		logger:  logger.With("file", csvPath),
		today:   today,
		dryRun:  opts.DryRun,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
//
// Cancelling ctx stops the run between two order groups; files already
// written are kept.
func (c *Converter) Run(ctx context.Context) (result Result) {
	startTime := time.Now()
	result.FilePath = c.csvPath

	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	// =========================================================================
	// STEP 1: LOAD
	// =========================================================================

	c.logger.Info("Loading sales data")

	table, err := loader.Load(c.csvPath, c.cfg.CSVSettings)
	if err != nil {
		return c.fail(result, err)
	}

	result.Stats.RowsProcessed = len(table.Rows)
	c.logger.Debug("Loaded sales data", "rows", len(table.Rows), "columns", len(table.Headers))

	// =========================================================================
	// STEP 2: TRANSFORM
	// =========================================================================

	groups, err := NewTransformer(c.cfg.DropColumns).Transform(table)
	if err != nil {
		return c.fail(result, err)
	}

	result.Stats.OrdersFound = len(groups)
	c.logger.Info("Grouped sales data", "orders", len(groups))

	for _, group := range groups {
		c.checkCustomer(group)
	}

	// =========================================================================
	// STEP 3: OUTPUT DIRECTORY
	// =========================================================================

	outputDir, err := utils.OrdersDirPath(c.csvPath, c.cfg.OutputDirPrefix, c.today)
	if err != nil {
		return c.fail(result, &types.InputError{Path: c.csvPath, Msg: "invalid path to sales data CSV file", Err: err})
	}
	result.OutputDir = outputDir

	opts, err := xlsxwriter.OptionsFromConfig(c.cfg)
	if err != nil {
		return c.fail(result, &types.ExportError{Path: outputDir, Msg: "invalid currency settings", Err: err})
	}
	writer := xlsxwriter.New(opts)

	if c.dryRun {
		for _, group := range groups {
			result.OutputFiles = append(result.OutputFiles, filepath.Join(outputDir, writer.FileName(group)))
		}
		c.logger.Info("Dry run complete, no files written", "dir", outputDir, "orders", len(groups))
		result.Success = true
		return result
	}

	if utils.FileExists(outputDir) {
		c.logger.Debug("Reusing output directory", "dir", outputDir)
	}
	if err := utils.EnsureDir(outputDir); err != nil {
		return c.fail(result, &types.ExportError{Path: outputDir, Msg: "cannot create output directory", Err: err})
	}

	// =========================================================================
	// STEP 4: EXPORT
	// =========================================================================

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return c.fail(result, &types.ExportError{Path: outputDir, Msg: "export cancelled", Err: err})
		}

		path, err := writer.Export(group, outputDir)
		if err != nil {
			return c.fail(result, err)
		}

		result.OutputFiles = append(result.OutputFiles, path)
		result.Stats.FilesWritten++
		c.logger.Debug("Wrote order workbook", "order", group.OrderID, "path", path, "rows", len(group.Rows)-1)
	}

	result.Success = true
	c.logger.Info("Processing complete",
		"dir", outputDir,
		"files", result.Stats.FilesWritten,
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	return result
}

// fail records err on the result and logs it.
func (c *Converter) fail(result Result, err error) Result {
	result.Success = false
	result.Error = err
	c.logger.Error("Processing failed", "kind", types.ErrorKind(err), "error", err)
	return result
}

// checkCustomer logs orders whose rows disagree on the customer name. The
// first row's name is used for the file name.
func (c *Converter) checkCustomer(group types.OrderGroup) {
	name := group.CustomerName()
	for _, row := range group.DataRows() {
		if other := row.Fields[types.ColCustomerName]; other != name {
			c.logger.Debug("Order has more than one customer name",
				"order", group.OrderID,
				"using", name,
				"other", other,
				"row", row.SourceRow,
			)
			return
		}
	}
}
