// =============================================================================
// Sales Order Splitter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which splits one sales CSV file
// into per-order workbooks.
//
// COMMAND USAGE:
//   orders process <sales.csv> [flags]
//
// FLAGS:
//   --dry-run : Load, validate and group, but write nothing
//
// OUTPUT:
//   === Sales Order Splitter ===
//     ✓ Order1001_AcmeCo.xlsx
//     ✓ Order1002_BetaLtd.xlsx
//
//   === Processing Complete ===
//   Rows read:       3
//   Orders:          2
//   Files written:   2
//   Output dir:      /data/Orders_2024-03-05
//   Time elapsed:    12ms
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sales-order-splitter/internal/converter"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun skips directory creation and file writes.
var dryRun bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process <sales.csv>",
	Short: "Split a sales CSV file into one workbook per order",
	Long: `The process command loads the sales CSV, checks that every required column
is present and numeric cells are well formed, computes TOTAL PRICE for every
line and writes one workbook per ORDER ID.

Workbooks are written to Orders_<YYYY-MM-DD> in the directory of the input
file. Existing workbooks with the same name are replaced. Nothing is written
if the input cannot be loaded or validated.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args, time.Now())
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Validate and group the input without writing any files",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess checks the argument, runs the converter and prints the report.
func runProcess(cmd *cobra.Command, args []string, today time.Time) error {
	if len(args) == 0 || args[0] == "" {
		return &types.InputError{Msg: "missing path to sales data CSV file"}
	}
	if len(args) > 1 {
		return &types.InputError{Msg: fmt.Sprintf("expected one sales data CSV file, got %d", len(args))}
	}

	csvPath := args[0]
	if !utils.IsRegularFile(csvPath) {
		return &types.InputError{Path: csvPath, Msg: "invalid path to sales data CSV file"}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	conv := converter.New(csvPath, converter.Options{
		Config: cfg,
		Logger: newLogger(cmd, cfg),
		Today:  today,
		DryRun: dryRun,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Sales Order Splitter ===")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result := conv.Run(ctx)

	for _, file := range result.OutputFiles {
		fmt.Fprintf(out, "  ✓ %s\n", filepath.Base(file))
	}

	if !result.Success {
		return result.Error
	}

	title := "Processing Complete"
	if dryRun {
		title = "Dry Run Complete"
	}

	fmt.Fprintf(out, "\n=== %s ===\n", title)
	fmt.Fprintf(out, "Rows read:       %d\n", result.Stats.RowsProcessed)
	fmt.Fprintf(out, "Orders:          %d\n", result.Stats.OrdersFound)
	fmt.Fprintf(out, "Files written:   %d\n", result.Stats.FilesWritten)
	fmt.Fprintf(out, "Output dir:      %s\n", result.OutputDir)
	fmt.Fprintf(out, "Time elapsed:    %s\n", result.Stats.ProcessingTime.Round(time.Millisecond))

	return nil
}
