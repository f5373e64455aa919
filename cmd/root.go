// =============================================================================
// Sales Order Splitter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (orders)
//   ├── processCmd (orders process <sales.csv>)
//   ├── inspectCmd (orders inspect <order.xlsx|dir>)
//   └── versionCmd (orders version)
//
// ERRORS:
//   Every failure is printed as one line, "Error: <kind>: <message>", and
//   the process exits with status 1.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
	"github.com/ginjaninja78/sales-order-splitter/internal/logging"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "orders",
	Short: "Sales Order Splitter - split a sales CSV export into one workbook per order",
	Long: `Sales Order Splitter reads a CSV export of sales transactions and writes
one Excel workbook per order into a dated folder next to the input file.

Each workbook holds the order's line items sorted by item number, a computed
TOTAL PRICE column and a closing GRAND TOTAL row. Address columns are left out.

Example Usage:
  orders process ./sales_data.csv               # Writes ./Orders_<today>/
  orders process ./sales_data.csv --dry-run     # Report what would be written
  orders process ./sales.csv --config orders.yaml
  orders inspect ./Orders_2024-03-05/Order1001_AcmeCo.xlsx`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// printError writes the single-line error report.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s: %v\n", types.ErrorKind(err), err)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig loads the configuration named by --config and applies --verbose.
func loadConfig() (*config.MainConfig, error) {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, &types.InputError{Path: cfgFile, Msg: "cannot load configuration", Err: err}
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// newLogger builds the command logger. Logs go to stderr so stdout only
// carries the command report.
func newLogger(cmd *cobra.Command, cfg *config.MainConfig) *slog.Logger {
	return logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to an optional YAML configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
