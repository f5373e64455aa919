// =============================================================================
// Sales Order Splitter - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which prints the content of order
// workbooks as aligned text.
//
// COMMAND USAGE:
//   orders inspect <order.xlsx>      # One workbook
//   orders inspect <Orders_dir>      # Every workbook in the directory
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/internal/xlsxparser"
)

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect <order.xlsx|dir>",
	Short: "Print the content of order workbooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return &types.InputError{Msg: "expected one order workbook or directory"}
		}
		return runInspect(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// runInspect prints one workbook, or every workbook of a directory.
func runInspect(out io.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &types.InputError{Path: path, Msg: "invalid path to order workbook", Err: err}
	}

	var sheets []*xlsxparser.OrderSheet
	if info.IsDir() {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sheets, err = xlsxparser.ReadOrdersDir(path, cfg.FileExtension)
		if err != nil {
			return &types.InputError{Path: path, Msg: "cannot read order workbooks", Err: err}
		}
	} else {
		sheet, err := xlsxparser.ReadOrderFile(path)
		if err != nil {
			return &types.InputError{Path: path, Msg: "cannot read order workbook", Err: err}
		}
		sheets = append(sheets, sheet)
	}

	for i, sheet := range sheets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := printSheet(out, sheet); err != nil {
			return err
		}
	}

	return nil
}

// printSheet writes the sheet title followed by a tab-aligned table.
func printSheet(out io.Writer, sheet *xlsxparser.OrderSheet) error {
	fmt.Fprintf(out, "%s (%s)\n", sheet.SheetName, filepath.Base(sheet.Path))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(sheet.Header, "\t"))
	for _, row := range sheet.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}
