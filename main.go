// =============================================================================
// Sales Order Splitter - Main Entry Point
// =============================================================================
//
// USAGE:
//   orders process <sales.csv>   - Split a sales export into order workbooks
//   orders inspect <order.xlsx>  - Print an order workbook
//   orders version               - Display the application version
//
// LAYOUT:
//   cmd/       : CLI command definitions (Cobra)
//   internal/  : Loading, validation, transformation and export
//   pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/sales-order-splitter/cmd"
)

func main() {
	cmd.Execute()
}
