// =============================================================================
// Sales Order Splitter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - loader      (Table, Kind)
//   - validation  (Table)
//   - converter   (Table -> OrderGroup)
//   - xlsxwriter  (OrderGroup)
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Column headers of the sales export.
const (
	ColOrderID      = "ORDER ID"
	ColOrderDate    = "ORDER DATE"
	ColItemNumber   = "ITEM NUMBER"
	ColProductLine  = "PRODUCT LINE"
	ColProductCode  = "PRODUCT CODE"
	ColItemQuantity = "ITEM QUANTITY"
	ColItemPrice    = "ITEM PRICE"
	ColTotalPrice   = "TOTAL PRICE"
	ColStatus       = "STATUS"
	ColCustomerName = "CUSTOMER NAME"
	ColAddress      = "ADDRESS"
	ColCity         = "CITY"
	ColState        = "STATE"
	ColPostalCode   = "POSTAL CODE"
	ColCountry      = "COUNTRY"
)

// RequiredColumns lists the columns every sales export must carry.
var RequiredColumns = []string{
	ColOrderID,
	ColOrderDate,
	ColItemNumber,
	ColProductLine,
	ColProductCode,
	ColItemQuantity,
	ColItemPrice,
	ColStatus,
	ColCustomerName,
	ColAddress,
	ColCity,
	ColState,
	ColPostalCode,
	ColCountry,
}

// AddressColumns are present on input but never retained in output.
var AddressColumns = []string{
	ColAddress,
	ColCity,
	ColState,
	ColPostalCode,
	ColCountry,
}

// =============================================================================
// TABLE TYPES
// =============================================================================

// Kind is the scalar type inferred for a column.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindDecimal
	KindDate
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Table is the in-memory form of the sales export produced by the loader.
type Table struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Kinds maps each header to the scalar type inferred from its values.
	Kinds map[string]Kind

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// SourceFile is the path to the source CSV file.
	SourceFile string
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// =============================================================================
// ORDER GROUP TYPES
// =============================================================================

// Row is one line of an order group: either a DataRow or a SummaryRow.
type Row interface {
	isRow()
}

// DataRow is a transaction row enriched with its total price.
// Address columns are never present in Fields.
type DataRow struct {
	ItemNumber int
	Quantity   int
	Price      decimal.Decimal

	// Total is Quantity * Price.
	Total decimal.Decimal

	// Fields holds every other retained column as raw text.
	Fields map[string]string

	// SourceRow is the 1-indexed position of the row among the non-blank
	// data records of the input; blank lines are not counted.
	SourceRow int
}

// SummaryRow closes every order group and carries the group's grand total.
type SummaryRow struct {
	GrandTotal decimal.Decimal
}

func (DataRow) isRow()    {}
func (SummaryRow) isRow() {}

// OrderGroup is every row sharing one order identifier, sorted by item
// number, followed by exactly one SummaryRow.
type OrderGroup struct {
	// OrderID is the grouping key. The ORDER ID column itself is not in Columns.
	OrderID string

	// Columns is the output column order.
	Columns []string

	// ColumnKinds maps each output column to its inferred scalar kind.
	// Columns missing from the map are text.
	ColumnKinds map[string]Kind

	// Rows holds the data rows followed by the summary row.
	Rows []Row
}

// DataRows returns the group's data rows in order.
func (g *OrderGroup) DataRows() []DataRow {
	rows := make([]DataRow, 0, len(g.Rows))
	for _, r := range g.Rows {
		if d, ok := r.(DataRow); ok {
			rows = append(rows, d)
		}
	}
	return rows
}

// Summary returns the group's summary row. The zero value is returned if the
// group has not been closed yet.
func (g *OrderGroup) Summary() SummaryRow {
	if len(g.Rows) == 0 {
		return SummaryRow{}
	}
	s, _ := g.Rows[len(g.Rows)-1].(SummaryRow)
	return s
}

// CustomerName returns the customer of the first data row.
func (g *OrderGroup) CustomerName() string {
	for _, r := range g.Rows {
		if d, ok := r.(DataRow); ok {
			return d.Fields[ColCustomerName]
		}
	}
	return ""
}
