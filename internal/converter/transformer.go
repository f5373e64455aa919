// =============================================================================
// Sales Order Splitter - Transformation Engine
// =============================================================================
//
// This module turns the loaded sales table into one OrderGroup per order.
//
// TRANSFORMATION STEPS (in order):
//   1. Validate the table shape (required columns, typed numeric cells)
//   2. Compute TOTAL PRICE = ITEM QUANTITY x ITEM PRICE for every row and
//      place the column immediately after ITEM PRICE
//   3. Drop the address columns
//   4. Group rows by ORDER ID, in order of first appearance
//   5. Drop ORDER ID from each group and stable-sort by ITEM NUMBER
//   6. Append one SummaryRow holding the sum of the group's totals
//
// Arithmetic is done with shopspring/decimal so totals are exact.
//
// =============================================================================

package converter

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/internal/validation"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer splits a sales table into order groups.
type Transformer struct {
	dropColumns []string
}

// NewTransformer creates a new Transformer that removes dropColumns from the
// output. A nil slice drops the address columns.
func NewTransformer(dropColumns []string) *Transformer {
	if dropColumns == nil {
		dropColumns = types.AddressColumns
	}
	return &Transformer{dropColumns: dropColumns}
}

// Transform is shorthand for NewTransformer(nil).Transform(table).
func Transform(table *types.Table) ([]types.OrderGroup, error) {
	return NewTransformer(nil).Transform(table)
}

// Transform validates the table and returns one OrderGroup per distinct order
// identifier. Any shape problem is returned as a *types.SchemaError.
func (t *Transformer) Transform(table *types.Table) ([]types.OrderGroup, error) {
	if err := validation.ValidateTable(table); err != nil {
		return nil, err
	}

	columns := t.outputColumns(table.Headers)
	kinds := outputKinds(columns, table.Kinds)

	rows := make([]types.DataRow, len(table.Rows))
	for i, raw := range table.Rows {
		rows[i] = t.enrich(raw, i+1)
	}

	groups := t.groupByOrder(table.Rows, rows)
	for i := range groups {
		groups[i].Columns = columns
		groups[i].ColumnKinds = kinds
		closeGroup(&groups[i])
	}

	return groups, nil
}

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

// outputColumns returns the headers with ORDER ID and the dropped columns
// removed and TOTAL PRICE inserted right after ITEM PRICE.
func (t *Transformer) outputColumns(headers []string) []string {
	columns := make([]string, 0, len(headers)+1)

	for _, header := range headers {
		if header == types.ColOrderID || header == types.ColTotalPrice || slices.Contains(t.dropColumns, header) {
			continue
		}
		columns = append(columns, header)
		if header == types.ColItemPrice {
			columns = append(columns, types.ColTotalPrice)
		}
	}

	return columns
}

// outputKinds returns the kind of every output column. TOTAL PRICE is always
// decimal; other columns keep the kind inferred by the loader.
func outputKinds(columns []string, inferred map[string]types.Kind) map[string]types.Kind {
	kinds := make(map[string]types.Kind, len(columns))
	for _, column := range columns {
		kinds[column] = inferred[column]
	}
	kinds[types.ColTotalPrice] = types.KindDecimal
	return kinds
}

// =============================================================================
// ROW ENRICHMENT
// =============================================================================

// enrich builds the typed DataRow for one validated input row.
func (t *Transformer) enrich(raw map[string]string, rowNumber int) types.DataRow {
	itemNumber, _ := strconv.Atoi(strings.TrimSpace(raw[types.ColItemNumber]))
	quantity, _ := strconv.Atoi(strings.TrimSpace(raw[types.ColItemQuantity]))
	price, _ := decimal.NewFromString(strings.TrimSpace(raw[types.ColItemPrice]))

	fields := make(map[string]string, len(raw))
	for header, value := range raw {
		if header == types.ColOrderID || header == types.ColTotalPrice || slices.Contains(t.dropColumns, header) {
			continue
		}
		fields[header] = value
	}

	return types.DataRow{
		ItemNumber: itemNumber,
		Quantity:   quantity,
		Price:      price,
		Total:      price.Mul(decimal.NewFromInt(int64(quantity))),
		Fields:     fields,
		SourceRow:  rowNumber,
	}
}

// =============================================================================
// GROUPING
// =============================================================================

// groupByOrder groups enriched rows by the ORDER ID of the matching raw row.
// Groups appear in order of first occurrence; rows keep input order.
func (t *Transformer) groupByOrder(raw []map[string]string, rows []types.DataRow) []types.OrderGroup {
	index := make(map[string]int)
	var groups []types.OrderGroup

	for i, row := range rows {
		key := strings.TrimSpace(raw[i][types.ColOrderID])

		pos, exists := index[key]
		if !exists {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, types.OrderGroup{OrderID: key})
		}

		groups[pos].Rows = append(groups[pos].Rows, row)
	}

	return groups
}

// closeGroup sorts the data rows by item number and appends the summary row.
// Equal item numbers keep their input order.
func closeGroup(group *types.OrderGroup) {
	sort.SliceStable(group.Rows, func(i, j int) bool {
		return group.Rows[i].(types.DataRow).ItemNumber < group.Rows[j].(types.DataRow).ItemNumber
	})

	total := decimal.Zero
	for _, row := range group.Rows {
		total = total.Add(row.(types.DataRow).Total)
	}

	group.Rows = append(group.Rows, types.SummaryRow{GrandTotal: total})
}
