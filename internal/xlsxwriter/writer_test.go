package xlsxwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/internal/xlsxparser"
)

var testColumns = []string{
	types.ColOrderDate,
	types.ColItemNumber,
	types.ColProductLine,
	types.ColProductCode,
	types.ColItemQuantity,
	types.ColItemPrice,
	types.ColTotalPrice,
	types.ColStatus,
	types.ColCustomerName,
}

func dataRow(item, qty int, price, customer string) types.DataRow {
	p := decimal.RequireFromString(price)
	return types.DataRow{
		ItemNumber: item,
		Quantity:   qty,
		Price:      p,
		Total:      p.Mul(decimal.NewFromInt(int64(qty))),
		Fields: map[string]string{
			types.ColOrderDate:    "2024-03-01",
			types.ColProductLine:  "Cars",
			types.ColProductCode:  "S10",
			types.ColStatus:       "Shipped",
			types.ColCustomerName: customer,
		},
	}
}

func testGroup() types.OrderGroup {
	return types.OrderGroup{
		OrderID: "1001",
		Columns: testColumns,
		Rows: []types.Row{
			dataRow(1, 1, "5", "Acme Co."),
			dataRow(2, 3, "10", "Acme Co."),
			types.SummaryRow{GrandTotal: decimal.RequireFromString("35")},
		},
	}
}

func TestCurrencyFormatter(t *testing.T) {
	usd, err := NewCurrencyFormatter("$", "en-US")
	require.NoError(t, err)

	assert.Equal(t, "$35.00", usd.Format(decimal.RequireFromString("35")))
	assert.Equal(t, "$1,234.50", usd.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.13", usd.Format(decimal.RequireFromString("0.125")))
	assert.Equal(t, "-$2.00", usd.Format(decimal.RequireFromString("-2")))
	assert.Equal(t, "$0.00", usd.Format(decimal.RequireFromString("-0.001")))
	assert.Equal(t, "$999.00", usd.Format(decimal.RequireFromString("999")))
	assert.Equal(t, "$1,000.00", usd.Format(decimal.RequireFromString("1000")))

	// Beyond float64 precision the cents must still be exact.
	assert.Equal(t, "$90,071,992,547,409.93", usd.Format(decimal.RequireFromString("90071992547409.93")))
	assert.Equal(t, "$12,345,678,901,234,567.89", usd.Format(decimal.RequireFromString("12345678901234567.885")))

	eur, err := NewCurrencyFormatter("€", "de-DE")
	require.NoError(t, err)
	assert.Equal(t, "€1.234,50", eur.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "€90.071.992.547.409,93", eur.Format(decimal.RequireFromString("90071992547409.93")))

	_, err = NewCurrencyFormatter("$", "not a locale!")
	assert.Error(t, err)
}

func TestSeparators(t *testing.T) {
	tests := []struct {
		sample    string
		wantGroup string
		wantDec   string
	}{
		{"1,234,567.50", ",", "."},
		{"1.234.567,50", ".", ","},
		{"1 234 567,50", " ", ","},
		{"1234567,50", "", ","},
		{"-1,234,567.50 €", ",", "."},
		{"n/a", ",", "."},
	}

	for _, tt := range tests {
		t.Run(tt.sample, func(t *testing.T) {
			group, dec := separators(tt.sample)
			assert.Equal(t, tt.wantGroup, group)
			assert.Equal(t, tt.wantDec, dec)
		})
	}
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits("0", ","))
	assert.Equal(t, "123", groupDigits("123", ","))
	assert.Equal(t, "1,234", groupDigits("1234", ","))
	assert.Equal(t, "123,456", groupDigits("123456", ","))
	assert.Equal(t, "12.345.678", groupDigits("12345678", "."))
	assert.Equal(t, "12345678", groupDigits("12345678", ""))
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Co.", "AcmeCo"},
		{"Beta_Ltd", "Beta_Ltd"},
		{"O'Brien & Sons, Inc.", "OBrienSonsInc"},
		{"Café Zoë", "CaféZoë"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestFileNameAndSheetName(t *testing.T) {
	w := New(DefaultOptions())

	assert.Equal(t, "Order1001_AcmeCo.xlsx", w.FileName(testGroup()))
	assert.Equal(t, "Order #1001", SheetName("1001"))
}

func TestGrid(t *testing.T) {
	w := New(DefaultOptions())
	grid := w.Grid(testGroup())

	require.Len(t, grid, 4)
	assert.Equal(t, types.ColOrderDate, grid[0][0])

	// ITEM PRICE and TOTAL PRICE are columns 5 and 6.
	assert.Equal(t, "$10.00", grid[2][5])
	assert.Equal(t, "$30.00", grid[2][6])
	assert.Equal(t, 3, grid[2][4])

	summary := grid[3]
	assert.Equal(t, "GRAND TOTAL:", summary[5])
	assert.Equal(t, "$35.00", summary[6])
	for i, v := range summary {
		if i != 5 && i != 6 {
			assert.Nil(t, v, "column %d", i)
		}
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	w := New(DefaultOptions())

	path, err := w.Export(testGroup(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Order1001_AcmeCo.xlsx"), path)

	sheet, err := xlsxparser.ReadOrderFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Order #1001", sheet.SheetName)
	assert.Equal(t, testColumns, sheet.Header)
	assert.NotContains(t, sheet.Header, types.ColOrderID)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, []string{"1", "2", ""}, sheet.Values(types.ColItemNumber))
	assert.Equal(t, []string{"$5.00", "$30.00", "$35.00"}, sheet.Values(types.ColTotalPrice))

	marker, total := sheet.SummaryTotal()
	assert.Equal(t, "GRAND TOTAL:", marker)
	assert.Equal(t, "$35.00", total)

	assert.InDelta(t, 30.0, sheet.ColumnWidths[types.ColCustomerName], 0.01)
	assert.InDelta(t, 13.0, sheet.ColumnWidths[types.ColTotalPrice], 0.01)
	assert.InDelta(t, 11.0, sheet.ColumnWidths[types.ColOrderDate], 0.01)
}

func TestExportNumericColumns(t *testing.T) {
	group := testGroup()
	group.Columns = append(append([]string(nil), testColumns...), "WAREHOUSE", "WEIGHT KG")
	group.ColumnKinds = map[string]types.Kind{
		"WAREHOUSE":          types.KindInteger,
		"WEIGHT KG":          types.KindDecimal,
		types.ColProductCode: types.KindText,
	}
	for i, row := range group.Rows {
		if d, ok := row.(types.DataRow); ok {
			d.Fields["WAREHOUSE"] = "7"
			d.Fields["WEIGHT KG"] = "1.25"
			group.Rows[i] = d
		}
	}

	path, err := New(DefaultOptions()).Export(group, t.TempDir())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := SheetName(group.OrderID)
	numeric := []excelize.CellType{excelize.CellTypeUnset, excelize.CellTypeNumber}

	// Row 2 is the first data row; J and K are the extra columns.
	typ, err := f.GetCellType(sheet, "J2")
	require.NoError(t, err)
	assert.Contains(t, numeric, typ)
	value, err := f.GetCellValue(sheet, "J2")
	require.NoError(t, err)
	assert.Equal(t, "7", value)

	typ, err = f.GetCellType(sheet, "K2")
	require.NoError(t, err)
	assert.Contains(t, numeric, typ)
	value, err = f.GetCellValue(sheet, "K2")
	require.NoError(t, err)
	assert.Equal(t, "1.25", value)

	// PRODUCT CODE (D) stays text.
	typ, err = f.GetCellType(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, typ)
}

func TestNumericCell(t *testing.T) {
	assert.Equal(t, int64(-3), numericCell("-3", types.KindInteger))
	assert.Equal(t, 2.5, numericCell(" 2.5 ", types.KindDecimal))
	assert.Equal(t, "n/a", numericCell("n/a", types.KindInteger))
	assert.Equal(t, "02134", numericCell("02134", types.KindText))
}

func TestExportOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := New(DefaultOptions())

	first, err := w.Export(testGroup(), dir)
	require.NoError(t, err)
	second, err := w.Export(testGroup(), dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExportCustomMarkerAndCurrency(t *testing.T) {
	eur, err := NewCurrencyFormatter("€", "de-DE")
	require.NoError(t, err)

	w := New(Options{
		SummaryMarker: "SUMME:",
		FileExtension: ".xlsx",
		Currency:      eur,
	})

	path, err := w.Export(testGroup(), t.TempDir())
	require.NoError(t, err)

	sheet, err := xlsxparser.ReadOrderFile(path)
	require.NoError(t, err)

	marker, total := sheet.SummaryTotal()
	assert.Equal(t, "SUMME:", marker)
	assert.Equal(t, "€35,00", total)
}

func TestExportMissingDir(t *testing.T) {
	w := New(DefaultOptions())

	_, err := w.Export(testGroup(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	var exportErr *types.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "export error", types.ErrorKind(err))
}
