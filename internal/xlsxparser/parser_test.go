package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path, sheet string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SetColWidth(sheet, "B", "B", 20))
	require.NoError(t, f.SaveAs(path))
}

func TestReadOrderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Order7_Acme.xlsx")
	writeWorkbook(t, path, "Order #7", [][]interface{}{
		{"ITEM NUMBER", "ITEM PRICE", "TOTAL PRICE", "STATUS"},
		{1, "$2.00", "$4.00", "Shipped"},
		{2, "$1.00", "$1.00"},
		{nil, "GRAND TOTAL:", "$5.00"},
	})

	sheet, err := ReadOrderFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Order #7", sheet.SheetName)
	assert.Equal(t, []string{"ITEM NUMBER", "ITEM PRICE", "TOTAL PRICE", "STATUS"}, sheet.Header)
	require.Len(t, sheet.Rows, 3)
	assert.Len(t, sheet.DataRows(), 2)

	// Short rows are padded to the header width.
	assert.Equal(t, []string{"2", "$1.00", "$1.00", ""}, sheet.Rows[1])
	assert.Equal(t, []string{"Shipped", "", ""}, sheet.Values("STATUS"))
	assert.Nil(t, sheet.Values("MISSING"))

	marker, total := sheet.SummaryTotal()
	assert.Equal(t, "GRAND TOTAL:", marker)
	assert.Equal(t, "$5.00", total)

	assert.InDelta(t, 20.0, sheet.ColumnWidths["ITEM PRICE"], 0.01)
}

func TestReadOrderFileMissing(t *testing.T) {
	_, err := ReadOrderFile(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestReadOrdersDir(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "Order2_B.xlsx"), "Order #2", [][]interface{}{{"ITEM PRICE"}, {"x"}})
	writeWorkbook(t, filepath.Join(dir, "Order1_A.xlsx"), "Order #1", [][]interface{}{{"ITEM PRICE"}, {"y"}})

	sheets, err := ReadOrdersDir(dir, ".xlsx")
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, "Order #1", sheets[0].SheetName)
	assert.Equal(t, "Order #2", sheets[1].SheetName)
}
