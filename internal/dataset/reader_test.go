package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amctague/lift/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retail.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReader_CSV(t *testing.T) {
	path := writeCSV(t, `Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country
536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,2010-12-01 08:26:00,2.55,17850,United Kingdom
C536379,D,Discount,-1,2010-12-01 09:41:00,27.50,14527,United Kingdom
536370,22728,ALARM CLOCK BAKELIKE PINK,24,2010-12-01 08:45:00,3.75,,Germany
`)

	records, skipped, err := NewReader(path, "").Read()
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "536365", first.InvoiceID)
	assert.Equal(t, "85123A", first.StockCode)
	assert.Equal(t, "WHITE HANGING HEART T-LIGHT HOLDER", first.Description)
	assert.Equal(t, 6.0, first.Quantity)
	assert.Equal(t, 2.55, first.Price)
	assert.Equal(t, "17850", first.CustomerID)
	assert.Equal(t, "United Kingdom", first.Country)
	assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), first.InvoiceDate)

	// Cancellations and missing customer IDs are loaded as-is; filtering
	// is the preprocessing pipeline's job.
	assert.Equal(t, "C536379", records[1].InvoiceID)
	assert.Equal(t, -1.0, records[1].Quantity)
	assert.Empty(t, records[2].CustomerID)
}

func TestReader_CSVHeaderVariants(t *testing.T) {
	path := writeCSV(t, `InvoiceNo,StockCode,Description,Quantity,UnitPrice,Country
536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,2.55,United Kingdom
`)

	records, skipped, err := NewReader(path, "").Read()
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, "536365", records[0].InvoiceID)
	assert.Equal(t, 2.55, records[0].Price)
}

func TestReader_SkipsUnparseableRows(t *testing.T) {
	path := writeCSV(t, `Invoice,StockCode,Description,Quantity,Price,Country
536365,85123A,GOOD ROW,6,2.55,Germany
536366,85123B,BAD QUANTITY,six,2.55,Germany
536367,85123C,BAD PRICE,6,cheap,Germany
`)

	records, skipped, err := NewReader(path, "").Read()
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, "GOOD ROW", records[0].Description)
}

func TestReader_MissingColumn(t *testing.T) {
	path := writeCSV(t, `Invoice,StockCode,Quantity,Price,Country
536365,85123A,6,2.55,Germany
`)

	_, _, err := NewReader(path, "").Read()
	assert.ErrorIs(t, err, common.ErrUnsupportedDataset)
}

func TestReader_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retail.txt")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0600))

	_, _, err := NewReader(path, "").Read()
	assert.ErrorIs(t, err, common.ErrUnsupportedDataset)
}

func TestReader_MissingFile(t *testing.T) {
	_, _, err := NewReader(filepath.Join(t.TempDir(), "nope.csv"), "").Read()
	assert.Error(t, err)
}

func TestReader_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retail.xlsx")

	f := excelize.NewFile()
	const sheet = "Year 2010-2011"
	index, err := f.NewSheet(sheet)
	require.NoError(t, err)
	f.SetActiveSheet(index)

	rows := [][]any{
		{"Invoice", "StockCode", "Description", "Quantity", "Price", "Country"},
		{"536365", "85123A", "WHITE HANGING HEART T-LIGHT HOLDER", 6, 2.55, "United Kingdom"},
		{"536370", "22728", "ALARM CLOCK BAKELIKE PINK", 24, 3.75, "Germany"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, skipped, err := NewReader(path, sheet).Read()
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, records, 2)
	assert.Equal(t, "22728", records[1].StockCode)
	assert.Equal(t, 24.0, records[1].Quantity)
	assert.Equal(t, "Germany", records[1].Country)
}
