package preprocess

import (
	"testing"

	"github.com/amctague/lift/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(invoice, stock, description string, quantity float64) model.Record {
	return model.Record{
		InvoiceID:   invoice,
		StockCode:   stock,
		Description: description,
		Quantity:    quantity,
		Price:       1.0,
		Country:     "Germany",
	}
}

func TestBuildMatrix(t *testing.T) {
	records := []model.Record{
		record("I1", "A", "apples", 2),
		record("I1", "B", "bread", 1),
		record("I2", "A", "apples", 5),
		record("I3", "B", "bread", 3),
		record("I3", "C", "cheese", 1),
	}

	matrix := BuildMatrix(records, KeyStockCode)

	assert.Equal(t, []string{"I1", "I2", "I3"}, matrix.Invoices())
	assert.Equal(t, []string{"A", "B", "C"}, matrix.Items())

	assert.Equal(t, uint8(1), matrix.Cell("I1", "A"))
	assert.Equal(t, uint8(1), matrix.Cell("I1", "B"))
	assert.Equal(t, uint8(0), matrix.Cell("I1", "C"))
	assert.Equal(t, uint8(1), matrix.Cell("I2", "A"))
	assert.Equal(t, uint8(0), matrix.Cell("I2", "B"))
	assert.Equal(t, uint8(1), matrix.Cell("I3", "C"))
}

func TestBuildMatrix_SummedQuantities(t *testing.T) {
	// A purchase followed by a larger return nets out non-positive, so the
	// cell must read 0, but the invoice and item stay in the matrix.
	records := []model.Record{
		record("I1", "A", "apples", 3),
		record("I1", "A", "apples", -5),
		record("I1", "B", "bread", 2),
		record("I1", "B", "bread", -1),
	}

	matrix := BuildMatrix(records, KeyStockCode)

	assert.Equal(t, []string{"I1"}, matrix.Invoices())
	assert.Equal(t, []string{"A", "B"}, matrix.Items())
	assert.Equal(t, uint8(0), matrix.Cell("I1", "A"))
	assert.Equal(t, uint8(1), matrix.Cell("I1", "B"))
}

func TestBuildMatrix_PermutationInvariance(t *testing.T) {
	records := []model.Record{
		record("I1", "A", "apples", 2),
		record("I1", "B", "bread", 1),
		record("I2", "A", "apples", -1),
		record("I2", "A", "apples", 4),
		record("I3", "C", "cheese", 1),
	}

	forward := BuildMatrix(records, KeyStockCode)

	reversed := make([]model.Record, len(records))
	for i := range records {
		reversed[len(records)-1-i] = records[i]
	}
	backward := BuildMatrix(reversed, KeyStockCode)

	require.Equal(t, forward.Invoices(), backward.Invoices())
	require.Equal(t, forward.Items(), backward.Items())
	for _, inv := range forward.Invoices() {
		for _, item := range forward.Items() {
			assert.Equal(t, forward.Cell(inv, item), backward.Cell(inv, item),
				"cell (%s, %s)", inv, item)
		}
	}
}

func TestBuildMatrix_DescriptionKey(t *testing.T) {
	records := []model.Record{
		record("I1", "A", "apples", 1),
		record("I2", "B", "bread", 1),
	}

	matrix := BuildMatrix(records, KeyDescription)

	assert.Equal(t, []string{"apples", "bread"}, matrix.Items())
	assert.Equal(t, uint8(1), matrix.Cell("I1", "apples"))
}

func TestBuildMatrix_Empty(t *testing.T) {
	matrix := BuildMatrix(nil, KeyStockCode)

	assert.True(t, matrix.Empty())
	assert.Equal(t, 0, matrix.Rows())
	assert.Equal(t, 0, matrix.Columns())
}
