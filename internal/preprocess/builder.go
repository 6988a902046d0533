package preprocess

import (
	"sort"

	"github.com/amctague/lift/internal/model"
)

// MatrixKey selects which record field becomes the matrix column identifier.
type MatrixKey int

const (
	// KeyStockCode keys matrix columns by product identifier.
	KeyStockCode MatrixKey = iota
	// KeyDescription keys matrix columns by product description.
	KeyDescription
)

func (k MatrixKey) of(r *model.Record) string {
	if k == KeyDescription {
		return r.Description
	}
	return r.StockCode
}

// BuildMatrix aggregates records into a binary invoice×item incidence matrix.
// Records are grouped by (invoice, key) with quantities summed per group; a
// cell is 1 iff the summed quantity is strictly positive. Every distinct
// invoice and key among the input becomes a row/column, even if its cells end
// up all zero; downstream callers decide whether sparse rows matter. Grouping
// and summation are order-independent, so any permutation of the same input
// multiset yields an identical matrix.
func BuildMatrix(records []model.Record, key MatrixKey) *model.TransactionMatrix {
	sums := make(map[string]map[string]float64)
	itemSet := make(map[string]struct{})

	for i := range records {
		r := &records[i]
		k := key.of(r)
		row, ok := sums[r.InvoiceID]
		if !ok {
			row = make(map[string]float64)
			sums[r.InvoiceID] = row
		}
		row[k] += r.Quantity
		itemSet[k] = struct{}{}
	}

	invoices := make([]string, 0, len(sums))
	for inv := range sums {
		invoices = append(invoices, inv)
	}
	sort.Strings(invoices)

	items := make([]string, 0, len(itemSet))
	for item := range itemSet {
		items = append(items, item)
	}
	sort.Strings(items)

	matrix := model.NewTransactionMatrix(invoices, items)
	for inv, row := range sums {
		for item, qty := range row {
			if qty > 0 {
				matrix.Set(inv, item)
			}
		}
	}

	return matrix
}
