package model

// TransactionMatrix is a binary invoice×item incidence matrix. Cells are
// always 0 or 1; absence is encoded as 0, never as a missing cell. Row and
// column orderings are fixed at construction time.
type TransactionMatrix struct {
	invIdx   map[string]int
	itemIdx  map[string]int
	invoices []string
	items    []string
	cells    [][]uint8
}

// NewTransactionMatrix creates a zeroed matrix over the given invoice and item
// identifiers. The slices define row and column order and must not contain
// duplicates.
func NewTransactionMatrix(invoices, items []string) *TransactionMatrix {
	m := &TransactionMatrix{
		invoices: invoices,
		items:    items,
		invIdx:   make(map[string]int, len(invoices)),
		itemIdx:  make(map[string]int, len(items)),
		cells:    make([][]uint8, len(invoices)),
	}
	for i, inv := range invoices {
		m.invIdx[inv] = i
		m.cells[i] = make([]uint8, len(items))
	}
	for j, item := range items {
		m.itemIdx[item] = j
	}
	return m
}

// Rows returns the number of invoices.
func (m *TransactionMatrix) Rows() int { return len(m.invoices) }

// Columns returns the number of items.
func (m *TransactionMatrix) Columns() int { return len(m.items) }

// Empty reports whether the matrix has no rows or no columns.
func (m *TransactionMatrix) Empty() bool { return len(m.invoices) == 0 || len(m.items) == 0 }

// Invoices returns the row identifiers in row order.
func (m *TransactionMatrix) Invoices() []string { return m.invoices }

// Items returns the column identifiers in column order.
func (m *TransactionMatrix) Items() []string { return m.items }

// ItemIndex returns the column index for an item identifier.
func (m *TransactionMatrix) ItemIndex(item string) (int, bool) {
	j, ok := m.itemIdx[item]
	return j, ok
}

// Set marks the given invoice/item cell as present. Unknown identifiers are
// ignored; the row and column sets are fixed at construction.
func (m *TransactionMatrix) Set(invoice, item string) {
	i, ok := m.invIdx[invoice]
	if !ok {
		return
	}
	j, ok := m.itemIdx[item]
	if !ok {
		return
	}
	m.cells[i][j] = 1
}

// Cell returns 1 if the invoice contains the item, 0 otherwise. Identifiers
// outside the matrix read as 0.
func (m *TransactionMatrix) Cell(invoice, item string) uint8 {
	i, ok := m.invIdx[invoice]
	if !ok {
		return 0
	}
	j, ok := m.itemIdx[item]
	if !ok {
		return 0
	}
	return m.cells[i][j]
}

// CellAt returns the cell value by row and column index.
func (m *TransactionMatrix) CellAt(row, col int) uint8 {
	return m.cells[row][col]
}

// RowItems returns the column indices present in the given row, in ascending
// order. Used by the miners to treat rows as transactions.
func (m *TransactionMatrix) RowItems(row int) []int {
	var items []int
	for j, v := range m.cells[row] {
		if v == 1 {
			items = append(items, j)
		}
	}
	return items
}
