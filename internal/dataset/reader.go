// Package dataset reads retail transaction exports (CSV or XLSX) into
// records. Loading is deliberately forgiving: rows with unparseable numeric
// fields are skipped and counted, since real exports are known to be dirty.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/model"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet the Online Retail II export ships its data in.
const DefaultSheet = "Year 2010-2011"

// Reader loads records from a CSV or XLSX file.
type Reader struct {
	path  string
	sheet string
}

// NewReader creates a reader for the given file. sheet selects the XLSX
// worksheet and is ignored for CSV files; empty means DefaultSheet.
func NewReader(path, sheet string) *Reader {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Reader{path: path, sheet: sheet}
}

// Read parses the file into records. The second return value is the number
// of rows skipped because a numeric field failed to parse.
func (r *Reader) Read() ([]model.Record, int, error) {
	if _, err := os.Stat(r.path); err != nil {
		return nil, 0, fmt.Errorf("failed to stat dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".csv":
		return r.readCSV()
	case ".xlsx":
		return r.readXLSX()
	default:
		return nil, 0, fmt.Errorf("%w: %s", common.ErrUnsupportedDataset, filepath.Ext(r.path))
	}
}

func (r *Reader) readCSV() ([]model.Record, int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}

	return parseRows(rows)
}

func (r *Reader) readXLSX() ([]model.Record, int, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read sheet %q: %w", r.sheet, err)
	}

	return parseRows(rows)
}

// columns maps normalized header names onto record fields. The Online Retail
// exports vary between "Invoice"/"InvoiceNo" and "Price"/"UnitPrice".
type columns struct {
	invoice     int
	stockCode   int
	description int
	quantity    int
	price       int
	country     int
	customer    int
	date        int
}

func parseRows(rows [][]string) ([]model.Record, int, error) {
	if len(rows) == 0 {
		return nil, 0, common.ErrNoRecords
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, 0, err
	}

	var records []model.Record
	skipped := 0
	for _, row := range rows[1:] {
		record, ok := parseRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}

	return records, skipped, nil
}

func mapHeader(header []string) (columns, error) {
	cols := columns{invoice: -1, stockCode: -1, description: -1, quantity: -1, price: -1, country: -1, customer: -1, date: -1}

	for i, name := range header {
		switch normalize(name) {
		case "invoice", "invoiceno":
			cols.invoice = i
		case "stockcode":
			cols.stockCode = i
		case "description":
			cols.description = i
		case "quantity":
			cols.quantity = i
		case "price", "unitprice":
			cols.price = i
		case "country":
			cols.country = i
		case "customerid":
			cols.customer = i
		case "invoicedate":
			cols.date = i
		}
	}

	for name, idx := range map[string]int{
		"invoice":     cols.invoice,
		"stock code":  cols.stockCode,
		"description": cols.description,
		"quantity":    cols.quantity,
		"price":       cols.price,
		"country":     cols.country,
	} {
		if idx < 0 {
			return cols, fmt.Errorf("%w: missing %s column", common.ErrUnsupportedDataset, name)
		}
	}

	return cols, nil
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "")
	return strings.ReplaceAll(name, "_", "")
}

func parseRow(row []string, cols columns) (model.Record, bool) {
	get := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	record := model.Record{
		InvoiceID:   get(cols.invoice),
		StockCode:   get(cols.stockCode),
		Description: get(cols.description),
		Country:     get(cols.country),
		CustomerID:  get(cols.customer),
	}

	// Missing string fields are left for the preprocessing pipeline to
	// drop; only unparseable numerics make a row unusable here.
	if q := get(cols.quantity); q != "" {
		quantity, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return model.Record{}, false
		}
		record.Quantity = quantity
	}
	if p := get(cols.price); p != "" {
		price, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return model.Record{}, false
		}
		record.Price = price
	}

	if d := get(cols.date); d != "" {
		record.InvoiceDate = parseDate(d)
	}

	return record, true
}

// parseDate tries the timestamp layouts seen in retail exports. An
// unrecognized value yields the zero time; the invoice date is metadata, not
// a required field.
func parseDate(value string) time.Time {
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"1/2/06 15:04",
		"01-02-06 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
