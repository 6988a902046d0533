package model

import (
	"strings"
	"time"
)

// Record represents a single invoice line-item from a retail transaction log.
type Record struct {
	InvoiceDate time.Time
	InvoiceID   string
	StockCode   string
	Description string
	Country     string
	CustomerID  string // Optional; frequently missing in retail exports
	Quantity    float64
	Price       float64
}

// Complete reports whether all required fields are present. Records failing
// this check are dropped during preprocessing rather than surfaced as errors,
// since retail exports are known to contain incomplete rows.
func (r *Record) Complete() bool {
	return r.InvoiceID != "" &&
		r.StockCode != "" &&
		r.Description != "" &&
		r.Country != ""
}

// Cancelled reports whether the invoice identifier carries the cancellation
// marker. Cancelled invoices must never contribute to the incidence matrix.
func (r *Record) Cancelled(marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(r.InvoiceID, marker)
}

// NumericColumn is a named sequence of numeric values extracted from a record
// batch, used as the working copy for outlier capping. The slice aliases
// nothing; writing values back to records is the caller's job.
type NumericColumn struct {
	Name   string
	Values []float64
}

// Identifier reports whether the column name denotes an identifier. Identifier
// columns are never outlier-capped even when numerically typed.
func (c *NumericColumn) Identifier() bool {
	return strings.Contains(c.Name, "ID")
}
