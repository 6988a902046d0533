package preprocess

import (
	"strings"

	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/model"
)

// Options configures the preprocessing pipeline. The defaults mirror the
// Online Retail II conventions: invoices starting with "C" are cancellations,
// and analysis targets a single country market.
type Options struct {
	// Country restricts the matrix to records from a single market.
	Country string
	// CancelMarker is the substring in an invoice identifier that marks a
	// cancelled invoice.
	CancelMarker string
	// ExcludeDescriptions drops records whose description contains any of
	// these substrings (non-merchandise line items such as postage).
	ExcludeDescriptions []string
}

// DefaultOptions returns the standard pipeline configuration.
func DefaultOptions() Options {
	return Options{
		Country:      "Germany",
		CancelMarker: "C",
	}
}

// Preprocess runs the full filter/transform pipeline over raw records and
// builds the mining-ready incidence matrix keyed by stock code. Every step is
// total: malformed rows are dropped, not surfaced as errors, and an empty
// surviving record set yields an empty matrix rather than a failure.
func Preprocess(records []model.Record, opts Options) *model.TransactionMatrix {
	kept := make([]model.Record, 0, len(records))
	var incomplete, cancelled, excluded int

	for i := range records {
		r := records[i]
		switch {
		case !r.Complete():
			incomplete++
		case r.Cancelled(opts.CancelMarker):
			cancelled++
		case descriptionExcluded(r.Description, opts.ExcludeDescriptions):
			excluded++
		default:
			kept = append(kept, r)
		}
	}

	capQuantityAndPrice(kept)

	survivors := kept[:0]
	var nonPositive, otherCountry int
	for i := range kept {
		r := kept[i]
		if r.Quantity <= 0 || r.Price <= 0 {
			nonPositive++
			continue
		}
		if opts.Country != "" && r.Country != opts.Country {
			otherCountry++
			continue
		}
		survivors = append(survivors, r)
	}

	common.LogDebug("preprocessing complete", common.Fields{
		"input":         len(records),
		"incomplete":    incomplete,
		"cancelled":     cancelled,
		"excluded":      excluded,
		"non_positive":  nonPositive,
		"other_country": otherCountry,
		"surviving":     len(survivors),
	})

	return BuildMatrix(survivors, KeyStockCode)
}

func descriptionExcluded(description string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(description, p) {
			return true
		}
	}
	return false
}

// capQuantityAndPrice applies outlier capping to the quantity and price
// columns and writes the capped values back onto the records. Identifier
// columns never pass through here.
func capQuantityAndPrice(records []model.Record) {
	if len(records) == 0 {
		return
	}

	quantity := model.NumericColumn{Name: "Quantity", Values: make([]float64, len(records))}
	price := model.NumericColumn{Name: "Price", Values: make([]float64, len(records))}
	for i := range records {
		quantity.Values[i] = records[i].Quantity
		price.Values[i] = records[i].Price
	}

	CapColumns([]model.NumericColumn{quantity, price})

	for i := range records {
		records[i].Quantity = quantity.Values[i]
		records[i].Price = price.Values[i]
	}
}
