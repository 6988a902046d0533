// Package preprocess turns raw invoice line-items into the binarized
// invoice×item incidence matrix consumed by itemset mining.
package preprocess

import (
	"math"
	"sort"

	"github.com/amctague/lift/internal/model"
)

// iqrMultiplier widens the p1–p99 band when computing capping thresholds.
const iqrMultiplier = 1.5

// quantile returns the q-th quantile (0 ≤ q ≤ 1) of values using linear
// interpolation between order statistics (R type 7, the pandas default).
// Thresholds derived from it are therefore reproducible against the
// reference dataset pipeline.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Thresholds computes the outlier capping bounds for a column: the 1st and
// 99th percentiles widened by 1.5× their spread. A constant column yields
// equal bounds and capping becomes a no-op.
func Thresholds(values []float64) (low, high float64) {
	p1 := quantile(values, 0.01)
	p99 := quantile(values, 0.99)
	iqr := p99 - p1
	low = p1 - iqrMultiplier*iqr
	high = p99 + iqrMultiplier*iqr
	return low, high
}

// Cap clamps every value in the column to the [low, high] threshold band,
// in place. Length and order are unchanged, and a second application is a
// no-op since capped values never move the percentile bounds outward.
func Cap(values []float64) {
	low, high := Thresholds(values)
	for i, v := range values {
		switch {
		case v < low:
			values[i] = low
		case v > high:
			values[i] = high
		}
	}
}

// CapColumns applies outlier capping to every non-identifier column.
// Identifier columns are never capped even when numerically typed.
func CapColumns(columns []model.NumericColumn) {
	for _, col := range columns {
		if col.Identifier() {
			continue
		}
		Cap(col.Values)
	}
}
