// Package mining derives frequent itemsets and association rules from a
// binary transaction matrix. The Miner interface is the boundary the rest of
// the application consumes; Apriori and FP-Growth are interchangeable
// implementations behind it.
package mining

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/model"
)

// Metric selects which rule measure a derivation threshold filters on.
type Metric string

// Supported rule metrics.
const (
	MetricSupport    Metric = "support"
	MetricConfidence Metric = "confidence"
)

// ParseMetric converts a user-supplied metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(s)) {
	case MetricSupport:
		return MetricSupport, nil
	case MetricConfidence:
		return MetricConfidence, nil
	default:
		return "", fmt.Errorf("%w: unknown metric %q", common.ErrInvalidConfig, s)
	}
}

// Miner extracts frequent itemsets from a transaction matrix. Implementations
// are pure: the same matrix and threshold always yield the same itemsets, and
// the input matrix is never mutated. Bounds on minSupport are the caller's
// responsibility; values are not re-validated here.
type Miner interface {
	Mine(ctx context.Context, matrix *model.TransactionMatrix, minSupport float64) ([]model.Itemset, error)
}

// NewMiner returns the miner for the named algorithm.
func NewMiner(algorithm string) (Miner, error) {
	switch strings.ToLower(algorithm) {
	case "apriori":
		return NewApriori(), nil
	case "fpgrowth", "fp-growth":
		return NewFPGrowth(), nil
	default:
		return nil, fmt.Errorf("%w: unknown mining algorithm %q", common.ErrInvalidConfig, algorithm)
	}
}

// candidate is a frequent itemset under construction, held as matrix column
// indices plus its transaction count.
type candidate struct {
	items []int
	count int
}

// indexKey builds a map key from a sorted index slice.
func indexKey(items []int) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(it))
	}
	return b.String()
}

// finalize converts index-based candidates into the canonical itemset form:
// item names sorted within each set, sets ordered by size then name. Both
// miners produce identical output through this path.
func finalize(matrix *model.TransactionMatrix, found []candidate) []model.Itemset {
	total := float64(matrix.Rows())
	names := matrix.Items()

	itemsets := make([]model.Itemset, 0, len(found))
	for _, c := range found {
		items := make([]string, len(c.items))
		for i, idx := range c.items {
			items[i] = names[idx]
		}
		sort.Strings(items)
		itemsets = append(itemsets, model.Itemset{
			Items:   items,
			Support: float64(c.count) / total,
		})
	}

	sort.Slice(itemsets, func(i, j int) bool {
		a, b := itemsets[i].Items, itemsets[j].Items
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})

	return itemsets
}

// containsAll reports whether the sorted index slice row contains every
// element of the sorted index slice items.
func containsAll(row, items []int) bool {
	i := 0
	for _, want := range items {
		for i < len(row) && row[i] < want {
			i++
		}
		if i >= len(row) || row[i] != want {
			return false
		}
		i++
	}
	return true
}
