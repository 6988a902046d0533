package mining

import (
	"context"

	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/model"
)

// Apriori mines frequent itemsets level-wise: frequent k-itemsets are joined
// into (k+1)-candidates, candidates with an infrequent subset are pruned, and
// survivors are counted against the transaction rows.
type Apriori struct{}

// NewApriori creates an Apriori miner.
func NewApriori() *Apriori {
	return &Apriori{}
}

// Mine returns every itemset whose support meets minSupport. An empty matrix
// cannot be mined and fails with ErrEmptyMatrix.
func (a *Apriori) Mine(ctx context.Context, matrix *model.TransactionMatrix, minSupport float64) ([]model.Itemset, error) {
	if matrix == nil || matrix.Empty() {
		return nil, common.ErrEmptyMatrix
	}

	total := float64(matrix.Rows())
	rows := make([][]int, matrix.Rows())
	counts := make([]int, matrix.Columns())
	for i := range rows {
		rows[i] = matrix.RowItems(i)
		for _, j := range rows[i] {
			counts[j]++
		}
	}

	var found []candidate
	var current []candidate
	for j, count := range counts {
		if float64(count)/total >= minSupport {
			current = append(current, candidate{items: []int{j}, count: count})
		}
	}
	found = append(found, current...)

	for len(current) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frequent := make(map[string]struct{}, len(current))
		for _, c := range current {
			frequent[indexKey(c.items)] = struct{}{}
		}

		var next []candidate
		for _, items := range joinCandidates(current) {
			if !subsetsFrequent(items, frequent) {
				continue
			}
			count := 0
			for _, row := range rows {
				if containsAll(row, items) {
					count++
				}
			}
			if float64(count)/total >= minSupport {
				next = append(next, candidate{items: items, count: count})
			}
		}

		found = append(found, next...)
		current = next
	}

	return finalize(matrix, found), nil
}

// joinCandidates generates (k+1)-candidates from frequent k-itemsets that
// share their first k-1 items. The input is kept in lexicographic index
// order, so joining itemset i with any later itemset j sharing its prefix
// yields sorted candidates in sorted order.
func joinCandidates(current []candidate) [][]int {
	var out [][]int
	for i := 0; i < len(current); i++ {
		for j := i + 1; j < len(current); j++ {
			a, b := current[i].items, current[j].items
			if !samePrefix(a, b) {
				break
			}
			joined := make([]int, len(a)+1)
			copy(joined, a)
			joined[len(a)] = b[len(b)-1]
			out = append(out, joined)
		}
	}
	return out
}

func samePrefix(a, b []int) bool {
	for k := 0; k < len(a)-1; k++ {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}

// subsetsFrequent applies the Apriori property: every k-subset of a
// (k+1)-candidate must itself be frequent.
func subsetsFrequent(items []int, frequent map[string]struct{}) bool {
	if len(items) <= 2 {
		return true // both 1-subsets are frequent by construction
	}
	subset := make([]int, 0, len(items)-1)
	for drop := range items {
		subset = subset[:0]
		for i, it := range items {
			if i != drop {
				subset = append(subset, it)
			}
		}
		if _, ok := frequent[indexKey(subset)]; !ok {
			return false
		}
	}
	return true
}
