package mining

import (
	"context"
	"sort"

	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/model"
)

// FPGrowth mines frequent itemsets without candidate generation, by
// compressing transactions into an FP-tree and recursively mining
// conditional trees. Produces exactly the same itemsets as Apriori for the
// same matrix and threshold.
type FPGrowth struct{}

// NewFPGrowth creates an FP-Growth miner.
func NewFPGrowth() *FPGrowth {
	return &FPGrowth{}
}

type fpNode struct {
	parent   *fpNode
	link     *fpNode // next node carrying the same item
	children map[int]*fpNode
	item     int
	count    int
}

type fpTree struct {
	root    *fpNode
	heads   map[int]*fpNode
	tails   map[int]*fpNode
	support map[int]int
}

// Mine returns every itemset whose support meets minSupport. An empty matrix
// cannot be mined and fails with ErrEmptyMatrix.
func (f *FPGrowth) Mine(ctx context.Context, matrix *model.TransactionMatrix, minSupport float64) ([]model.Itemset, error) {
	if matrix == nil || matrix.Empty() {
		return nil, common.ErrEmptyMatrix
	}

	total := float64(matrix.Rows())
	meets := func(count int) bool {
		return float64(count)/total >= minSupport
	}

	counts := make(map[int]int)
	transactions := make([][]int, 0, matrix.Rows())
	for i := 0; i < matrix.Rows(); i++ {
		row := matrix.RowItems(i)
		transactions = append(transactions, row)
		for _, j := range row {
			counts[j]++
		}
	}

	// Transactions are inserted with items ordered by descending support
	// (ties by ascending column index) so shared prefixes compress well.
	rank := frequencyRank(counts)

	tree := newFPTree()
	for _, row := range transactions {
		filtered := make([]int, 0, len(row))
		for _, j := range row {
			if meets(counts[j]) {
				filtered = append(filtered, j)
			}
		}
		sort.Slice(filtered, func(a, b int) bool {
			return rank[filtered[a]] < rank[filtered[b]]
		})
		tree.insert(filtered, 1)
	}

	var found []candidate
	if err := mineTree(ctx, tree, nil, meets, &found); err != nil {
		return nil, err
	}

	return finalize(matrix, found), nil
}

func frequencyRank(counts map[int]int) map[int]int {
	items := make([]int, 0, len(counts))
	for j := range counts {
		items = append(items, j)
	}
	sort.Slice(items, func(a, b int) bool {
		if counts[items[a]] != counts[items[b]] {
			return counts[items[a]] > counts[items[b]]
		}
		return items[a] < items[b]
	})
	rank := make(map[int]int, len(items))
	for i, j := range items {
		rank[j] = i
	}
	return rank
}

func newFPTree() *fpTree {
	return &fpTree{
		root:    &fpNode{item: -1, children: make(map[int]*fpNode)},
		heads:   make(map[int]*fpNode),
		tails:   make(map[int]*fpNode),
		support: make(map[int]int),
	}
}

func (t *fpTree) insert(items []int, count int) {
	node := t.root
	for _, item := range items {
		child, ok := node.children[item]
		if !ok {
			child = &fpNode{parent: node, item: item, children: make(map[int]*fpNode)}
			node.children[item] = child
			if t.heads[item] == nil {
				t.heads[item] = child
			} else {
				t.tails[item].link = child
			}
			t.tails[item] = child
		}
		child.count += count
		t.support[item] += count
		node = child
	}
}

// mineTree emits suffix∪{item} for every frequent item in the tree, then
// recurses into the item's conditional tree.
func mineTree(ctx context.Context, tree *fpTree, suffix []int, meets func(int) bool, found *[]candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	items := make([]int, 0, len(tree.support))
	for item := range tree.support {
		items = append(items, item)
	}
	sort.Ints(items)

	for _, item := range items {
		count := tree.support[item]
		if !meets(count) {
			continue
		}

		itemset := make([]int, 0, len(suffix)+1)
		itemset = append(itemset, suffix...)
		itemset = append(itemset, item)
		sort.Ints(itemset)
		*found = append(*found, candidate{items: itemset, count: count})

		conditional := newFPTree()
		for node := tree.heads[item]; node != nil; node = node.link {
			var path []int
			for p := node.parent; p != nil && p.item >= 0; p = p.parent {
				path = append(path, p.item)
			}
			if len(path) == 0 {
				continue
			}
			// path was collected leaf-to-root; restore insertion order.
			for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
				path[l], path[r] = path[r], path[l]
			}
			conditional.insert(path, node.count)
		}

		if len(conditional.support) > 0 {
			if err := mineTree(ctx, conditional, itemset, meets, found); err != nil {
				return err
			}
		}
	}

	return nil
}
