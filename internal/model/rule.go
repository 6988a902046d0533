package model

// Itemset is a frequent set of item identifiers with its support, the
// fraction of transactions containing every item in the set. Produced by
// mining; read-only afterwards.
type Itemset struct {
	Items   []string
	Support float64
}

// Rule is a single association rule. Antecedents and Consequents are both
// non-empty and disjoint. Immutable once produced by the mining boundary.
type Rule struct {
	Antecedents []string
	Consequents []string
	Support     float64
	Confidence  float64
}

// Matches reports whether every antecedent item is present in the basket.
// A rule with an empty antecedent matches any basket.
func (r *Rule) Matches(basket map[string]struct{}) bool {
	for _, item := range r.Antecedents {
		if _, ok := basket[item]; !ok {
			return false
		}
	}
	return true
}

// RuleSet is an ordered sequence of rules. The ordering is defined by the
// mining adapter; consumers must not assume any particular sort.
type RuleSet []Rule

// Recommendation pairs a recommended item identifier with the confidence of
// the rule that proposed it. Produced per query, never persisted.
type Recommendation struct {
	StockCode  string
	Confidence float64
}
