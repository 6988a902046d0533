package mining

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/model"
)

// Derive generates association rules from frequent itemsets. For every
// itemset of size two or more, each non-empty proper subset becomes a rule
// antecedent with the remainder as consequent; the rule carries the itemset's
// support and the confidence support(itemset)/support(antecedent). Rules are
// kept when the selected metric meets minThreshold, and returned sorted by
// descending confidence (ties keep generation order).
//
// The itemset collection must be closed under subsets, which both miners
// guarantee for a single Mine call. Threshold bounds are the caller's
// responsibility and are not re-validated.
func Derive(itemsets []model.Itemset, metric Metric, minThreshold float64) (model.RuleSet, error) {
	if len(itemsets) == 0 {
		return nil, nil
	}

	support := make(map[string]float64, len(itemsets))
	for _, s := range itemsets {
		support[itemsetKey(s.Items)] = s.Support
	}

	var rules model.RuleSet
	for _, s := range itemsets {
		if len(s.Items) < 2 {
			continue
		}

		for mask := 1; mask < (1<<len(s.Items))-1; mask++ {
			var antecedents, consequents []string
			for i, item := range s.Items {
				if mask&(1<<i) != 0 {
					antecedents = append(antecedents, item)
				} else {
					consequents = append(consequents, item)
				}
			}

			anteSupport, ok := support[itemsetKey(antecedents)]
			if !ok || anteSupport == 0 {
				return nil, fmt.Errorf("%w: no support for antecedent %v", common.ErrIncompleteItemsets, antecedents)
			}

			confidence := s.Support / anteSupport
			value := s.Support
			if metric == MetricConfidence {
				value = confidence
			}
			if value < minThreshold {
				continue
			}

			rules = append(rules, model.Rule{
				Antecedents: antecedents,
				Consequents: consequents,
				Support:     s.Support,
				Confidence:  confidence,
			})
		}
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Confidence > rules[j].Confidence
	})

	return rules, nil
}

// itemsetKey builds a map key from sorted item names. Itemsets coming out of
// the miners are already sorted; subset enumeration preserves that order.
func itemsetKey(items []string) string {
	return strings.Join(items, "\x1f")
}
