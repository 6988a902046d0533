// Package recommend matches a basket of selected products against
// association-rule antecedents and produces a ranked, deduplicated
// recommendation list.
package recommend

import (
	"sort"

	"github.com/amctague/lift/internal/model"
)

// TiePolicy decides which confidence wins when several rules propose the
// same item.
type TiePolicy int

const (
	// FirstSeen keeps the confidence of the first rule in scan order that
	// proposed the item. With a rule set pre-sorted by descending
	// confidence (the mining adapter's default ordering) this is
	// equivalent to keeping the highest confidence.
	FirstSeen TiePolicy = iota
	// HighestConfidence keeps the maximum confidence across all proposing
	// rules, regardless of rule-set ordering.
	HighestConfidence
)

// Engine computes recommendations from a rule set. It holds no state across
// calls; every query is a pure function of its arguments.
type Engine struct {
	ties TiePolicy
}

// NewEngine creates an engine with the given tie policy.
func NewEngine(ties TiePolicy) *Engine {
	return &Engine{ties: ties}
}

// Recommend returns up to limit items proposed by rules whose antecedent is
// fully contained in inputs, ranked by descending confidence. Equal
// confidences keep first-proposed order. A non-positive limit, an empty rule
// set, or an input matching no rule all yield an empty result rather than an
// error.
func (e *Engine) Recommend(inputs []string, limit int, rules model.RuleSet) []model.Recommendation {
	if limit <= 0 || len(rules) == 0 {
		return nil
	}

	basket := make(map[string]struct{}, len(inputs))
	for _, item := range inputs {
		basket[item] = struct{}{}
	}

	confidence := make(map[string]float64)
	var order []string

	for i := range rules {
		rule := &rules[i]
		if !rule.Matches(basket) {
			continue
		}
		for _, item := range rule.Consequents {
			best, seen := confidence[item]
			if !seen {
				confidence[item] = rule.Confidence
				order = append(order, item)
				continue
			}
			if e.ties == HighestConfidence && rule.Confidence > best {
				confidence[item] = rule.Confidence
			}
		}
	}

	recommendations := make([]model.Recommendation, 0, len(order))
	for _, item := range order {
		recommendations = append(recommendations, model.Recommendation{
			StockCode:  item,
			Confidence: confidence[item],
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Confidence > recommendations[j].Confidence
	})

	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations
}
