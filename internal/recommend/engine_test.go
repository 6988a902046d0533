package recommend

import (
	"testing"

	"github.com/amctague/lift/internal/model"
	"github.com/stretchr/testify/assert"
)

func rule(antecedents, consequents []string, confidence float64) model.Rule {
	return model.Rule{
		Antecedents: antecedents,
		Consequents: consequents,
		Support:     0.1,
		Confidence:  confidence,
	}
}

func TestEngine_Recommend(t *testing.T) {
	rules := model.RuleSet{
		rule([]string{"A"}, []string{"B"}, 0.8),
		rule([]string{"A"}, []string{"C"}, 0.5),
	}

	got := NewEngine(FirstSeen).Recommend([]string{"A"}, 2, rules)

	assert.Equal(t, []model.Recommendation{
		{StockCode: "B", Confidence: 0.8},
		{StockCode: "C", Confidence: 0.5},
	}, got)
}

func TestEngine_AntecedentSubset(t *testing.T) {
	rules := model.RuleSet{
		rule([]string{"A", "B"}, []string{"C"}, 0.9),
		rule([]string{"A", "D"}, []string{"E"}, 0.8),
	}

	// Only rules whose full antecedent is contained in the basket fire.
	got := NewEngine(FirstSeen).Recommend([]string{"A", "B"}, 5, rules)

	assert.Equal(t, []model.Recommendation{
		{StockCode: "C", Confidence: 0.9},
	}, got)
}

func TestEngine_TiePolicies(t *testing.T) {
	rules := model.RuleSet{
		rule([]string{"A"}, []string{"X"}, 0.6),
		rule([]string{"B"}, []string{"X"}, 0.9),
	}

	tests := []struct {
		name string
		ties TiePolicy
		want float64
	}{
		{name: "first seen wins", ties: FirstSeen, want: 0.6},
		{name: "highest confidence wins", ties: HighestConfidence, want: 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEngine(tt.ties).Recommend([]string{"A", "B"}, 5, rules)
			assert.Equal(t, []model.Recommendation{
				{StockCode: "X", Confidence: tt.want},
			}, got)
		})
	}
}

func TestEngine_DedupAndRanking(t *testing.T) {
	rules := model.RuleSet{
		rule([]string{"A"}, []string{"X", "Y"}, 0.7),
		rule([]string{"A"}, []string{"X"}, 0.9),
		rule([]string{"A"}, []string{"Z"}, 0.7),
	}

	got := NewEngine(FirstSeen).Recommend([]string{"A"}, 10, rules)

	// No duplicate items, confidences non-increasing, ties keep
	// first-seen order (X before Y before Z at 0.7).
	assert.Equal(t, []model.Recommendation{
		{StockCode: "X", Confidence: 0.7},
		{StockCode: "Y", Confidence: 0.7},
		{StockCode: "Z", Confidence: 0.7},
	}, got)

	seen := make(map[string]bool)
	for i, rec := range got {
		assert.False(t, seen[rec.StockCode])
		seen[rec.StockCode] = true
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Confidence, rec.Confidence)
		}
	}
}

func TestEngine_Limit(t *testing.T) {
	rules := model.RuleSet{
		rule([]string{"A"}, []string{"X"}, 0.9),
		rule([]string{"A"}, []string{"Y"}, 0.8),
		rule([]string{"A"}, []string{"Z"}, 0.7),
	}

	engine := NewEngine(FirstSeen)

	assert.Len(t, engine.Recommend([]string{"A"}, 2, rules), 2)
	assert.Empty(t, engine.Recommend([]string{"A"}, 0, rules))
	assert.Empty(t, engine.Recommend([]string{"A"}, -3, rules))
}

func TestEngine_EmptyInputs(t *testing.T) {
	rules := model.RuleSet{
		rule([]string{"A"}, []string{"X"}, 0.9),
	}

	engine := NewEngine(FirstSeen)

	// No rule has an empty antecedent, so an empty basket matches nothing.
	assert.Empty(t, engine.Recommend(nil, 5, rules))
	assert.Empty(t, engine.Recommend([]string{"A"}, 5, nil))
	assert.Empty(t, engine.Recommend([]string{"Q"}, 5, rules))
}
