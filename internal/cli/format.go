package cli

import (
	"fmt"
	"strings"

	"github.com/amctague/lift/internal/model"
)

// FormatItemset renders a frequent itemset as a descriptive line.
func FormatItemset(s model.Itemset) string {
	return fmt.Sprintf("itemset: %s, support: %.3f", formatSet(s.Items), s.Support)
}

// FormatRule renders an association rule as a descriptive line.
func FormatRule(r model.Rule) string {
	return fmt.Sprintf("Rule: %s => %s, support: %.3f, confidence: %.3f",
		formatSet(r.Antecedents), formatSet(r.Consequents), r.Support, r.Confidence)
}

// FormatRecommendation renders one ranked recommendation. The name is
// resolved by the caller; an empty name renders as unknown, since the engine
// itself only deals in identifiers.
func FormatRecommendation(rank int, rec model.Recommendation, name string) string {
	if name == "" {
		name = SubtleStyle.Render("(unknown product)")
	}
	return fmt.Sprintf("%2d. %-12s %-40s confidence: %.3f", rank, rec.StockCode, name, rec.Confidence)
}

func formatSet(items []string) string {
	return "{" + strings.Join(items, ", ") + "}"
}
