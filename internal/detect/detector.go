package detect

import (
	"strings"

	"github.com/Vibraneum/VedStack/internal/nutrition"
)

// Detector answers one question: does this text mention food?
// The keyword set combines generic eating verbs and meal nouns with
// every canonical name from the nutrition table, so adding a food to
// the table automatically makes it detectable.
type Detector struct {
	keywords []string
}

func NewDetector(keywords []string, table *nutrition.Table) *Detector {
	combined := make([]string, 0, len(keywords)+len(table.Names()))
	for _, kw := range keywords {
		combined = append(combined, strings.ToLower(kw))
	}
	combined = append(combined, table.Names()...)
	return &Detector{keywords: combined}
}

// IsFoodMention does a lower-cased substring scan over the keyword set.
// Empty or whitespace-only text never matches.
func (d *Detector) IsFoodMention(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}

	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DefaultKeywords are the eating verbs and meal-time nouns checked in
// addition to the nutrition table's canonical names.
func DefaultKeywords() []string {
	return []string{
		"eating", "ate", "eaten", "having", "had", "consumed",
		"breakfast", "lunch", "dinner", "snack", "meal",
		"food", "hungry", "full", "cooked", "ordered", "restaurant",
		"calories", "protein", "carbs",
	}
}
