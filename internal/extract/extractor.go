package extract

import (
	"context"
	"strings"

	"github.com/Vibraneum/VedStack/internal/nutrition"
)

// Extractor turns raw utterance text into food items. Implementations
// never fail: when nothing can be recognized they fall back to a single
// estimate item carrying placeholder macros, so a food-positive
// utterance always produces at least one item.
type Extractor interface {
	Extract(ctx context.Context, text string, imageURL string) []nutrition.FoodItem
}

const estimateNameLimit = 30

// DefaultEstimateProfile is the placeholder per-serving macro profile
// applied when no known food is recognized.
func DefaultEstimateProfile() nutrition.Entry {
	return nutrition.Entry{Calories: 400, Protein: 20, Carbs: 40, Fat: 15}
}

func estimateItem(text string, profile nutrition.Entry) nutrition.FoodItem {
	name := strings.TrimSpace(text)
	if runes := []rune(name); len(runes) > estimateNameLimit {
		name = string(runes[:estimateNameLimit])
	}
	per := profile
	return nutrition.FoodItem{
		Name:     name,
		Quantity: 1,
		Estimate: true,
		PerUnit:  &per,
	}
}
