package extract

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Vibraneum/VedStack/internal/llm"
	"github.com/Vibraneum/VedStack/internal/nutrition"
)

// DelegatedExtractor forwards the text (and optional meal photo) to an
// LLM and parses the structured breakdown it returns. Any failure —
// timeout, API error, malformed JSON, empty result — degrades to the
// estimate item instead of propagating, so the pipeline never stalls
// on the assistant.
type DelegatedExtractor struct {
	client   llm.Client
	timeout  time.Duration
	estimate nutrition.Entry
}

func NewDelegatedExtractor(client llm.Client, timeout time.Duration, estimate nutrition.Entry) *DelegatedExtractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DelegatedExtractor{client: client, timeout: timeout, estimate: estimate}
}

func (e *DelegatedExtractor) Extract(ctx context.Context, text string, imageURL string) []nutrition.FoodItem {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	foods, err := llm.ParseFoodBreakdown(ctx, e.client, text, imageURL)
	if err != nil {
		log.Printf("⚠️  LLM food breakdown failed (%v), using estimate", err)
		return []nutrition.FoodItem{estimateItem(text, e.estimate)}
	}
	if len(foods) == 0 {
		log.Printf("⚠️  LLM returned no foods, using estimate")
		return []nutrition.FoodItem{estimateItem(text, e.estimate)}
	}

	items := make([]nutrition.FoodItem, 0, len(foods))
	for _, f := range foods {
		qty := f.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, nutrition.FoodItem{
			Name:     strings.ToLower(strings.TrimSpace(f.Name)),
			Quantity: qty,
			PerUnit: &nutrition.Entry{
				Calories: f.Calories,
				Protein:  f.Protein,
				Carbs:    f.Carbs,
				Fat:      f.Fat,
			},
		})
	}
	return items
}
