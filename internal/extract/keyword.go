package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/Vibraneum/VedStack/internal/nutrition"
)

// KeywordExtractor scans the text for canonical names from the
// nutrition table. Works fully offline; this is the default strategy.
type KeywordExtractor struct {
	table    *nutrition.Table
	estimate nutrition.Entry
}

func NewKeywordExtractor(table *nutrition.Table, estimate nutrition.Entry) *KeywordExtractor {
	return &KeywordExtractor{table: table, estimate: estimate}
}

// Pattern: number + food (e.g. "3 rotis", "two eggs")
var quantityPattern = regexp.MustCompile(`(\d+|one|two|three|four|five|six)\s+(\w+)`)

var wordToNum = map[string]int{
	"one": 1, "two": 2, "three": 3,
	"four": 4, "five": 5, "six": 6,
}

func (e *KeywordExtractor) Extract(ctx context.Context, text string, imageURL string) []nutrition.FoodItem {
	lower := strings.ToLower(text)

	var items []nutrition.FoodItem
	captured := make(map[string]bool)

	// Pass 1: quantity-prefixed mentions. A single trailing "s" is
	// stripped before the table lookup, so "rotis" matches "roti".
	for _, m := range quantityPattern.FindAllStringSubmatch(lower, -1) {
		qty, ok := wordToNum[m[1]]
		if !ok {
			qty, _ = strconv.Atoi(m[1])
		}
		if qty < 1 {
			qty = 1
		}

		name := strings.TrimSuffix(m[2], "s")
		if _, known := e.table.Lookup(name); !known || captured[name] {
			continue
		}

		items = append(items, nutrition.FoodItem{Name: name, Quantity: qty})
		captured[name] = true
	}

	// Pass 2: bare mentions default to one serving. Names already
	// captured with a quantity are not added again.
	for _, name := range e.table.Names() {
		if captured[name] || !strings.Contains(lower, name) {
			continue
		}
		items = append(items, nutrition.FoodItem{Name: name, Quantity: 1})
		captured[name] = true
	}

	if len(items) == 0 {
		items = append(items, estimateItem(text, e.estimate))
	}

	return items
}
