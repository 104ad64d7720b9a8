package nutrition

import "math"

// Resolve sums quantity-weighted macros over the given items.
// Table items use the table's per-serving entry; estimate items use
// their embedded PerUnit entry. Unknown items with no embedded entry
// contribute nothing.
//
// Rounding happens once over the accumulated floats, never per item:
// calories to the nearest integer, the gram fields to one decimal.
func (t *Table) Resolve(items []FoodItem) Totals {
	var total Totals

	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		entry, ok := t.entries[item.Name]
		if !ok {
			if item.PerUnit == nil {
				continue
			}
			entry = *item.PerUnit
		}

		total.Calories += entry.Calories * float64(qty)
		total.Protein += entry.Protein * float64(qty)
		total.Carbs += entry.Carbs * float64(qty)
		total.Fat += entry.Fat * float64(qty)
	}

	total.Calories = math.Round(total.Calories)
	total.Protein = round1(total.Protein)
	total.Carbs = round1(total.Carbs)
	total.Fat = round1(total.Fat)

	return total
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
