package nutrition

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Entry holds per-serving macros for one canonical food name.
type Entry struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

// FoodItem is one food mention pulled out of an utterance.
// Estimate items carry their own PerUnit macros because they are
// not present in the table.
type FoodItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Estimate bool   `json:"estimate,omitempty"`
	PerUnit  *Entry `json:"per_unit,omitempty"`
}

// Totals is the accumulated macro sum for a logged meal.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

// Table maps canonical (lowercase, singular) food names to per-serving macros.
// Loaded once at startup, read-only afterwards.
type Table struct {
	entries map[string]Entry
	names   []string
}

func NewTable(entries map[string]Entry) *Table {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Table{entries: entries, names: names}
}

// LoadTable returns the built-in table, or the contents of the JSON
// file at path when one is given. The file maps canonical names to
// per-serving entries and fully replaces the defaults.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return NewTable(DefaultEntries()), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nutrition table: %w", err)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse nutrition table: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("nutrition table %s is empty", path)
	}

	return NewTable(entries), nil
}

// Lookup returns the per-serving entry for a canonical name.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Names returns all canonical names in sorted order.
func (t *Table) Names() []string {
	return t.names
}

// DefaultEntries is the built-in per-serving macro reference.
func DefaultEntries() map[string]Entry {
	return map[string]Entry{
		"roti":     {Calories: 71, Protein: 3, Carbs: 15, Fat: 0.4},
		"chapati":  {Calories: 71, Protein: 3, Carbs: 15, Fat: 0.4},
		"dal":      {Calories: 230, Protein: 18, Carbs: 40, Fat: 0.8},
		"rice":     {Calories: 205, Protein: 4.2, Carbs: 45, Fat: 0.4},
		"paneer":   {Calories: 265, Protein: 18, Carbs: 3.6, Fat: 20},
		"egg":      {Calories: 70, Protein: 6, Carbs: 0.6, Fat: 5},
		"upma":     {Calories: 200, Protein: 5, Carbs: 35, Fat: 5},
		"poha":     {Calories: 250, Protein: 6, Carbs: 50, Fat: 5},
		"biryani":  {Calories: 450, Protein: 20, Carbs: 60, Fat: 15},
		"shawarma": {Calories: 650, Protein: 45, Carbs: 52, Fat: 28},
		"idli":     {Calories: 39, Protein: 2, Carbs: 8, Fat: 0.3},
		"dosa":     {Calories: 133, Protein: 4, Carbs: 22, Fat: 3},
		"oats":     {Calories: 150, Protein: 5, Carbs: 27, Fat: 3},
		"banana":   {Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4},
		"milk":     {Calories: 150, Protein: 8, Carbs: 12, Fat: 8},
		"bread":    {Calories: 80, Protein: 3, Carbs: 15, Fat: 1},
		"chicken":  {Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
	}
}
