package llm

import (
	"context"
	"encoding/json"
	"errors"
)

type FoodBreakdown struct {
	Foods []BreakdownItem `json:"foods"`
}

type BreakdownItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

func ParseFoodBreakdown(
	ctx context.Context,
	client Client,
	text string,
	imageURL string,
) ([]BreakdownItem, error) {

	rawJSON, err := client.AnalyzeFood(ctx, text, imageURL)
	if err != nil {
		return nil, err
	}

	var parsed FoodBreakdown
	if err := json.Unmarshal([]byte(rawJSON), &parsed); err != nil {
		return nil, errors.New("invalid LLM JSON output")
	}

	return parsed.Foods, nil
}
