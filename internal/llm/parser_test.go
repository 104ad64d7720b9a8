package llm

import (
	"context"
	"errors"
	"testing"
)

type stubClient struct {
	output string
	err    error
}

func (s *stubClient) AnalyzeFood(ctx context.Context, text string, imageURL string) (string, error) {
	return s.output, s.err
}

func TestParseFoodBreakdown(t *testing.T) {
	client := &stubClient{output: `{
		"foods": [
			{"name": "dal", "quantity": 1, "calories": 230, "protein_g": 18, "carbs_g": 40, "fat_g": 0.8},
			{"name": "roti", "quantity": 2, "calories": 71, "protein_g": 3, "carbs_g": 15, "fat_g": 0.4}
		]
	}`}

	foods, err := ParseFoodBreakdown(context.Background(), client, "dal and 2 rotis", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(foods) != 2 {
		t.Fatalf("expected 2 foods, got %d", len(foods))
	}
	if foods[0].Name != "dal" || foods[0].Calories != 230 {
		t.Fatalf("unexpected first food: %+v", foods[0])
	}
	if foods[1].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", foods[1].Quantity)
	}
}

func TestParseFoodBreakdownInvalidJSON(t *testing.T) {
	client := &stubClient{output: "Sure! Here is the breakdown: {..."}

	_, err := ParseFoodBreakdown(context.Background(), client, "dal", "")
	if err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}

func TestParseFoodBreakdownClientError(t *testing.T) {
	client := &stubClient{err: errors.New("timeout")}

	_, err := ParseFoodBreakdown(context.Background(), client, "dal", "")
	if err == nil {
		t.Fatal("expected client error to propagate")
	}
}
