package llm

import (
	"context"
)

type Client interface {
	AnalyzeFood(ctx context.Context, text string, imageURL string) (string, error)
}
