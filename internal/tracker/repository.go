package tracker

import (
	"context"
	"time"
)

// Repository is the sink the pipeline writes accepted meals to.
// Persist failures surface as hard errors so the caller can retry the
// utterance; TodayTotal failures degrade to 0.
type Repository interface {
	Persist(ctx context.Context, entry *LogEntry) (string, error)
	TodayTotal(ctx context.Context, userID string, day time.Time) (float64, error)
	DailySummary(ctx context.Context, userID string, day time.Time) (*DailySummary, error)
}
