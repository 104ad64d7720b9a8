package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository backs tests and local development.
type InMemoryRepository struct {
	mu      sync.Mutex
	entries []*LogEntry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Persist(ctx context.Context, entry *LogEntry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	stored := *entry
	r.entries = append(r.entries, &stored)
	return entry.ID, nil
}

func (r *InMemoryRepository) TodayTotal(ctx context.Context, userID string, day time.Time) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0.0
	for _, e := range r.entries {
		if e.UserID == userID && sameDay(e.LoggedAt, day) {
			total += e.Totals.Calories
		}
	}
	return total, nil
}

func (r *InMemoryRepository) DailySummary(ctx context.Context, userID string, day time.Time) (*DailySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := &DailySummary{}
	for _, e := range r.entries {
		if e.UserID == userID && sameDay(e.LoggedAt, day) {
			summary.Calories += e.Totals.Calories
			summary.Protein += e.Totals.Protein
			summary.Carbs += e.Totals.Carbs
			summary.Fat += e.Totals.Fat
			summary.Meals++
		}
	}
	return summary, nil
}

// Entries returns a snapshot of everything persisted so far.
func (r *InMemoryRepository) Entries() []*LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
