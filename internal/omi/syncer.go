package omi

import (
	"context"
	"log"
	"time"

	"github.com/Vibraneum/VedStack/internal/tracker"
)

// MemorySource lets tests feed the syncer without the real API.
type MemorySource interface {
	RecentMemories(ctx context.Context, limit int) ([]Memory, error)
}

// SeenStore is the processed-id state the syncer consults.
type SeenStore interface {
	Seen(ctx context.Context, memoryID string) (bool, error)
	MarkSeen(ctx context.Context, memoryID string) error
}

// Syncer drains recent Omi memories through the food pipeline. Each
// memory id is its own dedup session, so the text-window suppression
// never fights the id-based state.
type Syncer struct {
	source  MemorySource
	state   SeenStore
	service *tracker.Service
	userID  string
}

func NewSyncer(source MemorySource, state SeenStore, service *tracker.Service, userID string) *Syncer {
	return &Syncer{source: source, state: state, service: service, userID: userID}
}

// SyncOnce fetches one batch and processes every unseen memory. A
// failure on one memory does not block the rest.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	memories, err := s.source.RecentMemories(ctx, 50)
	if err != nil {
		return err
	}

	for _, mem := range memories {
		seen, err := s.state.Seen(ctx, mem.ID)
		if err != nil {
			log.Printf("⚠️  Sync state check failed for %s: %v", mem.ID, err)
			continue
		}
		if seen {
			continue
		}

		result, err := s.service.HandleUtteranceFrom(
			ctx,
			"omi-memory-"+mem.ID,
			s.userID,
			mem.Transcript,
			tracker.SourceSync,
			time.Now(),
		)
		if err != nil {
			// Leave the memory unseen so the next pass retries it
			log.Printf("⚠️  Failed to process memory %s: %v", mem.ID, err)
			continue
		}

		log.Printf("[sync] memory %s -> %s", mem.ID, result.Status)

		if err := s.state.MarkSeen(ctx, mem.ID); err != nil {
			log.Printf("⚠️  Failed to mark memory %s: %v", mem.ID, err)
		}
	}

	return nil
}
