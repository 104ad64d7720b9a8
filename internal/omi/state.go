package omi

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StateStore remembers which memory ids were already processed, so a
// worker restart does not log the same meals twice.
type StateStore struct {
	db *pgxpool.Pool
}

func NewStateStore(db *pgxpool.Pool) *StateStore {
	return &StateStore{db: db}
}

func (s *StateStore) Seen(ctx context.Context, memoryID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM omi_synced WHERE memory_id = $1)`,
		memoryID,
	).Scan(&exists)
	return exists, err
}

func (s *StateStore) MarkSeen(ctx context.Context, memoryID string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO omi_synced (memory_id) VALUES ($1) ON CONFLICT DO NOTHING`,
		memoryID,
	)
	return err
}
