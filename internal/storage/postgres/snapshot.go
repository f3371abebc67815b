package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type SnapshotStore struct {
	db *sqlx.DB
}

func NewSnapshotStore(db *sqlx.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Create records an enqueued snapshot so the analysis worker's progress
// is auditable alongside the run that requested it.
func (s *SnapshotStore) Create(ctx context.Context, id string, appID int64, runID string) error {
	query := `
		INSERT INTO snapshots (id, app_id, run_id, status, created_at)
		VALUES ($1, $2, $3, 'pending', $4)`

	_, err := executor(ctx, s.db).ExecContext(ctx, query, id, appID, runID, time.Now().UTC())
	return err
}

// HasPending reports whether the app already has an unprocessed snapshot.
// Advisory only: a race between two runs enqueueing is harmless.
func (s *SnapshotStore) HasPending(ctx context.Context, appID int64) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM snapshots
		WHERE app_id = $1 AND status IN ('pending', 'processing')`

	err := s.db.GetContext(ctx, &count, query, appID)
	return count > 0, err
}
