package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"reviewsync/internal/domain"
)

type RunStore struct {
	db *sqlx.DB
}

func NewRunStore(db *sqlx.DB) *RunStore {
	return &RunStore{db: db}
}

func (s *RunStore) Create(ctx context.Context, run *domain.IngestionRun) error {
	query := `
		INSERT INTO ingestion_runs (
			id, app_id, workspace_id, reason, status, requested_at
		) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := executor(ctx, s.db).ExecContext(ctx, query,
		run.ID,
		run.AppID,
		run.WorkspaceID,
		run.Reason,
		run.Status,
		run.RequestedAt,
	)
	return err
}

// Update persists the run's mutable fields. Callers only invoke it on a
// legal state transition, so it writes unconditionally.
func (s *RunStore) Update(ctx context.Context, run *domain.IngestionRun) error {
	query := `
		UPDATE ingestion_runs SET
			status = $2,
			started_at = $3,
			finished_at = $4,
			duration_ms = $5,
			reviews_fetched = $6,
			reviews_inserted = $7,
			duplicate_count = $8,
			reviews_skipped = $9,
			pages_fetched = $10,
			sources_processed = $11,
			error_code = $12,
			error_message = $13,
			snapshot_id = $14
		WHERE id = $1`

	_, err := executor(ctx, s.db).ExecContext(ctx, query,
		run.ID,
		run.Status,
		run.StartedAt,
		run.FinishedAt,
		run.DurationMs,
		run.ReviewsFetched,
		run.ReviewsInserted,
		run.DuplicateCount,
		run.ReviewsSkipped,
		run.PagesFetched,
		pq.Array(run.SourcesProcessed),
		run.ErrorCode,
		run.ErrorMessage,
		run.SnapshotID,
	)
	return err
}

func (s *RunStore) GetByID(ctx context.Context, id string) (*domain.IngestionRun, error) {
	var run domain.IngestionRun
	var sources pq.StringArray

	query := `
		SELECT id, app_id, workspace_id, reason, status, requested_at,
		       started_at, finished_at, duration_ms, reviews_fetched,
		       reviews_inserted, duplicate_count, reviews_skipped,
		       pages_fetched, sources_processed, error_code, error_message,
		       snapshot_id
		FROM ingestion_runs WHERE id = $1`

	row := s.db.QueryRowxContext(ctx, query, id)
	err := row.Scan(
		&run.ID, &run.AppID, &run.WorkspaceID, &run.Reason, &run.Status,
		&run.RequestedAt, &run.StartedAt, &run.FinishedAt, &run.DurationMs,
		&run.ReviewsFetched, &run.ReviewsInserted, &run.DuplicateCount,
		&run.ReviewsSkipped, &run.PagesFetched, &sources,
		&run.ErrorCode, &run.ErrorMessage, &run.SnapshotID,
	)
	if err != nil {
		return nil, err
	}
	run.SourcesProcessed = sources

	return &run, nil
}

// CountSucceededSince counts finished successful runs for quota checks.
// The billing period is the UTC calendar month, so callers pass its start.
func (s *RunStore) CountSucceededSince(ctx context.Context, workspaceID int64, since time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM ingestion_runs
		WHERE workspace_id = $1 AND status = $2 AND requested_at >= $3`

	err := s.db.GetContext(ctx, &count, query, workspaceID, domain.RunStatusSucceeded, since)
	return count, err
}
