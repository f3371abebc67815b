package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"reviewsync/internal/domain"
)

type AppStore struct {
	db *sqlx.DB
}

func NewAppStore(db *sqlx.DB) *AppStore {
	return &AppStore{db: db}
}

func (s *AppStore) GetByID(ctx context.Context, id int64) (*domain.App, error) {
	var app domain.App
	query := `
		SELECT id, workspace_id, external_id, name, country, status,
		       consecutive_failures, next_retry_at, last_synced_at,
		       last_failure_reason, created_at, updated_at
		FROM apps WHERE id = $1`

	err := s.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Terminal(domain.CodeAppNotFound, "app %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateSyncState writes the orchestrator-owned portion of the app row.
func (s *AppStore) UpdateSyncState(ctx context.Context, appID int64, state domain.SyncState) error {
	query := `
		UPDATE apps SET
			consecutive_failures = $2,
			next_retry_at = $3,
			last_failure_reason = $4,
			last_synced_at = COALESCE($5, last_synced_at),
			updated_at = NOW()
		WHERE id = $1`

	_, err := executor(ctx, s.db).ExecContext(ctx, query,
		appID,
		state.ConsecutiveFailures,
		state.NextRetryAt,
		state.LastFailureReason,
		state.LastSyncedAt,
	)
	return err
}

// ListDue returns active apps whose cooldown window has elapsed, oldest
// sync first, for the scheduler's next cycle.
func (s *AppStore) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.App, error) {
	query := `
		SELECT id, workspace_id, external_id, name, country, status,
		       consecutive_failures, next_retry_at, last_synced_at,
		       last_failure_reason, created_at, updated_at
		FROM apps
		WHERE status = $1
		  AND (next_retry_at IS NULL OR next_retry_at <= $2)
		ORDER BY last_synced_at ASC NULLS FIRST
		LIMIT $3`

	var apps []domain.App
	err := s.db.SelectContext(ctx, &apps, query, domain.AppStatusActive, now, limit)
	return apps, err
}

type WorkspaceStore struct {
	db *sqlx.DB
}

func NewWorkspaceStore(db *sqlx.DB) *WorkspaceStore {
	return &WorkspaceStore{db: db}
}

func (s *WorkspaceStore) GetByID(ctx context.Context, id int64) (*domain.Workspace, error) {
	var ws domain.Workspace
	query := `
		SELECT id, name, plan, max_reviews_per_sync, max_syncs_per_month, deleted_at
		FROM workspaces WHERE id = $1`

	err := s.db.GetContext(ctx, &ws, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Terminal(domain.CodeWorkspaceDeleted, "workspace %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}
