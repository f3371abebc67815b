package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"reviewsync/internal/aggregator"
	"reviewsync/internal/domain"
)

// TransactionManager scopes a group of store writes to one transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AppStore interface {
	GetByID(ctx context.Context, id int64) (*domain.App, error)
	UpdateSyncState(ctx context.Context, appID int64, state domain.SyncState) error
}

type WorkspaceStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Workspace, error)
}

type RunStore interface {
	Create(ctx context.Context, run *domain.IngestionRun) error
	Update(ctx context.Context, run *domain.IngestionRun) error
	CountSucceededSince(ctx context.Context, workspaceID int64, since time.Time) (int, error)
}

type ReviewWriter interface {
	BatchInsert(ctx context.Context, appID int64, reviews []domain.Review) (inserted, duplicates, skipped int, err error)
}

type SnapshotStore interface {
	Create(ctx context.Context, id string, appID int64, runID string) error
	HasPending(ctx context.Context, appID int64) (bool, error)
}

// SnapshotEnqueuer hands the finished run to the analysis worker.
// Fire-and-continue: its failure never fails the ingestion run.
type SnapshotEnqueuer interface {
	EnqueueSnapshot(ctx context.Context, appID int64, runID string) (string, error)
}

type ReviewAggregator interface {
	Fetch(ctx context.Context, externalID, country string, opts aggregator.Options) (*aggregator.Output, error)
}

type WorkspaceLimiter interface {
	Allow(workspaceID int64) bool
	RetryAfter() time.Duration
}

type MetricsRecorder interface {
	RecordRun(status string, duration time.Duration, inserted int)
	RecordUpstreamError(code string)
}
