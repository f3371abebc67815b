package domain

import "time"

type AppStatus string

const (
	AppStatusActive   AppStatus = "active"
	AppStatusPaused   AppStatus = "paused"
	AppStatusArchived AppStatus = "archived"
)

// App is a tracked App Store listing owned by a workspace.
type App struct {
	ID                  int64      `db:"id"`
	WorkspaceID         int64      `db:"workspace_id"`
	ExternalID          string     `db:"external_id"` // App Store catalog id
	Name                string     `db:"name"`
	Country             string     `db:"country"`
	Status              AppStatus  `db:"status"`
	ConsecutiveFailures int        `db:"consecutive_failures"`
	NextRetryAt         *time.Time `db:"next_retry_at"`
	LastSyncedAt        *time.Time `db:"last_synced_at"`
	LastFailureReason   *string    `db:"last_failure_reason"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// Workspace is the billing and isolation boundary that owns apps.
// Read-only input to the sync pipeline.
type Workspace struct {
	ID                int64      `db:"id"`
	Name              string     `db:"name"`
	Plan              string     `db:"plan"`
	MaxReviewsPerSync int        `db:"max_reviews_per_sync"`
	MaxSyncsPerMonth  int        `db:"max_syncs_per_month"`
	DeletedAt         *time.Time `db:"deleted_at"`
}

func (w *Workspace) Deleted() bool {
	return w.DeletedAt != nil
}

// SyncState is the mutable portion of App owned by the orchestrator.
type SyncState struct {
	ConsecutiveFailures int
	NextRetryAt         *time.Time
	LastFailureReason   *string
	LastSyncedAt        *time.Time
}
