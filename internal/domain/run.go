package domain

import "time"

type RunStatus string

const (
	RunStatusPending    RunStatus = "pending"
	RunStatusProcessing RunStatus = "processing"
	RunStatusSucceeded  RunStatus = "succeeded"
	RunStatusFailed     RunStatus = "failed"
	RunStatusCancelled  RunStatus = "cancelled"
)

// Terminal reports whether the status admits no further transition.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed, RunStatusCancelled:
		return true
	}
	return false
}

type RunReason string

const (
	RunReasonManual    RunReason = "manual"
	RunReasonScheduled RunReason = "scheduled"
)

// IngestionRun is the audit record for one sync attempt. Append-only
// except for the single terminal status transition.
type IngestionRun struct {
	ID               string     `db:"id"`
	AppID            int64      `db:"app_id"`
	WorkspaceID      int64      `db:"workspace_id"`
	Reason           RunReason  `db:"reason"`
	Status           RunStatus  `db:"status"`
	RequestedAt      time.Time  `db:"requested_at"`
	StartedAt        *time.Time `db:"started_at"`
	FinishedAt       *time.Time `db:"finished_at"`
	DurationMs       int64      `db:"duration_ms"`
	ReviewsFetched   int        `db:"reviews_fetched"`
	ReviewsInserted  int        `db:"reviews_inserted"`
	DuplicateCount   int        `db:"duplicate_count"`
	ReviewsSkipped   int        `db:"reviews_skipped"`
	PagesFetched     int        `db:"pages_fetched"`
	SourcesProcessed []string   `db:"-"`
	ErrorCode        *string    `db:"error_code"`
	ErrorMessage     *string    `db:"error_message"`
	SnapshotID       *string    `db:"snapshot_id"`
}

// SyncResult is the structured result returned to the run's caller. The
// caller always receives one of these, never a raw error from the pipeline.
type SyncResult struct {
	Success         bool
	RunID           string
	SnapshotID      *string
	ReviewsFetched  int
	ReviewsInserted int
	DuplicateCount  int
	ReviewsSkipped  int
	Duration        time.Duration
	ErrorCode       string
	ErrorMessage    string
}
