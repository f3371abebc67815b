package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"reviewsync/internal/domain"
)

// runRecord owns the lifecycle of one ingestion run. The orchestrator holds
// exactly one per invocation; an illegal transition is a bug in the
// orchestrator, not a domain failure, so it panics.
type runRecord struct {
	run *domain.IngestionRun
}

func newRunRecord(appID, workspaceID int64, reason domain.RunReason, now time.Time) *runRecord {
	return &runRecord{
		run: &domain.IngestionRun{
			ID:          uuid.NewString(),
			AppID:       appID,
			WorkspaceID: workspaceID,
			Reason:      reason,
			Status:      domain.RunStatusPending,
			RequestedAt: now,
		},
	}
}

func (r *runRecord) start(now time.Time) {
	r.transition(domain.RunStatusPending, domain.RunStatusProcessing)
	r.run.StartedAt = &now
}

func (r *runRecord) succeed(now time.Time) {
	r.transition(domain.RunStatusProcessing, domain.RunStatusSucceeded)
	r.finish(now)
}

func (r *runRecord) fail(now time.Time, code domain.ErrorCode, message string) {
	r.transition(domain.RunStatusProcessing, domain.RunStatusFailed)
	r.finish(now)

	c, m := string(code), message
	r.run.ErrorCode = &c
	r.run.ErrorMessage = &m
}

func (r *runRecord) cancel(now time.Time) {
	r.transition(domain.RunStatusProcessing, domain.RunStatusCancelled)
	r.finish(now)

	c := string(domain.CodeCancelled)
	r.run.ErrorCode = &c
}

func (r *runRecord) finish(now time.Time) {
	r.run.FinishedAt = &now
	if r.run.StartedAt != nil {
		r.run.DurationMs = now.Sub(*r.run.StartedAt).Milliseconds()
	}
}

func (r *runRecord) transition(from, to domain.RunStatus) {
	if r.run.Status != from {
		panic(fmt.Sprintf("illegal run transition %s -> %s for run %s", r.run.Status, to, r.run.ID))
	}
	r.run.Status = to
}
