package service

import (
	"context"
	"time"

	"reviewsync/internal/domain"
)

// RunOptions parameterize one orchestration attempt.
type RunOptions struct {
	Reason      domain.RunReason
	BypassQuota bool
}

// checkEligibility runs the pre-flight checks in order, failing fast on the
// first violation. Purely advisory reads: no side effects, no network calls
// beyond the quota count.
func (s *SyncService) checkEligibility(ctx context.Context, app *domain.App, ws *domain.Workspace, opts RunOptions, now time.Time) error {
	switch app.Status {
	case domain.AppStatusArchived:
		return domain.Terminal(domain.CodeAppNotFound, "app %d is archived", app.ID)
	case domain.AppStatusPaused:
		return domain.Terminal(domain.CodeAppPaused, "app %d is paused", app.ID)
	}

	if ws.Deleted() {
		return domain.Terminal(domain.CodeWorkspaceDeleted, "workspace %d is deleted", ws.ID)
	}

	if app.NextRetryAt != nil && app.NextRetryAt.After(now) {
		return domain.Cooldown(app.NextRetryAt.Sub(now))
	}

	if !opts.BypassQuota && ws.MaxSyncsPerMonth > 0 {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		used, err := s.runs.CountSucceededSince(ctx, ws.ID, monthStart)
		if err != nil {
			return domain.Retryable(domain.CodePersistence, err, "count runs for quota")
		}
		if used+1 > ws.MaxSyncsPerMonth {
			return domain.Terminal(domain.CodeQuotaExceeded,
				"plan %s allows %d syncs per month, %d used", ws.Plan, ws.MaxSyncsPerMonth, used)
		}
	}

	if !s.limiter.Allow(ws.ID) {
		return domain.RateLimited(s.limiter.RetryAfter())
	}

	return nil
}
