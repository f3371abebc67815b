package service

import (
	"time"

	"reviewsync/internal/domain"
)

// backoffTable escalates the cooldown window per consecutive failure.
// Counts beyond the table reuse the last entry.
var backoffTable = []time.Duration{
	5 * time.Minute,
	15 * time.Minute,
	time.Hour,
	6 * time.Hour,
	24 * time.Hour,
}

func backoffDelay(consecutiveFailures int) time.Duration {
	if consecutiveFailures < 1 {
		consecutiveFailures = 1
	}
	idx := consecutiveFailures - 1
	if idx >= len(backoffTable) {
		idx = len(backoffTable) - 1
	}
	return backoffTable[idx]
}

// failureState advances the per-app failure tracking after a failed run.
func failureState(app *domain.App, reason string, now time.Time) domain.SyncState {
	failures := app.ConsecutiveFailures + 1
	next := now.Add(backoffDelay(failures))

	return domain.SyncState{
		ConsecutiveFailures: failures,
		NextRetryAt:         &next,
		LastFailureReason:   &reason,
	}
}

// successState resets failure tracking and stamps the sync time.
func successState(now time.Time) domain.SyncState {
	return domain.SyncState{
		ConsecutiveFailures: 0,
		NextRetryAt:         nil,
		LastFailureReason:   nil,
		LastSyncedAt:        &now,
	}
}
