package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewsync/internal/domain"
)

func TestRunRecord_Lifecycle(t *testing.T) {
	now := time.Now()
	rec := newRunRecord(1, 10, domain.RunReasonManual, now)

	require.NotEmpty(t, rec.run.ID)
	assert.Equal(t, domain.RunStatusPending, rec.run.Status)
	assert.Equal(t, now, rec.run.RequestedAt)

	started := now.Add(time.Second)
	rec.start(started)
	assert.Equal(t, domain.RunStatusProcessing, rec.run.Status)
	require.NotNil(t, rec.run.StartedAt)

	finished := started.Add(2 * time.Second)
	rec.succeed(finished)
	assert.Equal(t, domain.RunStatusSucceeded, rec.run.Status)
	require.NotNil(t, rec.run.FinishedAt)
	assert.Equal(t, int64(2000), rec.run.DurationMs)
}

func TestRunRecord_FailSetsErrorFields(t *testing.T) {
	rec := newRunRecord(1, 10, domain.RunReasonScheduled, time.Now())
	rec.start(time.Now())
	rec.fail(time.Now(), domain.CodeUpstreamError, "status 502")

	assert.Equal(t, domain.RunStatusFailed, rec.run.Status)
	require.NotNil(t, rec.run.ErrorCode)
	assert.Equal(t, string(domain.CodeUpstreamError), *rec.run.ErrorCode)
	require.NotNil(t, rec.run.ErrorMessage)
	assert.Equal(t, "status 502", *rec.run.ErrorMessage)
}

func TestRunRecord_CancelKeepsMessageEmpty(t *testing.T) {
	rec := newRunRecord(1, 10, domain.RunReasonManual, time.Now())
	rec.start(time.Now())
	rec.cancel(time.Now())

	assert.Equal(t, domain.RunStatusCancelled, rec.run.Status)
	require.NotNil(t, rec.run.ErrorCode)
	assert.Equal(t, string(domain.CodeCancelled), *rec.run.ErrorCode)
	assert.Nil(t, rec.run.ErrorMessage)
}

func TestRunRecord_IllegalTransitionPanics(t *testing.T) {
	rec := newRunRecord(1, 10, domain.RunReasonManual, time.Now())

	// succeed without start skips the processing state
	assert.Panics(t, func() { rec.succeed(time.Now()) })

	rec.start(time.Now())
	rec.succeed(time.Now())

	// terminal states accept no further transitions
	assert.Panics(t, func() { rec.fail(time.Now(), domain.CodeInternal, "late failure") })
	assert.Panics(t, func() { rec.cancel(time.Now()) })
}
