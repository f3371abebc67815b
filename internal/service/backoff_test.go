package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewsync/internal/domain"
)

func TestBackoffDelay(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{name: "first failure", failures: 1, want: 5 * time.Minute},
		{name: "second failure", failures: 2, want: 15 * time.Minute},
		{name: "third failure", failures: 3, want: time.Hour},
		{name: "fourth failure", failures: 4, want: 6 * time.Hour},
		{name: "fifth failure", failures: 5, want: 24 * time.Hour},
		{name: "beyond table caps at last entry", failures: 12, want: 24 * time.Hour},
		{name: "zero treated as first", failures: 0, want: 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backoffDelay(tt.failures))
		})
	}
}

func TestFailureState(t *testing.T) {
	now := time.Now()
	app := &domain.App{ID: 1, ConsecutiveFailures: 2}

	state := failureState(app, "status 500", now)

	assert.Equal(t, 3, state.ConsecutiveFailures)
	require.NotNil(t, state.NextRetryAt)
	assert.Equal(t, now.Add(time.Hour), *state.NextRetryAt)
	require.NotNil(t, state.LastFailureReason)
	assert.Equal(t, "status 500", *state.LastFailureReason)
	assert.Nil(t, state.LastSyncedAt)
}

func TestSuccessState(t *testing.T) {
	now := time.Now()

	state := successState(now)

	assert.Zero(t, state.ConsecutiveFailures)
	assert.Nil(t, state.NextRetryAt)
	assert.Nil(t, state.LastFailureReason)
	require.NotNil(t, state.LastSyncedAt)
	assert.Equal(t, now, *state.LastSyncedAt)
}
