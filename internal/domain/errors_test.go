package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "tagged error", err: Terminal(CodeUpstreamNotFound, "status 404"), want: CodeUpstreamNotFound},
		{name: "wrapped tagged error", err: fmt.Errorf("fetch page 2: %w", RateLimited(time.Minute)), want: CodeRateLimited},
		{name: "context canceled", err: context.Canceled, want: CodeCancelled},
		{name: "wrapped context canceled", err: fmt.Errorf("fetch: %w", context.Canceled), want: CodeCancelled},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: CodeTimeout},
		{name: "untagged error", err: errors.New("boom"), want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Retryable(CodeUpstreamError, nil, "status 503")))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", Retryable(CodeTimeout, nil, "timed out"))))
	assert.False(t, IsRetryable(Terminal(CodeAppPaused, "paused")))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestRetryAfterHint(t *testing.T) {
	assert.Equal(t, 90*time.Second, RetryAfterHint(RateLimited(90*time.Second)))
	assert.Equal(t, 10*time.Minute, RetryAfterHint(Cooldown(10*time.Minute)))
	assert.Zero(t, RetryAfterHint(errors.New("boom")))
}

func TestSyncError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Retryable(CodePersistence, cause, "insert reviews")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "PERSISTENCE_ERROR")
	assert.Contains(t, err.Error(), "connection reset")
}
