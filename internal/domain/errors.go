package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrorCode is the closed set of failure classifications produced at the
// point of failure. The orchestrator never inspects error strings.
type ErrorCode string

const (
	CodeAppNotFound      ErrorCode = "APP_NOT_FOUND"
	CodeAppPaused        ErrorCode = "APP_PAUSED"
	CodeWorkspaceDeleted ErrorCode = "WORKSPACE_DELETED"
	CodeCooldownActive   ErrorCode = "COOLDOWN_ACTIVE"
	CodeQuotaExceeded    ErrorCode = "QUOTA_EXCEEDED"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"
	CodeUpstreamNotFound ErrorCode = "UPSTREAM_NOT_FOUND"
	CodeUpstreamError    ErrorCode = "UPSTREAM_ERROR"
	CodeTimeout          ErrorCode = "TIMEOUT"
	CodeCancelled        ErrorCode = "CANCELLED"
	CodePersistence      ErrorCode = "PERSISTENCE_ERROR"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// SyncError tags a failure with its classification. Retryable means the
// same call may succeed if repeated; RetryAfter optionally carries a wait
// hint (cooldown remainder, provider Retry-After).
type SyncError struct {
	Code       ErrorCode
	Message    string
	Retryable  bool
	RetryAfter time.Duration
	Err        error
}

func (e *SyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewSyncError(code ErrorCode, msg string) *SyncError {
	return &SyncError{Code: code, Message: msg}
}

func Terminal(code ErrorCode, format string, args ...any) *SyncError {
	return &SyncError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Retryable(code ErrorCode, err error, format string, args ...any) *SyncError {
	return &SyncError{Code: code, Message: fmt.Sprintf(format, args...), Retryable: true, Err: err}
}

func RateLimited(retryAfter time.Duration) *SyncError {
	return &SyncError{
		Code:       CodeRateLimited,
		Message:    "rate limited by upstream",
		Retryable:  true,
		RetryAfter: retryAfter,
	}
}

func Cooldown(remaining time.Duration) *SyncError {
	return &SyncError{
		Code:       CodeCooldownActive,
		Message:    fmt.Sprintf("retry window active for another %s", remaining.Round(time.Second)),
		Retryable:  true,
		RetryAfter: remaining,
	}
}

// CodeOf extracts the classification from any error in the chain.
// Context cancellation and deadline expiry classify without tagging.
func CodeOf(err error) ErrorCode {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Code
	}
	if errors.Is(err, context.Canceled) {
		return CodeCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	return CodeInternal
}

// IsRetryable reports whether the retry wrapper may repeat the call.
// Rate-limit errors are retryable in principle but are propagated
// immediately by the wrapper, which checks the code separately.
func IsRetryable(err error) bool {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// IsCancellation reports whether err stems from the run's cancellation
// signal rather than a failure.
func IsCancellation(err error) bool {
	return CodeOf(err) == CodeCancelled
}

// RetryAfterHint returns the wait hint carried by err, or zero.
func RetryAfterHint(err error) time.Duration {
	var se *SyncError
	if errors.As(err, &se) {
		return se.RetryAfter
	}
	return 0
}
