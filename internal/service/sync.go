package service

import (
	"context"
	"log/slog"
	"time"

	"reviewsync/internal/aggregator"
	"reviewsync/internal/config"
	"reviewsync/internal/domain"
)

// SyncService orchestrates one ingestion run per invocation: eligibility,
// run lifecycle, multi-source fetch, persistence, backoff tracking, and
// the downstream snapshot trigger. Nothing below it escapes uncaught; the
// caller always receives a structured SyncResult.
type SyncService struct {
	tx         TransactionManager
	apps       AppStore
	workspaces WorkspaceStore
	runs       RunStore
	reviews    ReviewWriter
	snapshots  SnapshotStore
	enqueuer   SnapshotEnqueuer
	aggregator ReviewAggregator
	limiter    WorkspaceLimiter
	metrics    MetricsRecorder
	logger     *slog.Logger
	config     config.SyncConfig
}

func NewSyncService(
	tx TransactionManager,
	apps AppStore,
	workspaces WorkspaceStore,
	runs RunStore,
	reviews ReviewWriter,
	snapshots SnapshotStore,
	enqueuer SnapshotEnqueuer,
	agg ReviewAggregator,
	limiter WorkspaceLimiter,
	metrics MetricsRecorder,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *SyncService {
	return &SyncService{
		tx:         tx,
		apps:       apps,
		workspaces: workspaces,
		runs:       runs,
		reviews:    reviews,
		snapshots:  snapshots,
		enqueuer:   enqueuer,
		aggregator: agg,
		limiter:    limiter,
		metrics:    metrics,
		logger:     logger,
		config:     cfg,
	}
}

// Run executes one ingestion attempt for the app. It never returns an
// error: every failure is classified into the result's code and message.
func (s *SyncService) Run(ctx context.Context, appID int64, opts RunOptions) *domain.SyncResult {
	started := time.Now()
	logger := s.logger.With("app_id", appID, "reason", string(opts.Reason))

	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		return s.rejectedResult(logger, err, started)
	}
	logger = logger.With("external_id", app.ExternalID)

	ws, err := s.workspaces.GetByID(ctx, app.WorkspaceID)
	if err != nil {
		return s.rejectedResult(logger, err, started)
	}

	if err := s.checkEligibility(ctx, app, ws, opts, started); err != nil {
		return s.rejectedResult(logger, err, started)
	}

	rec := newRunRecord(app.ID, ws.ID, opts.Reason, started)
	if err := s.runs.Create(ctx, rec.run); err != nil {
		return s.rejectedResult(logger, domain.Retryable(domain.CodePersistence, err, "create run"), started)
	}
	logger = logger.With("run_id", rec.run.ID)

	rec.start(time.Now())
	if err := s.runs.Update(ctx, rec.run); err != nil {
		if domain.IsCancellation(err) {
			return s.finalizeCancelled(ctx, logger, rec)
		}
		return s.finalizeFailure(ctx, logger, rec, app,
			domain.Retryable(domain.CodePersistence, err, "mark run processing"))
	}

	logger.Info("starting sync",
		"sources", s.config.Sources,
		"max_pages", s.config.MaxPagesPerSource,
		"max_reviews", maxReviews(ws, s.config),
	)

	out, err := s.aggregator.Fetch(ctx, app.ExternalID, app.Country, aggregator.Options{
		WorkspaceID: ws.ID,
		Sources:     s.config.Sources,
		PageCap:     s.config.MaxPagesPerSource,
		TotalLimit:  maxReviews(ws, s.config),
		Concurrency: s.config.SourceConcurrency,
	})
	if err != nil {
		if domain.IsCancellation(err) {
			return s.finalizeCancelled(ctx, logger, rec)
		}
		return s.finalizeFailure(ctx, logger, rec, app, err)
	}

	for _, srcErr := range out.Errors {
		s.metrics.RecordUpstreamError(string(srcErr.Code))
	}

	inserted, duplicates, skipped, err := s.reviews.BatchInsert(ctx, app.ID, out.Reviews)
	if err != nil {
		if domain.IsCancellation(err) {
			return s.finalizeCancelled(ctx, logger, rec)
		}
		return s.finalizeFailure(ctx, logger, rec, app,
			domain.Retryable(domain.CodePersistence, err, "insert reviews"))
	}

	rec.run.ReviewsFetched = out.Fetched
	rec.run.ReviewsInserted = inserted
	rec.run.DuplicateCount = out.Duplicates + duplicates
	rec.run.ReviewsSkipped = skipped + out.Truncated
	rec.run.PagesFetched = out.Pages
	rec.run.SourcesProcessed = out.SourcesProcessed

	return s.finalizeSuccess(ctx, logger, rec, app)
}

func maxReviews(ws *domain.Workspace, cfg config.SyncConfig) int {
	if ws.MaxReviewsPerSync > 0 && ws.MaxReviewsPerSync < cfg.MaxReviewsPerSync {
		return ws.MaxReviewsPerSync
	}
	return cfg.MaxReviewsPerSync
}

// rejectedResult covers failures before a run record exists: lookup
// errors and eligibility violations. No run row, no backoff advance.
func (s *SyncService) rejectedResult(logger *slog.Logger, err error, started time.Time) *domain.SyncResult {
	code := domain.CodeOf(err)
	logger.Warn("sync rejected", "code", string(code), "error", err)

	return &domain.SyncResult{
		Success:      false,
		Duration:     time.Since(started),
		ErrorCode:    string(code),
		ErrorMessage: err.Error(),
	}
}

func (s *SyncService) finalizeSuccess(ctx context.Context, logger *slog.Logger, rec *runRecord, app *domain.App) *domain.SyncResult {
	now := time.Now()
	rec.succeed(now)

	s.triggerSnapshot(ctx, logger, rec, app)

	// The audit record and the backoff state must not disagree after a
	// partial write, so the pair lands in one transaction.
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.runs.Update(txCtx, rec.run); err != nil {
			return err
		}
		return s.apps.UpdateSyncState(txCtx, app.ID, successState(now))
	})
	if err != nil {
		logger.Error("failed to persist succeeded run", "error", err)
	}

	s.metrics.RecordRun(string(domain.RunStatusSucceeded),
		time.Duration(rec.run.DurationMs)*time.Millisecond, rec.run.ReviewsInserted)

	logger.Info("sync completed",
		"fetched", rec.run.ReviewsFetched,
		"inserted", rec.run.ReviewsInserted,
		"duplicates", rec.run.DuplicateCount,
		"skipped", rec.run.ReviewsSkipped,
		"pages", rec.run.PagesFetched,
		"duration_ms", rec.run.DurationMs,
	)

	return resultFromRun(rec.run, true)
}

func (s *SyncService) finalizeFailure(ctx context.Context, logger *slog.Logger, rec *runRecord, app *domain.App, cause error) *domain.SyncResult {
	now := time.Now()
	code := domain.CodeOf(cause)
	rec.fail(now, code, cause.Error())

	// Terminal writes must survive the run's own cancellation signal, and
	// the run record must agree with the advanced failure tracking.
	persistCtx := context.WithoutCancel(ctx)

	err := s.tx.WithTransaction(persistCtx, func(txCtx context.Context) error {
		if err := s.runs.Update(txCtx, rec.run); err != nil {
			return err
		}
		return s.apps.UpdateSyncState(txCtx, app.ID, failureState(app, cause.Error(), now))
	})
	if err != nil {
		logger.Error("failed to persist failed run", "error", err)
	}

	s.metrics.RecordRun(string(domain.RunStatusFailed),
		time.Duration(rec.run.DurationMs)*time.Millisecond, 0)

	logger.Warn("sync failed", "code", string(code), "error", cause)

	return resultFromRun(rec.run, false)
}

// finalizeCancelled marks the run cancelled without touching the failure
// counter: cancellation is distinct from failure.
func (s *SyncService) finalizeCancelled(ctx context.Context, logger *slog.Logger, rec *runRecord) *domain.SyncResult {
	rec.cancel(time.Now())

	persistCtx := context.WithoutCancel(ctx)
	if err := s.runs.Update(persistCtx, rec.run); err != nil {
		logger.Error("failed to persist cancelled run", "error", err)
	}

	s.metrics.RecordRun(string(domain.RunStatusCancelled),
		time.Duration(rec.run.DurationMs)*time.Millisecond, 0)

	logger.Info("sync cancelled")

	return resultFromRun(rec.run, false)
}

// triggerSnapshot is best-effort: any failure is logged and swallowed so
// downstream enqueueing can never turn a successful run into a failure.
func (s *SyncService) triggerSnapshot(ctx context.Context, logger *slog.Logger, rec *runRecord, app *domain.App) {
	pending, err := s.snapshots.HasPending(ctx, app.ID)
	if err != nil {
		logger.Warn("snapshot pending check failed", "error", err)
	}
	if pending {
		logger.Debug("snapshot already pending, skipping enqueue")
		return
	}

	snapshotID, err := s.enqueuer.EnqueueSnapshot(ctx, app.ID, rec.run.ID)
	if err != nil {
		logger.Warn("snapshot enqueue failed", "error", err)
		return
	}

	if err := s.snapshots.Create(ctx, snapshotID, app.ID, rec.run.ID); err != nil {
		logger.Warn("snapshot record create failed", "snapshot_id", snapshotID, "error", err)
	}

	rec.run.SnapshotID = &snapshotID
}

func resultFromRun(run *domain.IngestionRun, success bool) *domain.SyncResult {
	res := &domain.SyncResult{
		Success:         success,
		RunID:           run.ID,
		SnapshotID:      run.SnapshotID,
		ReviewsFetched:  run.ReviewsFetched,
		ReviewsInserted: run.ReviewsInserted,
		DuplicateCount:  run.DuplicateCount,
		ReviewsSkipped:  run.ReviewsSkipped,
		Duration:        time.Duration(run.DurationMs) * time.Millisecond,
	}
	if run.ErrorCode != nil {
		res.ErrorCode = *run.ErrorCode
	}
	if run.ErrorMessage != nil {
		res.ErrorMessage = *run.ErrorMessage
	}
	return res
}
