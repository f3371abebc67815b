package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"reviewsync/internal/aggregator"
	"reviewsync/internal/config"
	"reviewsync/internal/domain"
	"reviewsync/internal/service/mocks"
)

type SyncServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	tx         *mocks.MockTransactionManager
	apps       *mocks.MockAppStore
	workspaces *mocks.MockWorkspaceStore
	runs       *mocks.MockRunStore
	reviews    *mocks.MockReviewWriter
	snapshots  *mocks.MockSnapshotStore
	enqueuer   *mocks.MockSnapshotEnqueuer
	agg        *mocks.MockReviewAggregator
	limiter    *mocks.MockWorkspaceLimiter
	metrics    *mocks.MockMetricsRecorder

	service *SyncService
	cfg     config.SyncConfig
	logger  *slog.Logger
}

func (s *SyncServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.tx = mocks.NewMockTransactionManager(s.ctrl)
	s.apps = mocks.NewMockAppStore(s.ctrl)
	s.workspaces = mocks.NewMockWorkspaceStore(s.ctrl)
	s.runs = mocks.NewMockRunStore(s.ctrl)
	s.reviews = mocks.NewMockReviewWriter(s.ctrl)
	s.snapshots = mocks.NewMockSnapshotStore(s.ctrl)
	s.enqueuer = mocks.NewMockSnapshotEnqueuer(s.ctrl)
	s.agg = mocks.NewMockReviewAggregator(s.ctrl)
	s.limiter = mocks.NewMockWorkspaceLimiter(s.ctrl)
	s.metrics = mocks.NewMockMetricsRecorder(s.ctrl)

	s.cfg = config.SyncConfig{
		Sources:           []string{domain.SourceMostHelpful, domain.SourceMostRecent},
		MaxPagesPerSource: 5,
		MaxReviewsPerSync: 1000,
		SourceConcurrency: 2,
	}

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewSyncService(
		s.tx,
		s.apps,
		s.workspaces,
		s.runs,
		s.reviews,
		s.snapshots,
		s.enqueuer,
		s.agg,
		s.limiter,
		s.metrics,
		s.logger,
		s.cfg,
	)
}

func (s *SyncServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}

func (s *SyncServiceTestSuite) activeApp() *domain.App {
	return &domain.App{
		ID:          1,
		WorkspaceID: 10,
		ExternalID:  "1570489264",
		Name:        "StoryGraph",
		Country:     "us",
		Status:      domain.AppStatusActive,
	}
}

func (s *SyncServiceTestSuite) workspace() *domain.Workspace {
	return &domain.Workspace{
		ID:                10,
		Name:              "Acme",
		Plan:              "pro",
		MaxReviewsPerSync: 500,
		MaxSyncsPerMonth:  100,
	}
}

func (s *SyncServiceTestSuite) expectEligible(ws *domain.Workspace) {
	s.runs.EXPECT().CountSucceededSince(gomock.Any(), ws.ID, gomock.Any()).Return(3, nil)
	s.limiter.EXPECT().Allow(ws.ID).Return(true)
}

// expectTransaction runs the transactional body against the same mocks the
// direct writes would hit.
func (s *SyncServiceTestSuite) expectTransaction() {
	s.tx.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func review(id string, rating int, source string) domain.Review {
	return domain.Review{
		ExternalID:  id,
		Rating:      rating,
		Content:     "content " + id,
		Country:     "us",
		PublishedAt: time.Now(),
		Source:      source,
	}
}

func (s *SyncServiceTestSuite) TestRun_Success() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.expectEligible(ws)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.expectTransaction()

	out := &aggregator.Output{
		Reviews: []domain.Review{
			review("r1", 5, domain.SourceMostHelpful),
			review("r2", 4, domain.SourceMostHelpful),
		},
		Fetched:          3,
		Duplicates:       1,
		Pages:            2,
		SourcesProcessed: []string{domain.SourceMostHelpful, domain.SourceMostRecent},
	}
	s.agg.EXPECT().Fetch(ctx, app.ExternalID, app.Country, gomock.Any()).Return(out, nil)

	s.reviews.EXPECT().BatchInsert(ctx, app.ID, out.Reviews).Return(2, 0, 0, nil)

	s.snapshots.EXPECT().HasPending(ctx, app.ID).Return(false, nil)
	s.enqueuer.EXPECT().EnqueueSnapshot(ctx, app.ID, gomock.Any()).Return("snap-1", nil)
	s.snapshots.EXPECT().Create(ctx, "snap-1", app.ID, gomock.Any()).Return(nil)

	s.apps.EXPECT().UpdateSyncState(ctx, app.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, state domain.SyncState) error {
			s.Equal(0, state.ConsecutiveFailures)
			s.Nil(state.NextRetryAt)
			s.Nil(state.LastFailureReason)
			s.NotNil(state.LastSyncedAt)
			return nil
		},
	)

	s.metrics.EXPECT().RecordRun(string(domain.RunStatusSucceeded), gomock.Any(), 2)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual})

	s.True(res.Success)
	s.NotEmpty(res.RunID)
	s.Equal(3, res.ReviewsFetched)
	s.Equal(2, res.ReviewsInserted)
	s.Equal(1, res.DuplicateCount)
	s.Equal(0, res.ReviewsSkipped)
	s.NotNil(res.SnapshotID)
	s.Equal("snap-1", *res.SnapshotID)
	s.Empty(res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_AccountingInvariant() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.expectEligible(ws)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.expectTransaction()

	out := &aggregator.Output{
		Reviews: []domain.Review{
			review("r1", 5, domain.SourceMostHelpful),
			review("r2", 4, domain.SourceMostHelpful),
			review("r3", 3, domain.SourceMostRecent),
		},
		Fetched:          6,
		Duplicates:       2,
		Truncated:        1,
		Pages:            2,
		SourcesProcessed: []string{domain.SourceMostHelpful, domain.SourceMostRecent},
	}
	s.agg.EXPECT().Fetch(ctx, app.ExternalID, app.Country, gomock.Any()).Return(out, nil)

	// One stored row already exists, one chunk entry skipped on error.
	s.reviews.EXPECT().BatchInsert(ctx, app.ID, out.Reviews).Return(1, 1, 1, nil)

	s.snapshots.EXPECT().HasPending(ctx, app.ID).Return(false, nil)
	s.enqueuer.EXPECT().EnqueueSnapshot(ctx, app.ID, gomock.Any()).Return("snap-2", nil)
	s.snapshots.EXPECT().Create(ctx, "snap-2", app.ID, gomock.Any()).Return(nil)
	s.apps.EXPECT().UpdateSyncState(ctx, app.ID, gomock.Any()).Return(nil)
	s.metrics.EXPECT().RecordRun(string(domain.RunStatusSucceeded), gomock.Any(), 1)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonScheduled})

	s.True(res.Success)
	s.Equal(res.ReviewsFetched, res.ReviewsInserted+res.DuplicateCount+res.ReviewsSkipped)
}

func (s *SyncServiceTestSuite) TestRun_ArchivedApp_NoRunCreated() {
	ctx := context.Background()
	app := s.activeApp()
	app.Status = domain.AppStatusArchived

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, app.WorkspaceID).Return(s.workspace(), nil)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual})

	s.False(res.Success)
	s.Empty(res.RunID)
	s.Equal(string(domain.CodeAppNotFound), res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_PausedApp() {
	ctx := context.Background()
	app := s.activeApp()
	app.Status = domain.AppStatusPaused

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, app.WorkspaceID).Return(s.workspace(), nil)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual})

	s.False(res.Success)
	s.Equal(string(domain.CodeAppPaused), res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_WorkspaceDeleted() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()
	deleted := time.Now()
	ws.DeletedAt = &deleted

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual})

	s.False(res.Success)
	s.Equal(string(domain.CodeWorkspaceDeleted), res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_CooldownActive() {
	ctx := context.Background()
	app := s.activeApp()
	next := time.Now().Add(30 * time.Minute)
	app.NextRetryAt = &next

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, app.WorkspaceID).Return(s.workspace(), nil)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonScheduled})

	s.False(res.Success)
	s.Equal(string(domain.CodeCooldownActive), res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_QuotaExceeded() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()
	ws.MaxSyncsPerMonth = 5

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.runs.EXPECT().CountSucceededSince(gomock.Any(), ws.ID, gomock.Any()).Return(5, nil)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonScheduled})

	s.False(res.Success)
	s.Equal(string(domain.CodeQuotaExceeded), res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_QuotaBypassed() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()
	ws.MaxSyncsPerMonth = 1

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.limiter.EXPECT().Allow(ws.ID).Return(true)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.expectTransaction()

	out := &aggregator.Output{
		Reviews:          []domain.Review{review("r1", 5, domain.SourceMostHelpful)},
		Fetched:          1,
		SourcesProcessed: []string{domain.SourceMostHelpful},
	}
	s.agg.EXPECT().Fetch(ctx, app.ExternalID, app.Country, gomock.Any()).Return(out, nil)
	s.reviews.EXPECT().BatchInsert(ctx, app.ID, out.Reviews).Return(1, 0, 0, nil)
	s.snapshots.EXPECT().HasPending(ctx, app.ID).Return(false, nil)
	s.enqueuer.EXPECT().EnqueueSnapshot(ctx, app.ID, gomock.Any()).Return("snap-3", nil)
	s.snapshots.EXPECT().Create(ctx, "snap-3", app.ID, gomock.Any()).Return(nil)
	s.apps.EXPECT().UpdateSyncState(ctx, app.ID, gomock.Any()).Return(nil)
	s.metrics.EXPECT().RecordRun(string(domain.RunStatusSucceeded), gomock.Any(), 1)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual, BypassQuota: true})

	s.True(res.Success)
}

func (s *SyncServiceTestSuite) TestRun_RateLimited() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.runs.EXPECT().CountSucceededSince(gomock.Any(), ws.ID, gomock.Any()).Return(0, nil)
	s.limiter.EXPECT().Allow(ws.ID).Return(false)
	s.limiter.EXPECT().RetryAfter().Return(2 * time.Second)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonScheduled})

	s.False(res.Success)
	s.Equal(string(domain.CodeRateLimited), res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_FetchFailure_AdvancesBackoff() {
	ctx := context.Background()
	app := s.activeApp()
	app.ConsecutiveFailures = 1
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.expectEligible(ws)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.expectTransaction()

	s.agg.EXPECT().Fetch(ctx, app.ExternalID, app.Country, gomock.Any()).Return(
		nil, domain.Terminal(domain.CodeUpstreamNotFound, "all sources failed"),
	)

	before := time.Now()
	s.apps.EXPECT().UpdateSyncState(gomock.Any(), app.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, state domain.SyncState) error {
			s.Equal(2, state.ConsecutiveFailures)
			s.Require().NotNil(state.NextRetryAt)
			// Second failure selects the 15m table entry.
			s.WithinDuration(before.Add(15*time.Minute), *state.NextRetryAt, 5*time.Second)
			s.NotNil(state.LastFailureReason)
			return nil
		},
	)

	s.metrics.EXPECT().RecordRun(string(domain.RunStatusFailed), gomock.Any(), 0)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonScheduled})

	s.False(res.Success)
	s.NotEmpty(res.RunID)
	s.Equal(string(domain.CodeUpstreamNotFound), res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_Cancelled_FailureCounterUntouched() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.expectEligible(ws)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	s.agg.EXPECT().Fetch(ctx, app.ExternalID, app.Country, gomock.Any()).Return(nil, context.Canceled)

	// No UpdateSyncState expectation: cancellation must not advance backoff.
	s.metrics.EXPECT().RecordRun(string(domain.RunStatusCancelled), gomock.Any(), 0)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual})

	s.False(res.Success)
	s.Equal(string(domain.CodeCancelled), res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_SnapshotFailureDoesNotFailRun() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.expectEligible(ws)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.expectTransaction()

	out := &aggregator.Output{
		Reviews:          []domain.Review{review("r1", 5, domain.SourceMostHelpful)},
		Fetched:          1,
		SourcesProcessed: []string{domain.SourceMostHelpful},
	}
	s.agg.EXPECT().Fetch(ctx, app.ExternalID, app.Country, gomock.Any()).Return(out, nil)
	s.reviews.EXPECT().BatchInsert(ctx, app.ID, out.Reviews).Return(1, 0, 0, nil)

	s.snapshots.EXPECT().HasPending(ctx, app.ID).Return(false, nil)
	s.enqueuer.EXPECT().EnqueueSnapshot(ctx, app.ID, gomock.Any()).Return("", errors.New("broker down"))

	s.apps.EXPECT().UpdateSyncState(ctx, app.ID, gomock.Any()).Return(nil)
	s.metrics.EXPECT().RecordRun(string(domain.RunStatusSucceeded), gomock.Any(), 1)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual})

	s.True(res.Success)
	s.Nil(res.SnapshotID)
}

func (s *SyncServiceTestSuite) TestRun_PendingSnapshotSkipsEnqueue() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.expectEligible(ws)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.expectTransaction()

	out := &aggregator.Output{
		Reviews:          []domain.Review{review("r1", 4, domain.SourceMostRecent)},
		Fetched:          1,
		SourcesProcessed: []string{domain.SourceMostRecent},
	}
	s.agg.EXPECT().Fetch(ctx, app.ExternalID, app.Country, gomock.Any()).Return(out, nil)
	s.reviews.EXPECT().BatchInsert(ctx, app.ID, out.Reviews).Return(1, 0, 0, nil)

	s.snapshots.EXPECT().HasPending(ctx, app.ID).Return(true, nil)

	s.apps.EXPECT().UpdateSyncState(ctx, app.ID, gomock.Any()).Return(nil)
	s.metrics.EXPECT().RecordRun(string(domain.RunStatusSucceeded), gomock.Any(), 1)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual})

	s.True(res.Success)
	s.Nil(res.SnapshotID)
}

func (s *SyncServiceTestSuite) TestRun_CancelledWhileMarkingProcessing() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.expectEligible(ws)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	// The processing-mark write hits the cancelled context.
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(context.Canceled)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	// No UpdateSyncState expectation: cancellation must not advance backoff.
	s.metrics.EXPECT().RecordRun(string(domain.RunStatusCancelled), gomock.Any(), 0)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual})

	s.False(res.Success)
	s.Equal(string(domain.CodeCancelled), res.ErrorCode)
}

func (s *SyncServiceTestSuite) TestRun_TerminalPersistFailureKeepsOutcome() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.expectEligible(ws)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	out := &aggregator.Output{
		Reviews:          []domain.Review{review("r1", 5, domain.SourceMostHelpful)},
		Fetched:          1,
		SourcesProcessed: []string{domain.SourceMostHelpful},
	}
	s.agg.EXPECT().Fetch(ctx, app.ExternalID, app.Country, gomock.Any()).Return(out, nil)
	s.reviews.EXPECT().BatchInsert(ctx, app.ID, out.Reviews).Return(1, 0, 0, nil)

	s.snapshots.EXPECT().HasPending(ctx, app.ID).Return(false, nil)
	s.enqueuer.EXPECT().EnqueueSnapshot(ctx, app.ID, gomock.Any()).Return("snap-9", nil)
	s.snapshots.EXPECT().Create(ctx, "snap-9", app.ID, gomock.Any()).Return(nil)

	// The transactional terminal write fails; the outcome is logged and
	// stays a success for the caller.
	s.tx.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).Return(errors.New("commit failed"))

	s.metrics.EXPECT().RecordRun(string(domain.RunStatusSucceeded), gomock.Any(), 1)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonManual})

	s.True(res.Success)
}

func (s *SyncServiceTestSuite) TestRun_SourceErrorsRecorded() {
	ctx := context.Background()
	app := s.activeApp()
	ws := s.workspace()

	s.apps.EXPECT().GetByID(ctx, app.ID).Return(app, nil)
	s.workspaces.EXPECT().GetByID(ctx, ws.ID).Return(ws, nil)
	s.expectEligible(ws)

	s.runs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	s.runs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.expectTransaction()

	out := &aggregator.Output{
		Reviews: []domain.Review{review("r1", 5, domain.SourceMostHelpful)},
		Fetched: 1,
		Errors: []aggregator.SourceError{
			{Source: domain.SourceMostRecent, Code: domain.CodeUpstreamError, Message: "status 500"},
		},
		SourcesProcessed: []string{domain.SourceMostHelpful},
	}
	s.agg.EXPECT().Fetch(ctx, app.ExternalID, app.Country, gomock.Any()).Return(out, nil)
	s.metrics.EXPECT().RecordUpstreamError(string(domain.CodeUpstreamError))

	s.reviews.EXPECT().BatchInsert(ctx, app.ID, out.Reviews).Return(1, 0, 0, nil)
	s.snapshots.EXPECT().HasPending(ctx, app.ID).Return(false, nil)
	s.enqueuer.EXPECT().EnqueueSnapshot(ctx, app.ID, gomock.Any()).Return("snap-4", nil)
	s.snapshots.EXPECT().Create(ctx, "snap-4", app.ID, gomock.Any()).Return(nil)
	s.apps.EXPECT().UpdateSyncState(ctx, app.ID, gomock.Any()).Return(nil)
	s.metrics.EXPECT().RecordRun(string(domain.RunStatusSucceeded), gomock.Any(), 1)

	res := s.service.Run(ctx, app.ID, RunOptions{Reason: domain.RunReasonScheduled})

	// One source failing does not fail the run when the other returned data.
	s.True(res.Success)
}
