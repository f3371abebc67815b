package scheduler

import (
	"context"
	"log/slog"
	"time"

	"reviewsync/internal/domain"
	"reviewsync/internal/service"
)

// Runner executes one ingestion run. Satisfied by service.SyncService.
type Runner interface {
	Run(ctx context.Context, appID int64, opts service.RunOptions) *domain.SyncResult
}

// DueLister selects apps eligible for their next scheduled sync.
type DueLister interface {
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.App, error)
}

type Scheduler struct {
	runner     Runner
	apps       DueLister
	interval   time.Duration
	runTimeout time.Duration
	batchSize  int
	logger     *slog.Logger
}

func New(runner Runner, apps DueLister, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:     runner,
		apps:       apps,
		interval:   interval,
		runTimeout: runTimeout,
		batchSize:  50,
		logger:     logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle syncs every due app, continuing past individual failures so a
// single bad app cannot stall the rest of the batch.
func (s *Scheduler) runCycle(ctx context.Context) {
	apps, err := s.apps.ListDue(ctx, time.Now(), s.batchSize)
	if err != nil {
		s.logger.Error("failed to list due apps", "error", err)
		return
	}

	if len(apps) == 0 {
		return
	}
	s.logger.Info("sync cycle", "due", len(apps))

	for _, app := range apps {
		if ctx.Err() != nil {
			return
		}

		runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
		res := s.runner.Run(runCtx, app.ID, service.RunOptions{Reason: domain.RunReasonScheduled})
		cancel()

		if !res.Success {
			s.logger.Warn("scheduled sync failed",
				"app_id", app.ID,
				"code", res.ErrorCode,
				"error", res.ErrorMessage,
			)
		}
	}
}
