package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"reviewsync/internal/aggregator"
	"reviewsync/internal/config"
	"reviewsync/internal/metrics"
	"reviewsync/internal/publisher"
	"reviewsync/internal/ratelimit"
	"reviewsync/internal/retry"
	"reviewsync/internal/scheduler"
	"reviewsync/internal/service"
	"reviewsync/internal/source/appstore"
	"reviewsync/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	txManager := postgres.NewTransactionManager(db)
	appStore := postgres.NewAppStore(db)
	workspaceStore := postgres.NewWorkspaceStore(db)
	runStore := postgres.NewRunStore(db)
	reviewStore := postgres.NewReviewStore(db, cfg.Sync.InsertChunkSize, logger)
	snapshotStore := postgres.NewSnapshotStore(db)

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
		CleanupInterval:   cfg.RateLimit.CleanupInterval,
	})
	defer limiter.Stop()

	source := appstore.New(appstore.Config{
		BaseURL:   cfg.AppStore.BaseURL,
		Timeout:   cfg.AppStore.Timeout,
		PageDelay: cfg.AppStore.PageDelay,
		Retry: retry.Policy{
			MaxRetries: cfg.AppStore.Retry.MaxRetries,
			Delays:     cfg.AppStore.Retry.Delays,
		},
	}, limiter, logger)

	agg := aggregator.New(source, logger)

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry, logger)

	syncService := service.NewSyncService(
		txManager,
		appStore,
		workspaceStore,
		runStore,
		reviewStore,
		snapshotStore,
		rabbitMQ,
		agg,
		limiter,
		recorder,
		logger,
		cfg.Sync,
	)

	sched := scheduler.New(syncService, appStore, cfg.Sync.ScheduleInterval, cfg.Sync.RunTimeout, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(registry))
		if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	logger.Info("starting review ingestor",
		"sources", cfg.Sync.Sources,
		"interval", cfg.Sync.ScheduleInterval,
		"max_pages", cfg.Sync.MaxPagesPerSource,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
