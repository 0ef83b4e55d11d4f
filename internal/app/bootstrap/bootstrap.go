package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	trackingservice "timepay/contexts/engagement/tracking-service"
	trackingpostgres "timepay/contexts/engagement/tracking-service/adapters/postgres"
	distributionengine "timepay/contexts/monetization/distribution-engine"
	distributionpostgres "timepay/contexts/monetization/distribution-engine/adapters/postgres"
	distributionworkers "timepay/contexts/monetization/distribution-engine/application/workers"
	reportingservice "timepay/contexts/monetization/reporting-service"
	reportingpostgres "timepay/contexts/monetization/reporting-service/adapters/postgres"
	settingsservice "timepay/contexts/monetization/settings-service"
	settingspostgres "timepay/contexts/monetization/settings-service/adapters/postgres"
	"timepay/internal/platform/config"
	"timepay/internal/platform/db"
	"timepay/internal/platform/httpserver"
	"timepay/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  distributionworkers.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	distributionRepo := distributionpostgres.NewRepository(pg.DB, logger)
	distributionModule := distributionengine.NewModule(distributionengine.Dependencies{
		Repository:                 distributionRepo,
		Usage:                      distributionRepo,
		Settings:                   distributionRepo,
		Developers:                 distributionRepo,
		Outbox:                     distributionRepo,
		Clock:                      distributionpostgres.SystemClock{},
		IDGenerator:                distributionpostgres.UUIDGenerator{},
		DisableRunEventEmission:    !cfg.EnableRunEvents,
		DisablePayoutEventEmission: !cfg.EnablePayoutEvents,
		Logger:                     logger,
	})

	settingsModule := settingsservice.NewModule(settingsservice.Dependencies{
		Repository: settingspostgres.Repository{DB: pg.DB, Logger: logger},
		Clock:      settingspostgres.SystemClock{},
		Logger:     logger,
	})

	reportingModule := reportingservice.NewModule(reportingservice.Dependencies{
		Developers: reportingpostgres.Repository{DB: pg.DB, Logger: logger},
		Earnings:   reportingpostgres.Repository{DB: pg.DB, Logger: logger},
		Runs:       reportingpostgres.Repository{DB: pg.DB, Logger: logger},
		Logger:     logger,
	})

	trackingModule := trackingservice.NewModule(trackingservice.Dependencies{
		Repository:   trackingpostgres.Repository{DB: pg.DB, Logger: logger},
		Clock:        trackingpostgres.SystemClock{},
		IDGenerator:  trackingpostgres.UUIDGenerator{},
		KeyGenerator: trackingpostgres.SecretGenerator{},
		Logger:       logger,
	})

	server := httpserver.New(
		distributionModule,
		settingsModule,
		reportingModule,
		trackingModule,
		cfg.AdminToken,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus, err := messaging.NewBus(cfg.Brokers, logger)
	if err != nil {
		return nil, err
	}

	repo := distributionpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: distributionworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: bus,
			Clock:     distributionpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: time.Duration(cfg.WorkerPollSeconds) * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
