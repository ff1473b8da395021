package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	delegateaccess "jobdeck/contexts/identity-access/delegate-access-service"
	emailadapter "jobdeck/contexts/identity-access/delegate-access-service/adapters/email"
	delegatepostgres "jobdeck/contexts/identity-access/delegate-access-service/adapters/postgres"
	tokenadapter "jobdeck/contexts/identity-access/delegate-access-service/adapters/token"
	delegateworkers "jobdeck/contexts/identity-access/delegate-access-service/application/workers"
	delegateports "jobdeck/contexts/identity-access/delegate-access-service/ports"
	membership "jobdeck/contexts/identity-access/membership-service"
	memberpostgres "jobdeck/contexts/identity-access/membership-service/adapters/postgres"
	organization "jobdeck/contexts/organizations/organization-service"
	orgpostgres "jobdeck/contexts/organizations/organization-service/adapters/postgres"
	orgapplication "jobdeck/contexts/organizations/organization-service/application"
	"jobdeck/internal/platform/config"
	"jobdeck/internal/platform/db"
	"jobdeck/internal/platform/httpserver"
	"jobdeck/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres          *db.Postgres
	outboxRelay       delegateworkers.OutboxRelay
	noticeRelay       delegateworkers.NoticeRelay
	enableOutboxRelay bool
	enableNoticeRelay bool
	pollInterval      time.Duration
	logger            *slog.Logger
}

// organizationDirectory adapts the directory reads onto the delegation
// workflow's lookup port. Cross-context wiring happens only here.
type organizationDirectory struct {
	service orgapplication.Service
}

func (d organizationDirectory) OrgExists(ctx context.Context, orgID string) (bool, error) {
	return d.service.OrgExists(ctx, orgID)
}

func (d organizationDirectory) OrgSummary(ctx context.Context, orgID string) (delegateports.OrgSummary, bool, error) {
	org, found, err := d.service.OrgSummary(ctx, orgID)
	if err != nil || !found {
		return delegateports.OrgSummary{}, false, err
	}
	return delegateports.OrgSummary{
		OrgID: org.OrgID,
		Name:  org.Name,
		Logo:  org.Logo,
	}, true, nil
}

func (d organizationDirectory) HasActiveSubscription(ctx context.Context, orgID string) (bool, error) {
	return d.service.HasActiveSubscription(ctx, orgID)
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

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	membershipModule := membership.NewModule(membership.Dependencies{
		Repo:   memberpostgres.NewRepository(pg.DB, logger),
		Logger: logger,
	})

	organizationModule := organization.NewModule(organization.Dependencies{
		Repo:   orgpostgres.NewRepository(pg.DB, logger),
		Clock:  delegatepostgres.SystemClock{},
		Logger: logger,
	})

	delegateRepo := delegatepostgres.NewRepository(pg.DB, logger)
	delegateModule := delegateaccess.NewModule(delegateaccess.Dependencies{
		Repo:       delegateRepo,
		Tokens:     tokenadapter.RandomIssuer{},
		IDs:        delegatepostgres.UUIDGenerator{},
		Clock:      delegatepostgres.SystemClock{},
		Membership: membershipModule.Service,
		Directory:  organizationDirectory{service: organizationModule.Service},
		Notifier: emailadapter.Dispatcher{
			Publisher: kafka,
			IDs:       delegatepostgres.UUIDGenerator{},
			Clock:     delegatepostgres.SystemClock{},
			Logger:    logger,
		},
		AdminDomain:   cfg.OrgAdminDomain,
		NotifyTimeout: 5 * time.Second,
		Logger:        logger,
	})

	server := httpserver.New(
		delegateModule,
		membershipModule,
		organizationModule,
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

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := delegatepostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: delegateworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     delegatepostgres.SystemClock{},
			Topic:     "delegate-access.events",
			BatchSize: 100,
			Logger:    logger,
		},
		noticeRelay: delegateworkers.NoticeRelay{
			Subscriber:    kafka,
			Sender:        emailadapter.LogSender{Logger: logger},
			Topic:         emailadapter.NoticeTopic,
			ConsumerGroup: "delegate-access-notice-cg",
			Logger:        logger,
		},
		enableOutboxRelay: cfg.EnableDelegationOutboxRelay,
		enableNoticeRelay: cfg.EnableDelegationNoticeRelay,
		pollInterval:      2 * time.Second,
		logger:            logger,
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
	if w.enableNoticeRelay {
		if err := w.noticeRelay.Start(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.enableOutboxRelay {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
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
