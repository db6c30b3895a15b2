package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	account "campus/contexts/identity-access/account-service"
	accountmemory "campus/contexts/identity-access/account-service/adapters/memory"
	accountpostgres "campus/contexts/identity-access/account-service/adapters/postgres"
	accountports "campus/contexts/identity-access/account-service/ports"
	authorization "campus/contexts/identity-access/authorization-service"
	classroom "campus/contexts/learning/classroom-service"
	classroommemory "campus/contexts/learning/classroom-service/adapters/memory"
	classroompostgres "campus/contexts/learning/classroom-service/adapters/postgres"
	classroomports "campus/contexts/learning/classroom-service/ports"
	"campus/internal/platform/blob"
	"campus/internal/platform/config"
	"campus/internal/platform/db"
	"campus/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}

	var (
		pg          *db.Postgres
		accountRepo accountports.Repository

		classrooms  classroomports.ClassroomRepository
		tasks       classroomports.TaskRepository
		submissions classroomports.SubmissionRepository
		materials   classroomports.MaterialRepository
		clock       accountports.Clock
		ids         accountports.IDGenerator
	)

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		accountRepo = accountpostgres.NewRepository(pg.DB, logger)
		classroomRepo := classroompostgres.NewRepository(pg.DB, logger)
		classrooms, tasks, submissions, materials = classroomRepo, classroomRepo, classroomRepo, classroomRepo
		clock = accountpostgres.SystemClock{}
		ids = accountpostgres.UUIDGenerator{}
	} else {
		logger.Warn("no POSTGRES_DSN configured, using in-memory stores",
			"event", "bootstrap_memory_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		accountStore := accountmemory.NewStore()
		classroomStore := classroommemory.NewStore()
		accountRepo = accountStore
		classrooms, tasks, submissions, materials = classroomStore, classroomStore, classroomStore, classroomStore
		clock = accountStore
		ids = accountStore
	}

	var blobs classroomports.BlobStore
	if cfg.B2AccountID != "" && cfg.B2AppKey != "" && cfg.B2Bucket != "" {
		b2Store, err := blob.NewB2Store(ctx, cfg.B2AccountID, cfg.B2AppKey, cfg.B2Bucket)
		if err != nil {
			return nil, err
		}
		blobs = b2Store
	} else {
		logger.Warn("no B2 credentials configured, using in-memory blob store",
			"event", "bootstrap_blob_memory_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		blobs = blob.NewMemoryStore()
	}

	resources := resourceDirectory{
		classrooms:  classrooms,
		tasks:       tasks,
		submissions: submissions,
		materials:   materials,
	}
	authModule := authorization.NewModule(authorization.Dependencies{
		TokenSecret: []byte(cfg.TokenSecret),
		TokenIssuer: cfg.TokenIssuer,
		TokenTTL:    cfg.TokenTTL,
		Clock:       clock,
		Users:       userDirectory{repo: accountRepo},
		Classrooms:  resources,
		Tasks:       resources,
		Submissions: resources,
		Materials:   resources,
		Logger:      logger,
	})

	classroomModule := classroom.NewModule(classroom.Dependencies{
		Classrooms:  classrooms,
		Tasks:       tasks,
		Submissions: submissions,
		Materials:   materials,
		Blobs:       blobs,
		Accounts:    accountDirectory{repo: accountRepo},
		Clock:       clock,
		IDGenerator: ids,
		Logger:      logger,
	})

	accountModule := account.NewModule(account.Dependencies{
		Repository:  accountRepo,
		Cleanup:     classroomModule.Service,
		Tokens:      authModule.Codec,
		Clock:       clock,
		IDGenerator: ids,
		BcryptCost:  cfg.BcryptCost,
		Logger:      logger,
	})

	server := httpserver.New(accountModule, classroomModule, authModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
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
