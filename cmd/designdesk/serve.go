package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/api/handler"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/service"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/infrastructure/config"
	mongostore "github.com/NischalJogani/PrishaNangalia-CSIA/internal/infrastructure/db/mongo"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/infrastructure/db/postgres"
	redisstore "github.com/NischalJogani/PrishaNangalia-CSIA/internal/infrastructure/db/redis"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/infrastructure/report"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/infrastructure/storage"
	"github.com/NischalJogani/PrishaNangalia-CSIA/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	connectPostgres = postgres.Connect
	connectRedis    = redisstore.Connect
	connectMongo    = mongostore.Connect
	runMigrationsFn = postgres.RunMigrations
	rollbackFn      = postgres.RollbackAll
	newDisk         = storage.New
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
)

func serve(ctx context.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "designdesk",
		Env:     cfg.Env,
	})

	db, err := connectPostgres(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer db.Close()

	if err := runMigrationsFn(cfg.Postgres.URL); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	rdb, err := connectRedis(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Password: cfg.Redis.Password})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	mongoClient, mongoDB, err := connectMongo(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	disk, err := newDisk(storage.Config{
		Driver:     cfg.Storage.Driver,
		LocalRoot:  cfg.Storage.UploadDir,
		S3Bucket:   cfg.Storage.S3Bucket,
		S3Region:   cfg.Storage.S3Region,
		S3Endpoint: cfg.Storage.S3Endpoint,
		S3Key:      cfg.Storage.S3Key,
		S3Secret:   cfg.Storage.S3Secret,
	})
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("SESSION_SECRET not set; sessions will not survive a restart")
	}

	gw := postgres.NewGateway(db)
	users := postgres.NewUserRepository(gw)
	audit := mongostore.NewAuditRepository(mongoDB)

	authService := service.NewAuthService(users, audit, service.AuthConfig{
		Policy: service.PasswordPolicy{
			MinLength:     cfg.Password.MinLength,
			RequireUpper:  cfg.Password.RequireUpper,
			RequireLower:  cfg.Password.RequireLower,
			RequireDigit:  cfg.Password.RequireDigit,
			RequireSymbol: cfg.Password.RequireSymbol,
		},
		BcryptCost: cfg.Password.BcryptCost,
		Codes: service.CodeConfig{
			Length:      cfg.Codes.Length,
			Alphabet:    cfg.Codes.Alphabet,
			MaxAttempts: cfg.Codes.MaxAttempts,
		},
	}, logger.Component("auth"))

	sessions := service.NewSessionManager(service.SessionConfig{
		Secret:     []byte(secret),
		CookieName: cfg.Session.CookieName,
		ExpiryDays: cfg.Session.ExpiryDays,
		TTL:        cfg.Session.TTL,
	}, redisstore.NewRevocationStore(rdb), audit, logger.Component("session"))

	projectService := service.NewProjectService(
		postgres.NewProjectRepository(gw),
		authService,
		storage.NewProjectFiles(disk),
		report.NewBudgetPDF(),
		logger.Component("projects"),
	)

	e := api.NewRouter(api.Deps{
		Logger:       logger.Component("http"),
		Auth:         authService,
		Sessions:     sessions,
		Projects:     projectService,
		CookieSecure: cfg.Session.CookieSecure,
		UploadLimit:  cfg.Storage.MaxUpload,
		Checks: map[string]handler.Checker{
			"postgres": db.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			"mongodb":  func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		},
	})

	return runServer(ctx, e, ":"+cfg.Port, log)
}

// runServer blocks until the server fails or the process is signalled,
// then drains in-flight requests.
func runServer(ctx context.Context, e *echo.Echo, addr string, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()
	log.Info().Str("addr", addr).Msg("server started")

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
