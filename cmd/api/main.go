package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"callboard/internal/analytics"
	"callboard/internal/auth"
	"callboard/internal/calls"
	"callboard/internal/clients"
	"callboard/internal/config"
	"callboard/internal/httpapi"
	"callboard/internal/services"
	pgstore "callboard/internal/store/postgres"
	"callboard/internal/store/rediscache"
	sqlitestore "callboard/internal/store/sqlite"
	"callboard/internal/webhook"
	"callboard/pkg/logger"
	"callboard/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

type repositories struct {
	webhooks  webhook.Repository
	calls     calls.Repository
	clients   clients.Repository
	services  services.Repository
	analytics analytics.Repository
}

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Missing .env is fine; real deployments set env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	repos, closeDB, err := openStorage(rootCtx, cfg)
	if err != nil {
		log.Error("storage init failed", "driver", cfg.Storage.Driver, "err", err)
		os.Exit(1)
	}
	defer closeDB()

	if cfg.Redis.Enabled {
		rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		repos.clients = rediscache.NewClientRepo(repos.clients, rdb, 0)
	}

	clientSvc := clients.NewService(repos.clients)
	catalog := services.NewCatalog(repos.services)
	webhookSvc := webhook.NewService(repos.webhooks, repos.calls, clientSvc, repos.clients)
	analyticsSvc := analytics.NewService(repos.analytics)

	h := httpapi.Handlers{
		Auth:      authManager,
		Clients:   clientSvc,
		Calls:     repos.calls,
		Services:  catalog,
		Analytics: analyticsSvc,
		Webhooks:  webhookSvc,
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, h, auth.RequireAccessToken(authManager))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}

func openStorage(ctx context.Context, cfg config.Config) (repositories, func(), error) {
	var db *sql.DB
	var err error

	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		db, err = utils.OpenSQLite(ctx, "sqlite", utils.SQLiteConfig{Path: cfg.SQLite.Path})
		if err != nil {
			return repositories{}, nil, err
		}
		if err := sqlitestore.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, err
		}
		return repositories{
			webhooks:  sqlitestore.NewWebhookRepo(db),
			calls:     sqlitestore.NewCallRepo(db),
			clients:   sqlitestore.NewClientRepo(db),
			services:  sqlitestore.NewServiceRepo(db),
			analytics: sqlitestore.NewAnalyticsRepo(db),
		}, func() { _ = db.Close() }, nil

	default:
		db, err = utils.OpenPostgres(ctx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			return repositories{}, nil, err
		}
		if err := pgstore.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, err
		}
		return repositories{
			webhooks:  pgstore.NewWebhookRepo(db),
			calls:     pgstore.NewCallRepo(db),
			clients:   pgstore.NewClientRepo(db),
			services:  pgstore.NewServiceRepo(db),
			analytics: pgstore.NewAnalyticsRepo(db),
		}, func() { _ = db.Close() }, nil
	}
}
