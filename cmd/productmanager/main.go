package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mickaelbalensi/ProductManager/internal/app"
	"github.com/mickaelbalensi/ProductManager/internal/auth"
	"github.com/mickaelbalensi/ProductManager/internal/comments"
	jobmetrics "github.com/mickaelbalensi/ProductManager/internal/jobs"
	"github.com/mickaelbalensi/ProductManager/internal/observability"
	"github.com/mickaelbalensi/ProductManager/internal/platform/cache"
	"github.com/mickaelbalensi/ProductManager/internal/platform/db"
	"github.com/mickaelbalensi/ProductManager/internal/projects"
	"github.com/mickaelbalensi/ProductManager/internal/tasks"
	"github.com/mickaelbalensi/ProductManager/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, using development fallback")
	}

	dbpool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if cfg.PGMigrateOnStart {
		if err := db.Migrate(ctx, dbpool, logger); err != nil {
			logger.Error("migrate", slog.Any("error", err))
			os.Exit(1)
		}
	}

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr})
	if err != nil {
		// The project cache degrades to database reads; keep serving.
		logger.Warn("redis unavailable, project cache disabled", slog.Any("error", err))
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()
	jobMetrics := jobmetrics.NewMetrics(metrics.Registerer())

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	queue := jobs.NewClient(redisOpts, jobMetrics)
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()
	var notifier auth.Notifier
	if cfg.MailWelcomeEnabled {
		notifier = jobs.NewWelcomeNotifier(queue)
	}

	authCfg := cfg.AuthConfig()
	hasher, err := auth.NewHasherFromConfig(authCfg)
	if err != nil {
		logger.Error("init hasher", slog.Any("error", err))
		os.Exit(1)
	}
	tokens, err := auth.NewTokenServiceFromConfig(authCfg)
	if err != nil {
		logger.Error("init token service", slog.Any("error", err))
		os.Exit(1)
	}

	authRepo := auth.NewRepository(dbpool)
	gate := auth.NewGate(tokens, auth.NewIdentityResolver(authRepo), logger,
		auth.WithRejectionObserver(func(reason auth.RejectReason) {
			metrics.AuthRejected(string(reason))
		}))
	authService := auth.NewService(authRepo, hasher, tokens, notifier, logger)
	authHandler := auth.NewHandler(logger, authService, gate)

	projectCache := projects.NewCache(redisClient, cfg.ProjectCacheTTL, logger)
	projectService := projects.NewService(projects.NewRepository(dbpool), authRepo, projectCache, logger)
	projectHandler := projects.NewHandler(logger, projectService)

	taskService := tasks.NewService(tasks.NewRepository(dbpool), projectService, projectService)
	taskHandler := tasks.NewHandler(logger, taskService)

	commentService := comments.NewService(comments.NewRepository(dbpool), taskService, authRepo, projectService)
	commentHandler := comments.NewHandler(logger, commentService)

	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Database:        dbpool,
		Gate:            gate,
		AuthHandler:     authHandler,
		ProjectsHandler: projectHandler,
		TasksHandler:    taskHandler,
		CommentsHandler: commentHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
