package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
	"github.com/mickaelbalensi/ProductManager/internal/comments"
	"github.com/mickaelbalensi/ProductManager/internal/observability"
	"github.com/mickaelbalensi/ProductManager/internal/platform/httpx"
	"github.com/mickaelbalensi/ProductManager/internal/projects"
	"github.com/mickaelbalensi/ProductManager/internal/tasks"
	"github.com/mickaelbalensi/ProductManager/jobs"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	Database        Pinger
	Gate            *auth.Gate
	AuthHandler     *auth.Handler
	ProjectsHandler *projects.Handler
	TasksHandler    *tasks.Handler
	CommentsHandler *comments.Handler
	JobHandler      *jobs.Handler
	Metrics         *observability.Metrics
	Now             func() time.Time
}

// NewRouter constructs the chi.Router with the service defaults.
func NewRouter(params RouterParams) http.Handler {
	if params.Logger == nil {
		params.Logger = slog.Default()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"message":   "Hello ProductManager API!",
			"timestamp": params.Now().UTC().Format(time.RFC3339),
			"status":    "running",
			"endpoints": map[string]string{
				"auth":     "/auth (register, login, me)",
				"users":    "/users",
				"projects": "/projects (protected)",
				"tasks":    "/tasks (protected)",
				"health":   "/health",
			},
		})
	})

	r.Get("/health", healthHandler(params.Database, params.Logger))

	authLimit := 20
	if params.Config != nil && params.Config.AuthRateLimitPerMinute > 0 {
		authLimit = params.Config.AuthRateLimitPerMinute
	}
	r.Route("/auth", func(r chi.Router) {
		r.Use(RateLimit(authLimit))
		params.AuthHandler.MountRoutes(r)
	})
	r.Route("/users", func(r chi.Router) {
		r.Use(RateLimit(authLimit))
		params.AuthHandler.MountUserRoutes(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(params.Gate.Middleware)
		r.Route("/projects", func(r chi.Router) {
			params.ProjectsHandler.MountRoutes(r)
			params.TasksHandler.MountProjectRoutes(r)
		})
		r.Route("/tasks", func(r chi.Router) {
			params.TasksHandler.MountRoutes(r)
			params.CommentsHandler.MountRoutes(r)
		})
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

func healthHandler(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			httpx.JSON(w, http.StatusOK, map[string]string{"status": "OK", "database": "unknown"})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logger.Warn("health check", slog.Any("error", err))
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DEGRADED", "database": "unreachable"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "OK", "database": "connected"})
	}
}
