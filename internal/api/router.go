// Package api exposes the label rendering service over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sydlexius/scplabel/internal/api/middleware"
	"github.com/sydlexius/scplabel/internal/assets"
	"github.com/sydlexius/scplabel/internal/compose"
	"github.com/sydlexius/scplabel/internal/logging"
	"github.com/sydlexius/scplabel/internal/project"
)

// RouterDeps bundles all dependencies needed by the HTTP router.
type RouterDeps struct {
	Composer       *compose.Composer
	Assets         *assets.Manager
	ProjectService *project.Service
	LogManager     *logging.Manager
	Logger         *slog.Logger
}

// Router sets up all HTTP routes for the application.
type Router struct {
	composer       *compose.Composer
	assets         *assets.Manager
	projectService *project.Service
	logManager     *logging.Manager
	logger         *slog.Logger
}

// NewRouter creates a new Router with all routes configured.
func NewRouter(deps RouterDeps) *Router {
	return &Router{
		composer:       deps.Composer,
		assets:         deps.Assets,
		projectService: deps.ProjectService,
		logManager:     deps.LogManager,
		logger:         deps.Logger,
	}
}

// Handler returns the fully configured HTTP handler with middleware
// applied. ctx bounds the lifetime of the rate limiter's sweeper.
func (r *Router) Handler(ctx context.Context) http.Handler {
	renderLimit := middleware.NewRenderRateLimiter(ctx).Middleware
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", r.handleHealth)
	mux.HandleFunc("GET /api/v1/version", r.handleVersion)

	mux.Handle("POST /api/v1/render", renderLimit(http.HandlerFunc(r.handleRender)))
	mux.Handle("POST /api/v1/render/gif", renderLimit(http.HandlerFunc(r.handleRenderGIF)))

	mux.HandleFunc("GET /api/v1/classes", r.handleListClasses)
	mux.HandleFunc("GET /api/v1/hazards", r.handleListHazards)
	mux.HandleFunc("GET /api/v1/defaults", r.handleDefaults)

	mux.HandleFunc("GET /api/v1/projects", r.handleListProjects)
	mux.HandleFunc("POST /api/v1/projects", r.handleCreateProject)
	mux.HandleFunc("GET /api/v1/projects/{id}", r.handleGetProject)
	mux.HandleFunc("PUT /api/v1/projects/{id}", r.handleUpdateProject)
	mux.HandleFunc("DELETE /api/v1/projects/{id}", r.handleDeleteProject)
	mux.HandleFunc("GET /api/v1/projects/{id}/export", r.handleExportProject)
	mux.HandleFunc("POST /api/v1/projects/import", r.handleImportProject)

	mux.HandleFunc("GET /api/v1/assets", r.handleAssetInventory)
	mux.HandleFunc("POST /api/v1/assets/reload", r.handleReloadAssets)

	mux.HandleFunc("GET /api/v1/logging", r.handleGetLogging)
	mux.HandleFunc("PUT /api/v1/logging", r.handleUpdateLogging)

	var handler http.Handler = mux
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Logging(r.logger)(handler)
	return handler
}
