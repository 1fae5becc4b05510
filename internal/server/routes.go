package server

import (
	"log/slog"
	"net/http"

	"solar-system-server/internal/catalog"
	"solar-system-server/internal/middleware"
	"solar-system-server/internal/scene"
	sceneHandlers "solar-system-server/internal/scene/handlers"
	serverHandlers "solar-system-server/internal/server/handlers"
	"solar-system-server/internal/session"
	"solar-system-server/internal/web"
)

type Routes struct {
	sceneService *scene.Service
	catalogs     *catalog.Store
	sessions     *session.Manager
	logger       *slog.Logger
}

func NewRoutes(sceneService *scene.Service, catalogs *catalog.Store, sessions *session.Manager, logger *slog.Logger) *Routes {
	return &Routes{
		sceneService: sceneService,
		catalogs:     catalogs,
		sessions:     sessions,
		logger:       logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.sceneService)
	statusHandler := serverHandlers.NewStatusHandler(r.sceneService, r.catalogs)
	sceneHandler := sceneHandlers.NewSceneHandler(r.sceneService)
	withSession := middleware.SessionMiddleware(r.sessions)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.Handle("/api/server/status", statusHandler)

	// Session-scoped endpoints
	mux.Handle("/{$}", withSession(web.NewIndexHandler()))
	mux.Handle("/api/scene", withSession(http.HandlerFunc(sceneHandler.Get)))
	mux.Handle("/api/scene/generate", withSession(http.HandlerFunc(sceneHandler.Generate)))
	mux.Handle("/api/scene/image", withSession(http.HandlerFunc(sceneHandler.Image)))
	mux.Handle("/api/scene/export", withSession(http.HandlerFunc(sceneHandler.Export)))
	mux.Handle("/api/scene/inspect", withSession(http.HandlerFunc(sceneHandler.Inspect)))
	mux.Handle("/api/scene/leave", withSession(http.HandlerFunc(sceneHandler.Leave)))
	mux.Handle("/api/scene/animation", withSession(http.HandlerFunc(sceneHandler.AnimationStatus)))
	mux.Handle("/api/scene/animation/start", withSession(http.HandlerFunc(sceneHandler.StartAnimation)))
	mux.Handle("/api/scene/animation/stop", withSession(http.HandlerFunc(sceneHandler.StopAnimation)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/server/status"},
		"page_endpoints", []string{"/"},
		"scene_endpoints", []string{
			"/api/scene", "/api/scene/generate", "/api/scene/image", "/api/scene/export",
			"/api/scene/inspect", "/api/scene/leave",
			"/api/scene/animation", "/api/scene/animation/start", "/api/scene/animation/stop",
		},
	)

	return mux
}
