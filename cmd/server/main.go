package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"solar-system-server/internal/catalog"
	"solar-system-server/internal/middleware"
	"solar-system-server/internal/scene"
	"solar-system-server/internal/server"
	"solar-system-server/internal/session"
	"solar-system-server/internal/shared/config"
	"solar-system-server/internal/shared/logger"
	"solar-system-server/internal/shared/random"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogs, closeCatalog, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeCatalog()

	sceneLogger := slog.With("component", "scene")

	repo, closeStore := openSceneStore(ctx, cfg, sceneLogger)
	defer closeStore()

	rng := random.New(cfg.Scene.Seed)
	generator := scene.NewGenerator(scene.DefaultLayout(), catalogs, rng, sceneLogger)
	inspector := scene.NewInspector(catalogs, rng)
	animator := scene.NewAnimator(cfg.Scene.TickRate, cfg.Scene.AnimationMaxDuration, sceneLogger)
	sceneService := scene.NewService(generator, inspector, repo, animator, sceneLogger)
	defer sceneService.Shutdown()
	log.Info("Services initialized", "store", repo.Backend(), "seeded", cfg.Scene.Seed != 0)

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)
	routes := server.NewRoutes(sceneService, catalogs, sessions, slog.Default())

	corsMiddleware := middleware.NewCORS()
	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimit)
	handler := corsMiddleware.Middleware(rateLimiter.Middleware(routes.Setup()))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Solar system server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// loadCatalog returns the embedded catalog, or the file at cfg.Path with an
// optional watcher that reloads it on change.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalog.Store, func(), error) {
	log := slog.With("component", "catalog")

	if cfg.Path == "" {
		log.Info("Using embedded catalog")
		return catalog.NewStore(catalog.Default()), func() {}, nil
	}

	c, err := catalog.Load(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	store := catalog.NewStore(c)
	log.Info("Catalog loaded", "path", cfg.Path, "watch", cfg.Watch)

	if !cfg.Watch {
		return store, func() {}, nil
	}

	watcher, err := catalog.Watch(ctx, cfg.Path, store, slog.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to watch catalog: %w", err)
	}
	return store, func() {
		if err := watcher.Close(); err != nil {
			log.Error("Failed to close catalog watcher", "error", err)
		}
	}, nil
}
