package main

import (
	"context"
	"log/slog"

	"solar-system-server/internal/scene"
	"solar-system-server/internal/shared/config"
	"solar-system-server/internal/shared/redis"
)

// openSceneStore returns the Redis store when Redis is enabled and answers a
// ping, and the in-memory store otherwise. The returned func releases it.
func openSceneStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (scene.Repository, func()) {
	log := slog.With("component", "main", "operation", "open_scene_store")

	client, err := redis.Connect(ctx)
	if err != nil {
		log.Warn("Redis unreachable, falling back to in-memory scene store", "error", err)
	}
	if client == nil {
		return scene.NewMemoryRepository(ctx, cfg.Scene.TTL, logger), func() {}
	}

	return scene.NewRedisRepository(client.Client, cfg.Scene.TTL, logger), func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close redis client", "error", err)
		}
	}
}
