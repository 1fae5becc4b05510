package scene

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"time"

	"solar-system-server/internal/shared/errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "scene:"

// storedScene is the Redis document for a scene; the surface travels as PNG.
type storedScene struct {
	SystemName  string    `json:"system_name"`
	Requested   int       `json:"requested"`
	Bodies      []Body    `json:"bodies"`
	GeneratedAt time.Time `json:"generated_at"`
	SurfacePNG  []byte    `json:"surface_png"`
}

type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisRepository(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisRepository {
	logger.Debug("Initializing redis scene repository", "ttl", ttl)

	return &RedisRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (r *RedisRepository) Save(ctx context.Context, sessionID string, s *Scene) error {
	surface, err := Export(s)
	if err != nil {
		return errors.WrapInternal("failed to encode scene surface", err)
	}

	doc, err := json.Marshal(storedScene{
		SystemName:  s.SystemName,
		Requested:   s.Requested,
		Bodies:      s.Bodies,
		GeneratedAt: s.GeneratedAt,
		SurfacePNG:  surface,
	})
	if err != nil {
		return errors.WrapInternal("failed to marshal scene", err)
	}

	if err := r.client.Set(ctx, redisKey(sessionID), doc, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to store scene", "component", "scene_repository", "error", err)
		return errors.WrapExternal("failed to store scene", err)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (*Scene, error) {
	doc, err := r.client.Get(ctx, redisKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFoundf("no scene for session")
	}
	if err != nil {
		r.logger.Error("Failed to load scene", "component", "scene_repository", "error", err)
		return nil, errors.WrapExternal("failed to load scene", err)
	}

	var stored storedScene
	if err := json.Unmarshal(doc, &stored); err != nil {
		return nil, errors.WrapInternal("failed to unmarshal scene", err)
	}

	surface, err := decodeSurface(stored.SurfacePNG)
	if err != nil {
		return nil, errors.WrapInternal("failed to decode scene surface", err)
	}

	return &Scene{
		SystemName:  stored.SystemName,
		Requested:   stored.Requested,
		Bodies:      stored.Bodies,
		GeneratedAt: stored.GeneratedAt,
		Surface:     surface,
	}, nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return errors.WrapExternal("failed to delete scene", err)
	}
	return nil
}

func (r *RedisRepository) Backend() string {
	return "redis"
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decodeSurface(data []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
