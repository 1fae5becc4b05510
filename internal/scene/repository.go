package scene

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"solar-system-server/internal/shared/errors"
)

// Repository keeps the current scene of each session. Save replaces the whole
// scene, so a reader always sees the last completed generation.
type Repository interface {
	Save(ctx context.Context, sessionID string, s *Scene) error
	Get(ctx context.Context, sessionID string) (*Scene, error)
	Delete(ctx context.Context, sessionID string) error
	Backend() string
	Ping(ctx context.Context) error
}

type memoryEntry struct {
	scene     *Scene
	expiresAt time.Time
}

// MemoryRepository is the in-process store used when Redis is disabled.
type MemoryRepository struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewMemoryRepository starts a janitor that purges expired scenes until ctx is done.
func NewMemoryRepository(ctx context.Context, ttl time.Duration, logger *slog.Logger) *MemoryRepository {
	logger.Debug("Initializing in-memory scene repository", "ttl", ttl)

	repo := &MemoryRepository{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
		logger:  logger,
	}
	go repo.cleanup(ctx)

	return repo
}

func (r *MemoryRepository) Save(_ context.Context, sessionID string, s *Scene) error {
	r.mu.Lock()
	r.entries[sessionID] = memoryEntry{scene: s, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, sessionID string) (*Scene, error) {
	r.mu.RLock()
	entry, ok := r.entries[sessionID]
	r.mu.RUnlock()

	if !ok || r.now().After(entry.expiresAt) {
		return nil, errors.NotFoundf("no scene for session")
	}
	return entry.scene, nil
}

func (r *MemoryRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.entries, sessionID)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Backend() string {
	return "memory"
}

func (r *MemoryRepository) Ping(context.Context) error {
	return nil
}

// Len reports how many scenes are held, expired ones included.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *MemoryRepository) cleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.purgeExpired()
		case <-ctx.Done():
			return
		}
	}
}

func (r *MemoryRepository) purgeExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	expired := 0
	for id, entry := range r.entries {
		if now.After(entry.expiresAt) {
			delete(r.entries, id)
			expired++
		}
	}

	if expired > 0 {
		r.logger.Debug("Purged expired scenes",
			"component", "scene_repository",
			"expired_count", expired,
			"remaining_count", len(r.entries))
	}
}
