package scene

import (
	"context"
	"testing"
	"time"

	"solar-system-server/internal/shared/errors"
)

func newTestMemoryRepository(t *testing.T, ttl time.Duration) (*MemoryRepository, *time.Time) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	repo := NewMemoryRepository(ctx, ttl, discardLogger())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	return repo, &now
}

func TestMemoryRepositorySaveGet(t *testing.T) {
	repo, _ := newTestMemoryRepository(t, time.Hour)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.IsNotFound(err) {
		t.Fatalf("Expected not found, got %v", err)
	}

	first := testScene(Body{Name: "Terra"})
	if err := repo.Save(ctx, "sid", first); err != nil {
		t.Fatal(err)
	}
	got, err := repo.Get(ctx, "sid")
	if err != nil {
		t.Fatal(err)
	}
	if got != first {
		t.Error("Expected the saved scene back")
	}

	second := testScene(Body{Name: "Orion"})
	if err := repo.Save(ctx, "sid", second); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.Get(ctx, "sid"); got != second {
		t.Error("Expected Save to replace the scene")
	}
	if repo.Len() != 1 {
		t.Errorf("Expected one entry, got %d", repo.Len())
	}
}

func TestMemoryRepositoryExpiry(t *testing.T) {
	repo, now := newTestMemoryRepository(t, time.Minute)
	ctx := context.Background()

	if err := repo.Save(ctx, "old", testScene()); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(30 * time.Second)
	if err := repo.Save(ctx, "new", testScene()); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(45 * time.Second)

	if _, err := repo.Get(ctx, "old"); !errors.IsNotFound(err) {
		t.Errorf("Expected expired scene to be not found, got %v", err)
	}
	if _, err := repo.Get(ctx, "new"); err != nil {
		t.Errorf("Expected live scene, got %v", err)
	}

	repo.purgeExpired()
	if repo.Len() != 1 {
		t.Errorf("Expected one entry after purge, got %d", repo.Len())
	}
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo, _ := newTestMemoryRepository(t, time.Hour)
	ctx := context.Background()

	_ = repo.Save(ctx, "sid", testScene())
	if err := repo.Delete(ctx, "sid"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get(ctx, "sid"); !errors.IsNotFound(err) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "sid"); err != nil {
		t.Errorf("Expected deleting a missing scene to succeed, got %v", err)
	}
	if repo.Backend() != "memory" || repo.Ping(ctx) != nil {
		t.Error("Expected a healthy memory backend")
	}
}
