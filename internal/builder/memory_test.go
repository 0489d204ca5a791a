package builder

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepositoryCreate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &ScreenConfig{}); !errors.Is(err, ErrConfigIDRequired) {
		t.Fatalf("expected ErrConfigIDRequired, got %v", err)
	}

	cfg := &ScreenConfig{ID: "cfg-1", Name: "Home"}
	stored, err := repo.Create(ctx, cfg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The stored record is isolated from the caller's value.
	cfg.Name = "mutated"
	fetched, err := repo.GetByID(ctx, "cfg-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Name != "Home" {
		t.Fatalf("expected stored copy isolated, got %q", fetched.Name)
	}
	_ = stored

	if _, err := repo.Create(ctx, &ScreenConfig{ID: "cfg-1"}); !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
}

func TestMemoryRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetByID(context.Background(), "ghost")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Resource != "screen_config" || nf.Key != "ghost" {
		t.Fatalf("unexpected error detail: %+v", nf)
	}
}

func TestMemoryRepositoryListOrder(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	older := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)

	repo.Create(ctx, &ScreenConfig{ID: "b", CreatedAt: older})
	repo.Create(ctx, &ScreenConfig{ID: "c", CreatedAt: newer})
	repo.Create(ctx, &ScreenConfig{ID: "a", CreatedAt: older})

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 records, got %d", len(listed))
	}
	// Oldest first, id as tie-breaker.
	if listed[0].ID != "a" || listed[1].ID != "b" || listed[2].ID != "c" {
		t.Fatalf("unexpected order: %s,%s,%s", listed[0].ID, listed[1].ID, listed[2].ID)
	}
}

func TestMemoryRepositoryUpdateAndDelete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Update(ctx, &ScreenConfig{ID: "ghost"}); err == nil {
		t.Fatal("expected update of missing record to fail")
	}

	repo.Create(ctx, &ScreenConfig{ID: "cfg-1", Name: "Before"})
	updated, err := repo.Update(ctx, &ScreenConfig{ID: "cfg-1", Name: "After"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "After" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}

	if err := repo.Delete(ctx, "cfg-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "cfg-1"); err == nil {
		t.Fatal("expected delete of missing record to fail")
	}
}

func TestMemoryRepositoryActivate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	repo.Create(ctx, &ScreenConfig{ID: "cfg-1", IsActive: true})
	repo.Create(ctx, &ScreenConfig{ID: "cfg-2"})

	activated, err := repo.Activate(ctx, "cfg-2")
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !activated.IsActive {
		t.Fatal("expected target active")
	}

	listed, _ := repo.List(ctx)
	activeCount := 0
	for _, rec := range listed {
		if rec.IsActive {
			activeCount++
			if rec.ID != "cfg-2" {
				t.Fatalf("unexpected active record %q", rec.ID)
			}
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active record, got %d", activeCount)
	}

	if _, err := repo.Activate(ctx, "ghost"); err == nil {
		t.Fatal("expected activation of missing record to fail")
	}

	active, err := repo.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != "cfg-2" {
		t.Fatalf("expected cfg-2 active, got %q", active.ID)
	}
}

func TestMemoryRepositoryGetActiveNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Create(context.Background(), &ScreenConfig{ID: "cfg-1"})

	_, err := repo.GetActive(context.Background())
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
