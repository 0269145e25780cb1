package storage

import (
	"context"
	"testing"
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func TestMemoryStoreCRUD(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log)
	ctx := context.Background()

	session := &domain.Session{
		ID:               "test-session-1",
		RecipeID:         "turmeric-rice",
		RecipeName:       "Golden Turmeric Rice",
		TotalSteps:       7,
		Status:           domain.SessionInProgress,
		CurrentStepIndex: 0,
		StartedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	// Save.
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Load.
	loaded, err := store.Load(ctx, "test-session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != session.ID {
		t.Fatalf("expected ID %s, got %s", session.ID, loaded.ID)
	}
	if loaded.RecipeName != "Golden Turmeric Rice" {
		t.Fatalf("expected recipe name to round-trip, got %q", loaded.RecipeName)
	}

	// Load nonexistent.
	_, err = store.Load(ctx, "nonexistent")
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Save overwrites.
	session.CurrentStepIndex = 3
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	loaded, err = store.Load(ctx, "test-session-1")
	if err != nil {
		t.Fatalf("load after re-save: %v", err)
	}
	if loaded.CurrentStepIndex != 3 {
		t.Fatalf("expected step index 3 after overwrite, got %d", loaded.CurrentStepIndex)
	}

	// Delete.
	if err := store.Delete(ctx, "test-session-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = store.Load(ctx, "test-session-1")
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Delete nonexistent.
	if err := store.Delete(ctx, "nonexistent"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreListActiveFilters(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log)
	ctx := context.Background()

	sessions := []*domain.Session{
		{ID: "s1", Status: domain.SessionNotStarted},
		{ID: "s2", Status: domain.SessionInProgress},
		{ID: "s3", Status: domain.SessionInProgress},
		{ID: "s4", Status: domain.SessionCompleted},
	}

	for _, s := range sessions {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save %s: %v", s.ID, err)
		}
	}

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 in-progress sessions, got %d", len(active))
	}
	for _, s := range active {
		if s.Status != domain.SessionInProgress {
			t.Fatalf("session %s is %s, expected in_progress", s.ID, s.Status)
		}
	}
}
