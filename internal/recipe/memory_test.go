package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func newSource(t *testing.T) (*MemorySource, context.Context) {
	t.Helper()
	return NewMemorySource(logger.New(logger.LevelOff, nil)), context.Background()
}

func TestListSeededRecipes(t *testing.T) {
	s, ctx := newSource(t)

	recipes, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("got %d recipes, want 2", len(recipes))
	}

	// Sorted by name.
	if recipes[0].Name > recipes[1].Name {
		t.Fatalf("not sorted: %q before %q", recipes[0].Name, recipes[1].Name)
	}
}

func TestGet(t *testing.T) {
	s, ctx := newSource(t)

	r, err := s.Get(ctx, "turmeric-rice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if r.Name != "Golden Turmeric Rice" {
		t.Fatalf("got %q", r.Name)
	}

	_, err = s.Get(ctx, "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	s, ctx := newSource(t)

	tests := []struct {
		query string
		want  int
	}{
		{"rice", 1},
		{"dal", 1},
		{"vegetarian", 2}, // tag on both
		{"RICE", 1},       // case-insensitive
		{"pizza", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := s.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("query %q: got %d results, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestSeedChecksResolveUnits(t *testing.T) {
	s, ctx := newSource(t)

	summaries, _ := s.List(ctx)
	for _, sum := range summaries {
		r, err := s.Get(ctx, sum.ID)
		if err != nil {
			t.Fatalf("get %s: %v", sum.ID, err)
		}
		for i, step := range r.Steps {
			if step.Check == nil {
				continue
			}
			if step.Check.Unit == domain.UnitUnknown {
				t.Errorf("%s step %d: check has unknown unit", r.ID, i+1)
			}
			if step.Check.Amount < 0 {
				t.Errorf("%s step %d: negative check amount", r.ID, i+1)
			}
			if step.Check.Ingredient == "" {
				t.Errorf("%s step %d: check without ingredient", r.ID, i+1)
			}
		}
	}
}
