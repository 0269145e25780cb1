package knowledge

import (
	"strings"
	"testing"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func newBase(t *testing.T) *MemoryBase {
	t.Helper()
	return NewMemoryBase(logger.New(logger.LevelOff, nil))
}

func TestResolveAliases(t *testing.T) {
	b := newBase(t)

	tests := []struct {
		spelling string
		want     string
		wantOK   bool
	}{
		{"turmeric", "turmeric", true},
		{"haldi", "turmeric", true},
		{"Turmeric Powder", "turmeric", true},
		{"JEERA", "cumin", true},
		{"chilli powder", "chili powder", true},
		{"red_chili_powder", "chili powder", true},
		{"  sea salt  ", "salt", true},
		{"dragon fruit", "dragon fruit", false},
	}

	for _, tt := range tests {
		t.Run(tt.spelling, func(t *testing.T) {
			ing, ok := b.Resolve(tt.spelling)
			if ok != tt.wantOK {
				t.Fatalf("ok=%v, want %v", ok, tt.wantOK)
			}
			if ing.Name != tt.want {
				t.Fatalf("got %q, want %q", ing.Name, tt.want)
			}
		})
	}
}

func TestToleranceChain(t *testing.T) {
	b := newBase(t)

	// Ingredient override.
	salt, _ := b.Resolve("salt")
	if salt.Tolerance != 0.15 {
		t.Fatalf("salt tolerance: got %g, want 0.15", salt.Tolerance)
	}

	// Category default for ingredients without an override.
	cumin, _ := b.Resolve("cumin")
	if cumin.Tolerance != 0 {
		t.Fatalf("cumin should have no override, got %g", cumin.Tolerance)
	}
	tol, ok := b.CategoryTolerance(cumin.Category)
	if !ok || tol != 0.25 {
		t.Fatalf("spice category tolerance: got %g (ok=%v), want 0.25", tol, ok)
	}

	// Unknown categories fall through to the global default.
	if _, ok := b.CategoryTolerance("exotic"); ok {
		t.Fatal("unexpected tolerance for unknown category")
	}
	if b.DefaultTolerance() != GlobalDefaultTolerance {
		t.Fatalf("default tolerance: got %g", b.DefaultTolerance())
	}
}

func TestSuggestions(t *testing.T) {
	b := newBase(t)

	text, ok := b.Suggestion("salt", domain.DirectionOver)
	if !ok {
		t.Fatal("expected an over-salt suggestion")
	}
	if !strings.Contains(text, "salt") {
		t.Fatalf("suggestion doesn't mention salt: %q", text)
	}

	// Aliases resolve for suggestions too.
	if _, ok := b.Suggestion("namak", domain.DirectionOver); !ok {
		t.Fatal("expected the alias to reach the salt suggestion")
	}

	// Coriander has no correction text.
	if _, ok := b.Suggestion("coriander", domain.DirectionUnder); ok {
		t.Fatal("unexpected suggestion for coriander")
	}

	if _, ok := b.Suggestion("dragon fruit", domain.DirectionOver); ok {
		t.Fatal("unexpected suggestion for unknown ingredient")
	}
}

func TestPutOverrides(t *testing.T) {
	b := newBase(t)

	b.Put(domain.Ingredient{
		Name:      "salt",
		Tolerance: 0.05,
		Category:  "seasoning",
	})

	salt, ok := b.Resolve("salt")
	if !ok || salt.Tolerance != 0.05 {
		t.Fatalf("override not applied: got %g (ok=%v)", salt.Tolerance, ok)
	}
}
