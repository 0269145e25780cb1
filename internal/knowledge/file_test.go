package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

const overlayYAML = `
default_tolerance: 0.30
categories:
  herb: 0.35
ingredients:
  - name: saffron
    aliases: [kesar]
    category: spice
    tolerance: 0.10
    density_g_per_tsp: 0.7
    corrections:
      over: "Saffron is potent. Dilute with more liquid."
  - name: salt
    category: seasoning
    tolerance: 0.10
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	if err := os.WriteFile(path, []byte(overlayYAML), 0o644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	b := NewMemoryBase(logger.New(logger.LevelOff, nil))
	if err := b.LoadFile(path); err != nil {
		t.Fatalf("loading overlay: %v", err)
	}

	// New ingredient with alias and density.
	saffron, ok := b.Resolve("kesar")
	if !ok || saffron.Name != "saffron" {
		t.Fatalf("alias resolve: got %q (ok=%v)", saffron.Name, ok)
	}
	if saffron.Tolerance != 0.10 || saffron.DensityGramsPerTsp != 0.7 {
		t.Fatalf("saffron fields: tol=%g density=%g", saffron.Tolerance, saffron.DensityGramsPerTsp)
	}
	if _, ok := b.Suggestion("saffron", domain.DirectionOver); !ok {
		t.Fatal("expected the saffron over-correction")
	}

	// Built-in entry replaced.
	salt, _ := b.Resolve("salt")
	if salt.Tolerance != 0.10 {
		t.Fatalf("salt override: got %g, want 0.10", salt.Tolerance)
	}

	// Category and default tolerance overrides.
	if tol, ok := b.CategoryTolerance("herb"); !ok || tol != 0.35 {
		t.Fatalf("herb category: got %g (ok=%v)", tol, ok)
	}
	if b.DefaultTolerance() != 0.30 {
		t.Fatalf("default tolerance: got %g, want 0.30", b.DefaultTolerance())
	}
}

func TestLoadFileMissing(t *testing.T) {
	b := NewMemoryBase(logger.New(logger.LevelOff, nil))
	if err := b.LoadFile("/nonexistent/kb.yaml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
