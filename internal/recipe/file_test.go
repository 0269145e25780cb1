package recipe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

const recipeYAML = `
name: Masala Chai
description: Spiced tea.
serves: 2
tags: [drink, quick]
ingredients:
  - name: water
    amount: 2
    unit: cups
  - name: sugar
    amount: 2
    unit: tsp
steps:
  - instruction: Bring two cups of water to a boil.
    safety:
      - Watch the pot, boiling water spits.
  - instruction: Add two teaspoons of sugar and the tea leaves.
    check:
      ingredient: sugar
      amount: 2
      unit: tsp
`

const recipeJSON = `{
  "name": "Quick Oats",
  "serves": 1,
  "steps": [
    {"instruction": "Combine oats and water, microwave for two minutes."}
  ]
}`

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chai.yaml")
	if err := os.WriteFile(path, []byte(recipeYAML), 0o644); err != nil {
		t.Fatalf("writing recipe: %v", err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("loading recipe: %v", err)
	}

	if r.ID != "masala-chai" {
		t.Fatalf("got ID %q, want masala-chai", r.ID)
	}
	if r.Name != "Masala Chai" || r.Serves != 2 {
		t.Fatalf("got %q serves %d", r.Name, r.Serves)
	}
	if len(r.Ingredients) != 2 || r.Ingredients[0].Unit != domain.UnitCup {
		t.Fatalf("ingredients not parsed: %+v", r.Ingredients)
	}
	if len(r.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(r.Steps))
	}
	if len(r.Steps[0].Safety) != 1 {
		t.Fatalf("safety warnings not parsed: %+v", r.Steps[0])
	}

	check := r.Steps[1].Check
	if check == nil {
		t.Fatal("step 2 check not parsed")
	}
	if check.Ingredient != "sugar" || check.Amount != 2 || check.Unit != domain.UnitTeaspoon {
		t.Fatalf("check fields wrong: %+v", check)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oats.json")
	if err := os.WriteFile(path, []byte(recipeJSON), 0o644); err != nil {
		t.Fatalf("writing recipe: %v", err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("loading recipe: %v", err)
	}
	if r.ID != "quick-oats" || len(r.Steps) != 1 {
		t.Fatalf("got ID %q with %d steps", r.ID, len(r.Steps))
	}
}

func TestLoadFileRejectsBadChecks(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown unit", `
name: Broken
steps:
  - instruction: Add stuff.
    check: {ingredient: salt, amount: 1, unit: handfuls}
`},
		{"negative amount", `
name: Broken
steps:
  - instruction: Add stuff.
    check: {ingredient: salt, amount: -1, unit: tsp}
`},
		{"missing name", `
description: No name at all.
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatalf("writing recipe: %v", err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadDirSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "good.yaml"), []byte(recipeYAML), 0o644)
	os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: ''\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a recipe"), 0o644)

	ctx := context.Background()
	s := NewMemorySource(logger.New(logger.LevelOff, nil))
	before, _ := s.List(ctx)
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("load dir: %v", err)
	}
	after, _ := s.List(ctx)

	if len(after) != len(before)+1 {
		t.Fatalf("expected exactly one extra recipe, got %d -> %d", len(before), len(after))
	}
}
