package recipe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// fileRecipe is the on-disk recipe document shape, shared by the YAML
// and JSON decoders.
type fileRecipe struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Serves      int      `yaml:"serves" json:"serves"`
	Tags        []string `yaml:"tags" json:"tags"`
	Ingredients []struct {
		Name   string  `yaml:"name" json:"name"`
		Amount float64 `yaml:"amount" json:"amount"`
		Unit   string  `yaml:"unit" json:"unit"`
	} `yaml:"ingredients" json:"ingredients"`
	Steps []struct {
		Instruction string   `yaml:"instruction" json:"instruction"`
		Safety      []string `yaml:"safety" json:"safety"`
		Check       *struct {
			Ingredient string  `yaml:"ingredient" json:"ingredient"`
			Amount     float64 `yaml:"amount" json:"amount"`
			Unit       string  `yaml:"unit" json:"unit"`
		} `yaml:"check" json:"check"`
	} `yaml:"steps" json:"steps"`
}

// LoadFile reads a recipe document. The format is chosen by extension:
// .json is JSON, everything else is parsed as YAML.
func LoadFile(path string) (*domain.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe file: %w", err)
	}

	var doc fileRecipe
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing recipe file %s: %w", path, err)
	}

	if doc.Name == "" {
		return nil, fmt.Errorf("recipe file %s: missing name", path)
	}
	if doc.ID == "" {
		doc.ID = slugify(doc.Name)
	}

	r := &domain.Recipe{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Serves:      doc.Serves,
		Tags:        doc.Tags,
	}

	for _, fi := range doc.Ingredients {
		unit, _ := domain.ParseUnit(fi.Unit)
		r.Ingredients = append(r.Ingredients, domain.RecipeIngredient{
			Name:   fi.Name,
			Amount: fi.Amount,
			Unit:   unit,
		})
	}

	for i, fs := range doc.Steps {
		step := domain.RecipeStep{
			Instruction: fs.Instruction,
			Safety:      fs.Safety,
		}
		if fs.Check != nil {
			unit, ok := domain.ParseUnit(fs.Check.Unit)
			if !ok {
				return nil, fmt.Errorf("recipe file %s: step %d check has unknown unit %q", path, i+1, fs.Check.Unit)
			}
			if fs.Check.Amount < 0 {
				return nil, fmt.Errorf("recipe file %s: step %d check has negative amount", path, i+1)
			}
			step.Check = &domain.IngredientCheck{
				Ingredient: fs.Check.Ingredient,
				Amount:     fs.Check.Amount,
				Unit:       unit,
			}
		}
		r.Steps = append(r.Steps, step)
	}

	return r, nil
}

// LoadDir loads every .yaml/.yml/.json recipe in a directory into the
// source. Unreadable files are skipped with a warning so one bad file
// doesn't take the whole pantry down.
func (s *MemorySource) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading recipe dir: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}
		r, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			s.log.Warn("skipping recipe %s: %v", entry.Name(), err)
			continue
		}
		s.Add(r)
		loaded++
	}

	s.log.Info("loaded %d recipes from %s", loaded, dir)
	return nil
}

// slugify derives a recipe ID from its name.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
