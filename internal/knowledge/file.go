package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// fileDoc is the YAML shape of a knowledge-base overlay file.
type fileDoc struct {
	DefaultTolerance float64            `yaml:"default_tolerance"`
	Categories       map[string]float64 `yaml:"categories"`
	Ingredients      []fileIngredient   `yaml:"ingredients"`
}

type fileIngredient struct {
	Name        string   `yaml:"name"`
	Aliases     []string `yaml:"aliases"`
	Category    string   `yaml:"category"`
	Tolerance   float64  `yaml:"tolerance"`
	Density     float64  `yaml:"density_g_per_tsp"`
	Corrections struct {
		Over  string `yaml:"over"`
		Under string `yaml:"under"`
	} `yaml:"corrections"`
}

// LoadFile merges a YAML overlay into the knowledge base. Entries with
// the same canonical name replace the built-in ones; categories and
// the default tolerance are overridden when present.
func (b *MemoryBase) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading knowledge file: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing knowledge file: %w", err)
	}

	b.mu.Lock()
	if doc.DefaultTolerance > 0 {
		b.defaultTol = doc.DefaultTolerance
	}
	for cat, tol := range doc.Categories {
		b.categories[normalize(cat)] = tol
	}
	b.mu.Unlock()

	for _, fi := range doc.Ingredients {
		if fi.Name == "" {
			continue
		}
		ing := domain.Ingredient{
			Name:               fi.Name,
			Aliases:            fi.Aliases,
			Category:           fi.Category,
			Tolerance:          fi.Tolerance,
			DensityGramsPerTsp: fi.Density,
		}
		if fi.Corrections.Over != "" || fi.Corrections.Under != "" {
			ing.Corrections = make(map[domain.Direction]string)
			if fi.Corrections.Over != "" {
				ing.Corrections[domain.DirectionOver] = fi.Corrections.Over
			}
			if fi.Corrections.Under != "" {
				ing.Corrections[domain.DirectionUnder] = fi.Corrections.Under
			}
		}
		b.Put(ing)
	}

	b.log.Info("loaded knowledge overlay from %s (%d ingredients)", path, len(doc.Ingredients))
	return nil
}
