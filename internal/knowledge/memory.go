// Package knowledge provides the ingredient knowledge base: canonical
// names, aliases, tolerance bands, densities, and correction
// suggestions.
package knowledge

import (
	"strings"
	"sync"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.KnowledgeBase = (*MemoryBase)(nil)

// GlobalDefaultTolerance applies when neither the ingredient nor its
// category defines one.
const GlobalDefaultTolerance = 0.25

// MemoryBase holds ingredient knowledge in memory. Safe for concurrent
// reads; mutations (Put) only happen during startup loading.
type MemoryBase struct {
	mu          sync.RWMutex
	ingredients map[string]domain.Ingredient // canonical name -> entry
	aliases     map[string]string            // alias -> canonical name
	categories  map[string]float64           // category -> default tolerance
	defaultTol  float64
	log         *logger.Logger
}

// NewMemoryBase creates a knowledge base preloaded with the built-in
// pantry entries.
func NewMemoryBase(log *logger.Logger) *MemoryBase {
	b := &MemoryBase{
		ingredients: make(map[string]domain.Ingredient),
		aliases:     make(map[string]string),
		categories: map[string]float64{
			"spice":     0.25,
			"seasoning": 0.20,
			"liquid":    0.10,
		},
		defaultTol: GlobalDefaultTolerance,
		log:        log,
	}
	b.seed()
	return b
}

// Put registers an ingredient, replacing any previous entry, and
// indexes its aliases.
func (b *MemoryBase) Put(ing domain.Ingredient) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := normalize(ing.Name)
	b.ingredients[key] = ing
	for _, alias := range ing.Aliases {
		b.aliases[normalize(alias)] = key
	}
}

// Resolve maps any spelling or alias to the ingredient entry.
func (b *MemoryBase) Resolve(name string) (domain.Ingredient, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	key := normalize(name)
	if ing, ok := b.ingredients[key]; ok {
		return ing, true
	}
	if canonical, ok := b.aliases[key]; ok {
		return b.ingredients[canonical], true
	}
	b.log.Debug("unknown ingredient %q, defaults apply", name)
	return domain.Ingredient{Name: key}, false
}

// CategoryTolerance returns the default tolerance for a category.
func (b *MemoryBase) CategoryTolerance(category string) (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tol, ok := b.categories[normalize(category)]
	return tol, ok
}

// DefaultTolerance is the global fallback tolerance.
func (b *MemoryBase) DefaultTolerance() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.defaultTol
}

// Suggestion returns specific correction text for over/under-adding an
// ingredient, or ok=false so the caller falls back to generic text.
func (b *MemoryBase) Suggestion(name string, dir domain.Direction) (string, bool) {
	ing, ok := b.Resolve(name)
	if !ok || ing.Corrections == nil {
		return "", false
	}
	text, ok := ing.Corrections[dir]
	return text, ok
}

// normalize folds an ingredient spelling for lookup: lowercase,
// trimmed, underscores treated as spaces.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// seed loads the built-in pantry. Tolerances and correction text follow
// the kitchen rules of thumb: salt is the least forgiving, spices the
// most, liquids measured by the cup sit in between.
func (b *MemoryBase) seed() {
	entries := []domain.Ingredient{
		{
			Name:               "turmeric",
			Aliases:            []string{"haldi", "turmeric powder"},
			Category:           "spice",
			DensityGramsPerTsp: 3.1,
			Corrections: map[domain.Direction]string{
				domain.DirectionOver:  "Balance the bitterness with yogurt, lemon juice, or a pinch of sugar.",
				domain.DirectionUnder: "Add a small pinch more to reach the recipe amount.",
			},
		},
		{
			Name:               "cumin",
			Aliases:            []string{"jeera", "cumin seeds", "ground cumin"},
			Category:           "spice",
			DensityGramsPerTsp: 2.1,
			Corrections: map[domain.Direction]string{
				domain.DirectionOver:  "The flavor is strong. Consider balancing with coriander or more base.",
				domain.DirectionUnder: "Add a bit more for the intended flavor profile.",
			},
		},
		{
			Name:               "coriander",
			Aliases:            []string{"dhania", "coriander powder"},
			Category:           "spice",
			DensityGramsPerTsp: 1.8,
		},
		{
			Name:               "chili powder",
			Aliases:            []string{"chilli powder", "red chili powder", "lal mirch"},
			Category:           "spice",
			Tolerance:          0.20,
			DensityGramsPerTsp: 2.7,
			Corrections: map[domain.Direction]string{
				domain.DirectionOver:  "Balance the heat with yogurt, cream, or coconut milk.",
				domain.DirectionUnder: "Add more carefully, to taste.",
			},
		},
		{
			Name:               "salt",
			Aliases:            []string{"table salt", "namak", "sea salt"},
			Category:           "seasoning",
			Tolerance:          0.15,
			DensityGramsPerTsp: 5.9,
			Corrections: map[domain.Direction]string{
				domain.DirectionOver:  "Too much salt. Balance with lemon juice, sugar, or more liquid and base ingredients.",
				domain.DirectionUnder: "Add a small pinch more salt, carefully.",
			},
		},
		{
			Name:               "sugar",
			Aliases:            []string{"cheeni", "white sugar"},
			Category:           "seasoning",
			DensityGramsPerTsp: 4.2,
		},
		{
			Name:               "oil",
			Aliases:            []string{"vegetable oil", "cooking oil", "sunflower oil"},
			Category:           "liquid",
			DensityGramsPerTsp: 4.5,
		},
		{
			Name:               "water",
			Category:           "liquid",
			Tolerance:          0.15,
			DensityGramsPerTsp: 4.93,
		},
		{
			Name:               "rice",
			Aliases:            []string{"basmati rice", "chawal"},
			Category:           "grain",
			DensityGramsPerTsp: 4.0,
		},
	}

	for _, ing := range entries {
		b.Put(ing)
	}
	b.log.Debug("knowledge base seeded with %d ingredients", len(entries))
}
