package domain

// Ingredient is one knowledge-base entry: the canonical name, the
// spellings it goes by, and the tuning knobs the validator needs.
type Ingredient struct {
	Name     string
	Aliases  []string
	Category string // "spice", "salt", "liquid", ... used for tolerance fallback

	// Tolerance is the permitted relative deviation (0.15 = ±15%)
	// before an addition counts as off-recipe. Zero means "no
	// override" — the category default or global default applies.
	Tolerance float64

	// DensityGramsPerTsp bridges volume and mass units for this
	// ingredient. Zero means unknown: volume/mass comparisons are
	// then reported as unit_mismatch instead of guessed.
	DensityGramsPerTsp float64

	// Corrections maps a deviation direction to suggestion text,
	// e.g. over-salted -> "balance with lemon juice or sugar".
	Corrections map[Direction]string
}
