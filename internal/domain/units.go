package domain

import "strings"

// Unit is a cooking measurement unit. Teaspoon, tablespoon, cup, and
// pinch are volume units and convert freely between each other; gram is
// a mass unit and needs an ingredient density to compare against volumes.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitTeaspoon
	UnitTablespoon
	UnitCup
	UnitGram
	UnitPinch
)

// String returns the canonical unit name.
func (u Unit) String() string {
	switch u {
	case UnitTeaspoon:
		return "teaspoon"
	case UnitTablespoon:
		return "tablespoon"
	case UnitCup:
		return "cup"
	case UnitGram:
		return "gram"
	case UnitPinch:
		return "pinch"
	default:
		return "unknown"
	}
}

// IsVolume reports whether the unit measures volume.
func (u Unit) IsVolume() bool {
	switch u {
	case UnitTeaspoon, UnitTablespoon, UnitCup, UnitPinch:
		return true
	default:
		return false
	}
}

// teaspoons per unit, for volume units.
var teaspoonFactor = map[Unit]float64{
	UnitTeaspoon:   1.0,
	UnitTablespoon: 3.0,
	UnitCup:        48.0,
	UnitPinch:      0.125,
}

// unitNames maps the spellings seen on labels and in recipe files to
// Unit values. Lookups are lowercase.
var unitNames = map[string]Unit{
	"teaspoon":    UnitTeaspoon,
	"teaspoons":   UnitTeaspoon,
	"tsp":         UnitTeaspoon,
	"tsps":        UnitTeaspoon,
	"tablespoon":  UnitTablespoon,
	"tablespoons": UnitTablespoon,
	"tbsp":        UnitTablespoon,
	"tbsps":       UnitTablespoon,
	"cup":         UnitCup,
	"cups":        UnitCup,
	"gram":        UnitGram,
	"grams":       UnitGram,
	"g":           UnitGram,
	"gm":          UnitGram,
	"pinch":       UnitPinch,
	"pinches":     UnitPinch,
}

// ParseUnit normalizes a unit spelling ("tsp", "Grams", "cups") to a
// Unit. Returns UnitUnknown and false for unrecognized spellings.
func ParseUnit(s string) (Unit, bool) {
	u, ok := unitNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return UnitUnknown, false
	}
	return u, true
}

// ConvertAmount converts an amount between units. Volume-to-volume
// conversions go through a teaspoon base. Volume-to-mass (and back)
// requires the ingredient's density in grams per teaspoon; a density
// of 0 means unknown and yields ErrUnitMismatch rather than a guess.
func ConvertAmount(amount float64, from, to Unit, densityGramsPerTsp float64) (float64, error) {
	if from == to {
		return amount, nil
	}

	if from.IsVolume() && to.IsVolume() {
		return amount * teaspoonFactor[from] / teaspoonFactor[to], nil
	}

	if densityGramsPerTsp <= 0 {
		return 0, ErrUnitMismatch
	}

	switch {
	case from.IsVolume() && to == UnitGram:
		return amount * teaspoonFactor[from] * densityGramsPerTsp, nil
	case from == UnitGram && to.IsVolume():
		return amount / densityGramsPerTsp / teaspoonFactor[to], nil
	default:
		return 0, ErrUnitMismatch
	}
}
