package domain

// ValidationStatus classifies the outcome of checking a step's
// expected amount against what was actually added.
type ValidationStatus int

const (
	// ValidationMatch — within tolerance.
	ValidationMatch ValidationStatus = iota
	// ValidationMinor — outside tolerance but within twice of it.
	ValidationMinor
	// ValidationMajor — more than twice the tolerance off.
	ValidationMajor
	// ValidationUnitMismatch — the added amounts can't be compared to
	// the expected unit (no density known for a volume/mass bridge).
	ValidationUnitMismatch
	// ValidationNoCheck — the step has no ingredient check.
	ValidationNoCheck
)

// String returns the wire-style status name.
func (s ValidationStatus) String() string {
	switch s {
	case ValidationMatch:
		return "match"
	case ValidationMinor:
		return "minor_deviation"
	case ValidationMajor:
		return "major_deviation"
	case ValidationUnitMismatch:
		return "unit_mismatch"
	case ValidationNoCheck:
		return "no_check_required"
	default:
		return "unknown"
	}
}

// Direction says whether the user added too much or too little.
type Direction int

const (
	DirectionOver Direction = iota
	DirectionUnder
)

// String returns "over" or "under".
func (d Direction) String() string {
	if d == DirectionUnder {
		return "under"
	}
	return "over"
}

// ValidationResult is the typed outcome of validating one step. The
// core never raises faults for bad measurements — every condition is
// representable here, and the presentation layer decides how to hedge
// based on Confidence.
type ValidationResult struct {
	Status     ValidationStatus
	Ingredient string
	Expected   float64
	Unit       Unit // unit of Expected and Actual
	Actual     float64
	ActualUnit Unit // unit the actual total was observed in, for mismatch reporting
	Confidence float64
	Suggestion string // empty when there is nothing to correct
}
