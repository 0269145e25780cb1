// Package validate compares sensed ingredient quantities against
// recipe expectations. Classification uses per-ingredient tolerance
// bands from the knowledge base; the result is always data, never an
// error — bad measurements are statuses, not faults.
package validate

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// zeroExpectedEpsilon is the absolute slack (in the expected unit)
// when a step expects exactly 0 of an ingredient. The relative-
// deviation formula can't apply there, so anything beyond this much
// of a forbidden ingredient is a major deviation.
const zeroExpectedEpsilon = 0.05

// Validator checks session state against recipe steps. It is stateless
// over its inputs: calling it twice with the same session and step
// yields the identical result.
type Validator struct {
	kb  domain.KnowledgeBase
	log *logger.Logger
}

// New creates a validator backed by the given knowledge base.
func New(kb domain.KnowledgeBase, log *logger.Logger) *Validator {
	return &Validator{kb: kb, log: log}
}

// ValidateStep validates one step's ingredient check against the
// session's cumulative addition history. Steps without a check return
// no_check_required. The session is only read, never mutated.
func (v *Validator) ValidateStep(session *domain.Session, step domain.RecipeStep) domain.ValidationResult {
	if step.Check == nil {
		return domain.ValidationResult{Status: domain.ValidationNoCheck, Confidence: 1.0}
	}

	check := *step.Check
	ing, known := v.kb.Resolve(check.Ingredient)

	actual, confidence, mismatch := v.sumAdditions(session, check, ing)
	if mismatch != nil {
		v.log.Warn("unit mismatch validating %s: %g %s cannot be compared to %s",
			check.Ingredient, mismatch.Amount, mismatch.Unit, check.Unit)
		return domain.ValidationResult{
			Status:     domain.ValidationUnitMismatch,
			Ingredient: check.Ingredient,
			Expected:   check.Amount,
			Unit:       check.Unit,
			Actual:     mismatch.Amount,
			ActualUnit: mismatch.Unit,
			Confidence: confidence,
			Suggestion: fmt.Sprintf("I can't compare %s to %s for %s. Use the unit the recipe asks for.",
				mismatch.Unit, check.Unit, check.Ingredient),
		}
	}

	result := domain.ValidationResult{
		Ingredient: check.Ingredient,
		Expected:   check.Amount,
		Unit:       check.Unit,
		ActualUnit: check.Unit,
		Actual:     actual,
		Confidence: confidence,
	}

	tol := v.toleranceFor(ing, known)
	result.Status = classify(check.Amount, actual, tol)

	switch result.Status {
	case domain.ValidationMatch:
		// Nothing to correct.
	case domain.ValidationMinor:
		result.Suggestion = "This is close enough. You can proceed to the next step."
	case domain.ValidationMajor:
		result.Suggestion = v.suggestionFor(check, actual)
	}

	v.log.Info("validated %s: expected %g %s, actual %g, status %s",
		check.Ingredient, check.Amount, check.Unit, actual, result.Status)
	return result
}

// sumAdditions totals every session addition that resolves to the
// checked ingredient, converted to the check's unit. The returned
// confidence is the weakest contributing estimate (1.0 when nothing
// was added). A non-nil mismatch is the first addition that could not
// be converted.
func (v *Validator) sumAdditions(session *domain.Session, check domain.IngredientCheck, ing domain.Ingredient) (total, confidence float64, mismatch *domain.Addition) {
	confidence = 1.0
	if session == nil {
		return 0, confidence, nil
	}

	for i := range session.Added {
		add := session.Added[i]
		if !v.sameIngredient(add.Ingredient, ing.Name) {
			continue
		}

		converted, err := domain.ConvertAmount(add.Amount, add.Unit, check.Unit, ing.DensityGramsPerTsp)
		if err != nil {
			return 0, confAfter(confidence, add.Confidence), &session.Added[i]
		}

		total += converted
		confidence = confAfter(confidence, add.Confidence)
	}
	return total, confidence, nil
}

// sameIngredient reports whether a recorded spelling refers to the
// canonical ingredient, alias-aware.
func (v *Validator) sameIngredient(recorded, canonical string) bool {
	resolved, _ := v.kb.Resolve(recorded)
	return resolved.Name == canonical
}

func confAfter(current, added float64) float64 {
	if added > 0 && added < current {
		return added
	}
	return current
}

// toleranceFor resolves the tolerance chain: ingredient override,
// then category default, then the global default.
func (v *Validator) toleranceFor(ing domain.Ingredient, known bool) float64 {
	if known && ing.Tolerance > 0 {
		return ing.Tolerance
	}
	if known && ing.Category != "" {
		if tol, ok := v.kb.CategoryTolerance(ing.Category); ok {
			return tol
		}
	}
	return v.kb.DefaultTolerance()
}

// classify buckets the deviation. A zero expectation means the
// ingredient is forbidden at this step, so the relative formula gives
// way to an absolute threshold.
func classify(expected, actual, tol float64) domain.ValidationStatus {
	if expected == 0 {
		if math.Abs(actual) <= zeroExpectedEpsilon {
			return domain.ValidationMatch
		}
		return domain.ValidationMajor
	}

	rel := math.Abs(actual-expected) / expected
	switch {
	case rel <= tol:
		return domain.ValidationMatch
	case rel <= 2*tol:
		return domain.ValidationMinor
	default:
		return domain.ValidationMajor
	}
}

// suggestionFor builds the correction text for a major deviation:
// the knowledge base's ingredient-and-direction entry when one exists,
// otherwise a generic percentage message.
func (v *Validator) suggestionFor(check domain.IngredientCheck, actual float64) string {
	dir := domain.DirectionOver
	if actual < check.Amount {
		dir = domain.DirectionUnder
	}

	if text, ok := v.kb.Suggestion(check.Ingredient, dir); ok {
		return text
	}

	if check.Amount == 0 {
		return fmt.Sprintf("The recipe doesn't call for %s at this step.", check.Ingredient)
	}
	pct := math.Abs(actual-check.Amount) / check.Amount * 100
	return fmt.Sprintf("The amount differs from the recipe by %.0f%%.", pct)
}
