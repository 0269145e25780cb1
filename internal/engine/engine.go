// Package engine implements the cooking session state machine: ordered
// steps, cumulative additions, and validation against the recipe.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/estimate"
	"github.com/hammamikhairi/souschef/internal/logger"
	"github.com/hammamikhairi/souschef/internal/validate"
)

// Engine manages cooking sessions. It depends only on interfaces and
// the two core components, and is fully testable with in-memory
// implementations.
type Engine struct {
	recipes   domain.RecipeSource
	store     domain.SessionStore
	kb        domain.KnowledgeBase
	estimator *estimate.Estimator
	validator *validate.Validator
	log       *logger.Logger
}

// New creates a cooking engine with the given dependencies.
func New(recipes domain.RecipeSource, store domain.SessionStore, kb domain.KnowledgeBase,
	est *estimate.Estimator, val *validate.Validator, log *logger.Logger) *Engine {
	return &Engine{
		recipes:   recipes,
		store:     store,
		kb:        kb,
		estimator: est,
		validator: val,
		log:       log,
	}
}

// ListRecipes returns all available recipes.
func (e *Engine) ListRecipes(ctx context.Context) ([]domain.RecipeSummary, error) {
	return e.recipes.List(ctx)
}

// GetRecipe returns a full recipe by ID.
func (e *Engine) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	return e.recipes.Get(ctx, id)
}

// SearchRecipes finds recipes matching the query by name or tag.
func (e *Engine) SearchRecipes(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	return e.recipes.Search(ctx, query)
}

// StartSession begins a new cooking session for the given recipe. A
// recipe with no steps starts out already completed.
func (e *Engine) StartSession(ctx context.Context, recipeID string) (*domain.Session, error) {
	recipe, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               generateID(),
		RecipeID:         recipe.ID,
		RecipeName:       recipe.Name,
		TotalSteps:       len(recipe.Steps),
		CurrentStepIndex: 0,
		Status:           domain.SessionInProgress,
		StartedAt:        now,
		UpdatedAt:        now,
	}
	if len(recipe.Steps) == 0 {
		session.Status = domain.SessionCompleted
	}

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("started session %s for recipe %q (%d steps)", session.ID, recipe.Name, len(recipe.Steps))
	return session, nil
}

// CurrentStep returns the current step, its 0-based index, and the
// step count. The step is nil once the session is completed.
func (e *Engine) CurrentStep(ctx context.Context, sessionID string) (*domain.RecipeStep, int, int, error) {
	session, recipe, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, 0, 0, err
	}

	idx := session.CurrentStepIndex
	if session.Status == domain.SessionCompleted || idx >= len(recipe.Steps) {
		return nil, idx, len(recipe.Steps), nil
	}
	return &recipe.Steps[idx], idx, len(recipe.Steps), nil
}

// Advance moves the session to the next step and returns it. Past the
// last step the session becomes completed and nil is returned; calling
// Advance on a completed session is a no-op, not an error.
func (e *Engine) Advance(ctx context.Context, sessionID string) (*domain.RecipeStep, error) {
	session, recipe, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == domain.SessionCompleted {
		e.log.Debug("session %s already completed, advance is a no-op", sessionID)
		return nil, nil
	}

	now := time.Now()
	nextIdx := session.CurrentStepIndex + 1
	if nextIdx >= len(recipe.Steps) {
		session.CurrentStepIndex = len(recipe.Steps)
		session.Status = domain.SessionCompleted
		session.UpdatedAt = now
		if err := e.store.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("saving session: %w", err)
		}
		e.log.Info("session %s completed", sessionID)
		return nil, nil
	}

	session.CurrentStepIndex = nextIdx
	session.UpdatedAt = now
	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Debug("session %s advanced to step %d/%d", sessionID, nextIdx+1, len(recipe.Steps))
	return &recipe.Steps[nextIdx], nil
}

// Previous moves back one step without touching the addition history —
// backward navigation never erases what already happened. Stepping
// back from a completed session reopens it on its last step.
func (e *Engine) Previous(ctx context.Context, sessionID string) (*domain.RecipeStep, error) {
	session, recipe, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(recipe.Steps) == 0 {
		return nil, nil
	}

	switch {
	case session.Status == domain.SessionCompleted:
		session.CurrentStepIndex = len(recipe.Steps) - 1
		session.Status = domain.SessionInProgress
	case session.CurrentStepIndex > 0:
		session.CurrentStepIndex--
	default:
		// Already on the first step.
		return &recipe.Steps[0], nil
	}

	session.UpdatedAt = time.Now()
	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Debug("session %s moved back to step %d/%d", sessionID, session.CurrentStepIndex+1, len(recipe.Steps))
	return &recipe.Steps[session.CurrentStepIndex], nil
}

// RecordAddition appends an ingredient addition to the session history.
// Pure append: no validation happens here, and corrections later are
// new entries rather than edits.
func (e *Engine) RecordAddition(ctx context.Context, sessionID, ingredient string, est domain.QuantityEstimate) error {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	session.Added = append(session.Added, domain.Addition{
		Ingredient: ingredient,
		Amount:     est.Value,
		Unit:       est.Unit,
		Confidence: est.Confidence,
		StepIndex:  session.CurrentStepIndex,
		At:         time.Now(),
	})
	session.UpdatedAt = time.Now()

	if err := e.store.Save(ctx, session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("session %s: recorded %g %s of %s at step %d",
		sessionID, est.Value, est.Unit, ingredient, session.CurrentStepIndex)
	return nil
}

// ValidateCurrent validates the current step's ingredient check against
// the session's cumulative additions. Steps without a check (and
// completed sessions) return no_check_required. Deviations are appended
// to the session's audit list for the end-of-session summary.
func (e *Engine) ValidateCurrent(ctx context.Context, sessionID string) (domain.ValidationResult, error) {
	session, recipe, err := e.load(ctx, sessionID)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	idx := session.CurrentStepIndex
	if session.Status == domain.SessionCompleted || idx >= len(recipe.Steps) {
		return domain.ValidationResult{Status: domain.ValidationNoCheck, Confidence: 1.0}, nil
	}

	result := e.validator.ValidateStep(session, recipe.Steps[idx])

	if result.Status != domain.ValidationMatch && result.Status != domain.ValidationNoCheck {
		session.Deviations = append(session.Deviations, result)
		session.UpdatedAt = time.Now()
		if err := e.store.Save(ctx, session); err != nil {
			return result, fmt.Errorf("saving session: %w", err)
		}
	}
	return result, nil
}

// CheckQuantity fuses the given signals into an estimate for the
// current step's checked ingredient, records the addition, and
// validates the step. When the current step has no check the estimate
// is still returned (with a no_check_required result) so the assistant
// can narrate what it sees without touching session state.
func (e *Engine) CheckQuantity(ctx context.Context, sessionID string, signals []domain.QuantitySignal) (domain.QuantityEstimate, domain.ValidationResult, error) {
	session, recipe, err := e.load(ctx, sessionID)
	if err != nil {
		return domain.QuantityEstimate{}, domain.ValidationResult{}, err
	}

	var check *domain.IngredientCheck
	idx := session.CurrentStepIndex
	if session.Status != domain.SessionCompleted && idx < len(recipe.Steps) {
		check = recipe.Steps[idx].Check
	}

	ingredient := "unknown"
	if check != nil {
		ingredient = check.Ingredient
	}

	est := e.estimator.Estimate(signals, ingredient)
	if check == nil {
		return est, domain.ValidationResult{Status: domain.ValidationNoCheck, Confidence: est.Confidence}, nil
	}

	if err := e.RecordAddition(ctx, sessionID, check.Ingredient, est); err != nil {
		return est, domain.ValidationResult{}, err
	}
	result, err := e.ValidateCurrent(ctx, sessionID)
	return est, result, err
}

// Status returns the full session state.
func (e *Engine) Status(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.store.Load(ctx, sessionID)
}

// Reset rewinds the session to a fresh start: step zero, empty
// histories. The old history is discarded, so this is the one operation
// that isn't append-only — it models starting the dish over.
func (e *Engine) Reset(ctx context.Context, sessionID string) error {
	session, recipe, err := e.load(ctx, sessionID)
	if err != nil {
		return err
	}

	session.CurrentStepIndex = 0
	session.Status = domain.SessionInProgress
	if len(recipe.Steps) == 0 {
		session.Status = domain.SessionCompleted
	}
	session.Added = nil
	session.Deviations = nil
	session.UpdatedAt = time.Now()

	if err := e.store.Save(ctx, session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("session %s reset", sessionID)
	return nil
}

// load fetches a session and its recipe together.
func (e *Engine) load(ctx context.Context, sessionID string) (*domain.Session, *domain.Recipe, error) {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading session: %w", err)
	}
	recipe, err := e.recipes.Get(ctx, session.RecipeID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting recipe: %w", err)
	}
	return session, recipe, nil
}
