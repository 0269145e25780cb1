package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/estimate"
	"github.com/hammamikhairi/souschef/internal/knowledge"
	"github.com/hammamikhairi/souschef/internal/logger"
	"github.com/hammamikhairi/souschef/internal/recipe"
	"github.com/hammamikhairi/souschef/internal/storage"
	"github.com/hammamikhairi/souschef/internal/validate"
)

func setupEngine(t *testing.T) (*Engine, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	recipes := recipe.NewMemorySource(log)
	store := storage.NewMemoryStore(log)
	kb := knowledge.NewMemoryBase(log)
	eng := New(recipes, store, kb, estimate.New(log), validate.New(kb, log), log)
	return eng, context.Background()
}

func TestStartSession(t *testing.T) {
	eng, ctx := setupEngine(t)

	tests := []struct {
		name     string
		recipeID string
		wantErr  bool
	}{
		{"valid recipe", "turmeric-rice", false},
		{"second valid recipe", "simple-dal", false},
		{"unknown recipe", "nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := eng.StartSession(ctx, tt.recipeID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, domain.ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if session.ID == "" {
				t.Fatal("session ID is empty")
			}
			if session.Status != domain.SessionInProgress {
				t.Fatalf("expected in_progress, got %s", session.Status)
			}
			if session.CurrentStepIndex != 0 {
				t.Fatalf("expected step index 0, got %d", session.CurrentStepIndex)
			}
			if session.TotalSteps == 0 {
				t.Fatal("expected total steps to be set")
			}
		})
	}
}

func TestAdvanceThroughRecipe(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx, "turmeric-rice")
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	// Turmeric rice has 7 steps. Advance through the remaining 6.
	for i := 0; i < 6; i++ {
		step, err := eng.Advance(ctx, session.ID)
		if err != nil {
			t.Fatalf("advance to step %d: %v", i+2, err)
		}
		if step == nil {
			t.Fatalf("advance to step %d returned nil step", i+2)
		}
	}

	// Advancing past the last step completes the session.
	step, err := eng.Advance(ctx, session.ID)
	if err != nil {
		t.Fatalf("final advance: %v", err)
	}
	if step != nil {
		t.Fatalf("expected nil step past the end, got %+v", step)
	}

	s, err := eng.Status(ctx, session.ID)
	if err != nil {
		t.Fatalf("getting status: %v", err)
	}
	if s.Status != domain.SessionCompleted {
		t.Fatalf("expected completed, got %s", s.Status)
	}

	// Advance on a completed session is a quiet no-op, not an error.
	step, err = eng.Advance(ctx, session.ID)
	if err != nil {
		t.Fatalf("advance on completed session: %v", err)
	}
	if step != nil {
		t.Fatalf("expected nil step, got %+v", step)
	}
	s, _ = eng.Status(ctx, session.ID)
	if s.Status != domain.SessionCompleted {
		t.Fatalf("status changed after no-op advance: %s", s.Status)
	}
}

func TestPrevious(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx, "simple-dal")
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	// On the first step, previous stays put.
	step, err := eng.Previous(ctx, session.ID)
	if err != nil {
		t.Fatalf("previous on first step: %v", err)
	}
	s, _ := eng.Status(ctx, session.ID)
	if s.CurrentStepIndex != 0 {
		t.Fatalf("expected index 0, got %d", s.CurrentStepIndex)
	}
	if step == nil {
		t.Fatal("expected the first step, got nil")
	}

	// Advance twice, go back once.
	eng.Advance(ctx, session.ID)
	eng.Advance(ctx, session.ID)
	if _, err := eng.Previous(ctx, session.ID); err != nil {
		t.Fatalf("previous: %v", err)
	}
	s, _ = eng.Status(ctx, session.ID)
	if s.CurrentStepIndex != 1 {
		t.Fatalf("expected index 1, got %d", s.CurrentStepIndex)
	}
}

func TestPreviousReopensCompletedSession(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx, "simple-dal")
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	// Run to completion (6 steps).
	for i := 0; i < 6; i++ {
		eng.Advance(ctx, session.ID)
	}
	s, _ := eng.Status(ctx, session.ID)
	if s.Status != domain.SessionCompleted {
		t.Fatalf("expected completed, got %s", s.Status)
	}

	// Previous reopens on the last step.
	if _, err := eng.Previous(ctx, session.ID); err != nil {
		t.Fatalf("previous: %v", err)
	}
	s, _ = eng.Status(ctx, session.ID)
	if s.Status != domain.SessionInProgress {
		t.Fatalf("expected in_progress after reopen, got %s", s.Status)
	}
	if s.CurrentStepIndex != 5 {
		t.Fatalf("expected last step index 5, got %d", s.CurrentStepIndex)
	}
}

func TestPreviousKeepsAdditionHistory(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx, "turmeric-rice")
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	est := domain.QuantityEstimate{Value: 1, Unit: domain.UnitTeaspoon, Confidence: 0.9, Method: "fill_ratio"}
	if err := eng.RecordAddition(ctx, session.ID, "cumin", est); err != nil {
		t.Fatalf("record addition: %v", err)
	}

	eng.Advance(ctx, session.ID)
	eng.Previous(ctx, session.ID)

	s, _ := eng.Status(ctx, session.ID)
	if len(s.Added) != 1 {
		t.Fatalf("addition history lost: %d entries", len(s.Added))
	}
}

func TestCheckQuantityFlow(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx, "turmeric-rice")
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	// Move to step 3, which checks 1 tsp of cumin.
	eng.Advance(ctx, session.ID)
	eng.Advance(ctx, session.ID)

	signals := []domain.QuantitySignal{
		{Source: domain.SourceFillRatio, Value: 0.95, Unit: domain.UnitTeaspoon, Confidence: 0.9},
	}
	est, result, err := eng.CheckQuantity(ctx, session.ID, signals)
	if err != nil {
		t.Fatalf("check quantity: %v", err)
	}

	if est.Value != 1.0 || est.Unit != domain.UnitTeaspoon {
		t.Fatalf("estimate: got %g %s, want 1 teaspoon", est.Value, est.Unit)
	}
	if result.Status != domain.ValidationMatch {
		t.Fatalf("got %s, want match", result.Status)
	}
	if result.Ingredient != "cumin" {
		t.Fatalf("got ingredient %q, want cumin", result.Ingredient)
	}

	// The addition was recorded against the current step.
	s, _ := eng.Status(ctx, session.ID)
	if len(s.Added) != 1 {
		t.Fatalf("expected 1 addition, got %d", len(s.Added))
	}
	if s.Added[0].StepIndex != 2 {
		t.Fatalf("addition recorded at step %d, want 2", s.Added[0].StepIndex)
	}
}

func TestCheckQuantityWithoutCheck(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx, "turmeric-rice")
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	// Step 1 (rinse rice) has no ingredient check.
	est, result, err := eng.CheckQuantity(ctx, session.ID, nil)
	if err != nil {
		t.Fatalf("check quantity: %v", err)
	}
	if result.Status != domain.ValidationNoCheck {
		t.Fatalf("got %s, want no_check_required", result.Status)
	}
	if est.Method != domain.MethodHeuristic {
		t.Fatalf("got method %q, want %s", est.Method, domain.MethodHeuristic)
	}

	// No session state was touched.
	s, _ := eng.Status(ctx, session.ID)
	if len(s.Added) != 0 || len(s.Deviations) != 0 {
		t.Fatalf("session mutated: %d additions, %d deviations", len(s.Added), len(s.Deviations))
	}
}

func TestCheckQuantityRecordsDeviation(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx, "turmeric-rice")
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	// Step 3 checks 1 tsp cumin; a heaped full spoon reads as 1.5 tsp,
	// which is a minor deviation at the spice tolerance.
	eng.Advance(ctx, session.ID)
	eng.Advance(ctx, session.ID)

	signals := []domain.QuantitySignal{
		{Source: domain.SourceFillRatio, Value: 0.95, Unit: domain.UnitTeaspoon, Heaped: true, Confidence: 0.9},
	}
	_, result, err := eng.CheckQuantity(ctx, session.ID, signals)
	if err != nil {
		t.Fatalf("check quantity: %v", err)
	}
	if result.Status != domain.ValidationMinor {
		t.Fatalf("got %s, want minor_deviation", result.Status)
	}

	s, _ := eng.Status(ctx, session.ID)
	if len(s.Deviations) != 1 {
		t.Fatalf("expected 1 recorded deviation, got %d", len(s.Deviations))
	}
}

func TestReset(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx, "turmeric-rice")
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	eng.Advance(ctx, session.ID)
	est := domain.QuantityEstimate{Value: 1, Unit: domain.UnitTeaspoon, Confidence: 0.9, Method: "fill_ratio"}
	eng.RecordAddition(ctx, session.ID, "cumin", est)

	if err := eng.Reset(ctx, session.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}

	s, _ := eng.Status(ctx, session.ID)
	if s.CurrentStepIndex != 0 {
		t.Fatalf("expected step 0 after reset, got %d", s.CurrentStepIndex)
	}
	if s.Status != domain.SessionInProgress {
		t.Fatalf("expected in_progress, got %s", s.Status)
	}
	if len(s.Added) != 0 || len(s.Deviations) != 0 {
		t.Fatalf("history not cleared: %d additions, %d deviations", len(s.Added), len(s.Deviations))
	}
}

func TestSummarize(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx, "turmeric-rice")
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	eng.Advance(ctx, session.ID)
	est := domain.QuantityEstimate{Value: 1, Unit: domain.UnitTeaspoon, Confidence: 0.9, Method: "fill_ratio"}
	eng.RecordAddition(ctx, session.ID, "cumin", est)

	summary, err := eng.Summarize(ctx, session.ID)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.RecipeName != "Golden Turmeric Rice" {
		t.Fatalf("got recipe %q", summary.RecipeName)
	}
	if summary.CurrentStep != 1 || summary.TotalSteps != 7 {
		t.Fatalf("got step %d/%d, want 1/7", summary.CurrentStep, summary.TotalSteps)
	}
	if summary.AdditionsCount != 1 {
		t.Fatalf("got %d additions, want 1", summary.AdditionsCount)
	}
	if summary.Narrate() == "" {
		t.Fatal("narration is empty")
	}
}

func TestStatusUnknownSession(t *testing.T) {
	eng, ctx := setupEngine(t)

	_, err := eng.Status(ctx, "no-such-session")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateID(t *testing.T) {
	a := generateID()
	b := generateID()

	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %q (len %d)", a, len(a))
	}
	for _, c := range a {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("non-hex character %q in id %q", c, a)
		}
	}
	if a == b {
		t.Fatalf("expected distinct IDs, got %q twice", a)
	}
}
