package engine

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// Summary is a digest of a cooking session, narrated on "status" and
// when the session ends.
type Summary struct {
	RecipeName      string
	CurrentStep     int // 0-based
	TotalSteps      int
	Status          domain.SessionStatus
	AdditionsCount  int
	Deviations      []domain.ValidationResult
	MajorDeviations int
}

// Summarize builds a summary of the session's progress so far.
func (e *Engine) Summarize(ctx context.Context, sessionID string) (*Summary, error) {
	session, recipe, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		RecipeName:     session.RecipeName,
		CurrentStep:    session.CurrentStepIndex,
		TotalSteps:     len(recipe.Steps),
		Status:         session.Status,
		AdditionsCount: len(session.Added),
		Deviations:     session.Deviations,
	}
	for _, d := range session.Deviations {
		if d.Status == domain.ValidationMajor {
			s.MajorDeviations++
		}
	}
	return s, nil
}

// Narrate renders the summary as one spoken-friendly sentence.
func (s *Summary) Narrate() string {
	base := fmt.Sprintf("%s: step %d of %d, %d ingredients added",
		s.RecipeName, s.CurrentStep+1, s.TotalSteps, s.AdditionsCount)
	if s.Status == domain.SessionCompleted {
		base = fmt.Sprintf("%s: all %d steps done, %d ingredients added",
			s.RecipeName, s.TotalSteps, s.AdditionsCount)
	}
	if s.MajorDeviations > 0 {
		return fmt.Sprintf("%s, %d major deviations from the recipe.", base, s.MajorDeviations)
	}
	return base + "."
}
