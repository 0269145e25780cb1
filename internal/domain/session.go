package domain

import "time"

// Session is the state of one pass through a recipe's steps. It is a
// plain value with no internal locking: callers that dispatch commands
// from more than one goroutine (say a voice pipeline next to the
// keyboard REPL) must serialize every mutation against a single
// Session through one lock or one command loop. The engine is the only
// package that mutates sessions, through Advance, Previous,
// RecordAddition, and Reset.
type Session struct {
	ID               string
	RecipeID         string
	RecipeName       string
	TotalSteps       int
	CurrentStepIndex int
	Status           SessionStatus
	Added            []Addition         // append-only addition history
	Deviations       []ValidationResult // every non-match validation, for the summary
	StartedAt        time.Time
	UpdatedAt        time.Time
}

// Addition records one ingredient addition. The history is append-only:
// a correction ("I added another half teaspoon") is a new entry, never
// an edit, so the whole session stays auditable.
type Addition struct {
	Ingredient string
	Amount     float64
	Unit       Unit
	Confidence float64 // confidence of the estimate that produced this entry
	StepIndex  int
	At         time.Time
}

// SessionStatus tracks the lifecycle of a cooking session.
type SessionStatus int

const (
	SessionNotStarted SessionStatus = iota
	SessionInProgress
	SessionCompleted
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionNotStarted:
		return "not_started"
	case SessionInProgress:
		return "in_progress"
	case SessionCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
