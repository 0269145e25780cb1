package domain

import "context"

// RecipeSource provides recipes. Implementations can be in-memory
// (built-in), file-based, or API-backed.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// SessionStore holds cooking sessions for the lifetime of the process.
// Nothing is persisted across runs.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// ListActive returns sessions that are in progress, for the
	// status bar.
	ListActive(ctx context.Context) ([]*Session, error)
}

// KnowledgeBase answers ingredient questions: canonical names via
// aliases, tolerances, densities, and correction suggestions. Both the
// estimator and the validator consult it.
type KnowledgeBase interface {
	// Resolve maps any spelling or alias to the ingredient entry.
	// ok is false for unknown ingredients; callers then apply defaults.
	Resolve(name string) (Ingredient, bool)
	// CategoryTolerance returns the default tolerance for a category
	// like "spice", when the ingredient itself has no override.
	CategoryTolerance(category string) (float64, bool)
	// DefaultTolerance is the global fallback tolerance.
	DefaultTolerance() float64
	// Suggestion returns correction text for over/under-adding an
	// ingredient. ok is false when no specific text exists.
	Suggestion(name string, dir Direction) (string, bool)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string, session *Session) (*Intent, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or route through text-to-speech.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// SpeechProvider handles voice input/output. The no-op implementation
// is used when voice is disabled.
type SpeechProvider interface {
	Listen(ctx context.Context) (string, error)
	Speak(ctx context.Context, text string) error
}

// FrameAnalyzer is the vision collaborator: it looks at a captured
// frame and reports tools, items, and fill ratios. The core never
// touches image data itself.
type FrameAnalyzer interface {
	Analyze(ctx context.Context, imagePath string) (*FrameObservation, error)
}

// TextReader is the OCR collaborator: it extracts printed text
// (labels, measuring marks) from a captured frame.
type TextReader interface {
	ReadText(ctx context.Context, imagePath string) (string, error)
}
