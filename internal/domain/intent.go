package domain

// IntentType classifies what the user wants to do. Command dispatch
// lives entirely in the presentation layer — the estimator and
// validator never see intents.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentListRecipes
	IntentSelectRecipe
	IntentStartCooking
	IntentNextStep
	IntentPreviousStep
	IntentRepeat
	IntentCheckQuantity // "how much is this" — estimate and validate
	IntentIdentify      // "what is this" — vision identification
	IntentStatus
	IntentReset
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentListRecipes:
		return "list_recipes"
	case IntentSelectRecipe:
		return "select_recipe"
	case IntentStartCooking:
		return "start_cooking"
	case IntentNextStep:
		return "next_step"
	case IntentPreviousStep:
		return "previous_step"
	case IntentRepeat:
		return "repeat"
	case IntentCheckQuantity:
		return "check_quantity"
	case IntentIdentify:
		return "identify"
	case IntentStatus:
		return "status"
	case IntentReset:
		return "reset"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. recipe ID for select
}
