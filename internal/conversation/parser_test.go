package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.IntentType
		wantPayload string
	}{
		// Next step variants
		{"next", domain.IntentNextStep, ""},
		{"next step", domain.IntentNextStep, ""},
		{"done", domain.IntentNextStep, ""},
		{"continue", domain.IntentNextStep, ""},
		{"n", domain.IntentNextStep, ""},

		// Previous step
		{"previous", domain.IntentPreviousStep, ""},
		{"go back", domain.IntentPreviousStep, ""},
		{"back", domain.IntentPreviousStep, ""},

		// Repeat
		{"repeat", domain.IntentRepeat, ""},
		{"again", domain.IntentRepeat, ""},
		{"say that again", domain.IntentRepeat, ""},
		{"what?", domain.IntentRepeat, ""},

		// Quantity check, including loose speech phrasing
		{"how much", domain.IntentCheckQuantity, ""},
		{"how much did I add", domain.IntentCheckQuantity, ""},
		{"check the quantity", domain.IntentCheckQuantity, ""},
		{"measure this", domain.IntentCheckQuantity, ""},

		// Identify
		{"what is this", domain.IntentIdentify, ""},
		{"what's this", domain.IntentIdentify, ""},
		{"identify", domain.IntentIdentify, ""},
		{"what do you see", domain.IntentIdentify, ""},

		// Status
		{"status", domain.IntentStatus, ""},
		{"where am i", domain.IntentStatus, ""},
		{"progress", domain.IntentStatus, ""},

		// Reset
		{"reset", domain.IntentReset, ""},
		{"start over", domain.IntentReset, ""},

		// Help
		{"help", domain.IntentHelp, ""},
		{"?", domain.IntentHelp, ""},

		// Quit
		{"quit", domain.IntentQuit, ""},
		{"exit", domain.IntentQuit, ""},
		{"q", domain.IntentQuit, ""},

		// Recipe list and start
		{"list", domain.IntentListRecipes, ""},
		{"recipes", domain.IntentListRecipes, ""},
		{"start", domain.IntentStartCooking, ""},
		{"let's cook", domain.IntentStartCooking, ""},

		// Selection by menu number
		{"1", domain.IntentSelectRecipe, "1"},
		{"12", domain.IntentSelectRecipe, "12"},

		// Selection by name
		{"select dal", domain.IntentSelectRecipe, "dal"},
		{"pick turmeric rice", domain.IntentSelectRecipe, "turmeric rice"},

		// Case insensitivity
		{"NEXT", domain.IntentNextStep, ""},
		{"Repeat", domain.IntentRepeat, ""},

		// Unknown keeps the raw input as payload
		{"add more garlic please", domain.IntentUnknown, "add more garlic please"},
		{"", domain.IntentUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input, nil)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.input, err)
			}
			if intent.Type != tt.wantType {
				t.Errorf("input %q: expected intent %s, got %s", tt.input, tt.wantType, intent.Type)
			}
			if intent.Payload != tt.wantPayload {
				t.Errorf("input %q: expected payload %q, got %q", tt.input, tt.wantPayload, intent.Payload)
			}
		})
	}
}

func TestKeywordParserTrimsWhitespace(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)

	intent, err := parser.Parse(context.Background(), "  next  ", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if intent.Type != domain.IntentNextStep {
		t.Fatalf("expected next-step intent, got %s", intent.Type)
	}
}
