// Package conversation provides intent parsing and user notification
// implementations. Keyword dispatch lives here, in the presentation
// layer — the estimator and validator never see raw text commands.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and
// simple patterns. Tuned for both typed commands and the looser
// phrasing that comes out of speech-to-text.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(next( step)?|done|continue|proceed|n)$`), domain.IntentNextStep},
		{regexp.MustCompile(`(?i)^(previous( step)?|go back|back|prev)$`), domain.IntentPreviousStep},
		{regexp.MustCompile(`(?i)^(repeat|again|say (that )?again|what\??|r)$`), domain.IntentRepeat},
		{regexp.MustCompile(`(?i)^(how much|check( the)? (quantity|amount)|measure( this)?|quantity)`), domain.IntentCheckQuantity},
		{regexp.MustCompile(`(?i)^(what is this|what'?s this|identify( this)?|recognize|what do you see)`), domain.IntentIdentify},
		{regexp.MustCompile(`(?i)^(status|where( am i)?|progress|summary|info)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(reset|start over|restart)$`), domain.IntentReset},
		{regexp.MustCompile(`(?i)^(help|what can you do|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|stop|end( session)?|q)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(list|recipes|show recipes|browse)$`), domain.IntentListRecipes},
		{regexp.MustCompile(`(?i)^(start|cook|go|begin|let'?s (go|cook))$`), domain.IntentStartCooking},
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string, session *domain.Session) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// Recipe selection by menu number, e.g. "1" or "2".
	if len(trimmed) <= 2 && isDigits(trimmed) {
		return &domain.Intent{Type: domain.IntentSelectRecipe, Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	// "select X" / "pick X" / "cook X" with an argument.
	lower := strings.ToLower(trimmed)
	for _, prefix := range []string{"select ", "pick ", "cook "} {
		if strings.HasPrefix(lower, prefix) {
			arg := strings.TrimSpace(trimmed[len(prefix):])
			if arg != "" {
				return &domain.Intent{Type: domain.IntentSelectRecipe, Payload: arg}, nil
			}
		}
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
