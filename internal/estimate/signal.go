// Package estimate turns raw measurement signals into quantity
// estimates. The normalizer in this file converts collaborator output
// (vision detections, OCR text) into domain.QuantitySignal values; the
// estimator fuses them by source priority.
package estimate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// SignalsFromObservation converts a vision observation into fill-ratio
// signals, one per detected measuring tool whose name resolves to a
// unit. Tools with unrecognizable names produce nothing — the
// estimator simply moves on to the next source.
func SignalsFromObservation(obs *domain.FrameObservation) []domain.QuantitySignal {
	if obs == nil {
		return nil
	}

	var signals []domain.QuantitySignal
	for _, tool := range obs.Tools {
		unit, ok := spoonUnit(tool.Name)
		if !ok {
			continue
		}
		signals = append(signals, domain.QuantitySignal{
			Source:     domain.SourceFillRatio,
			Value:      tool.FillRatio,
			Unit:       unit,
			Heaped:     tool.Heaped,
			Confidence: tool.Confidence,
		})
	}
	return signals
}

// OCRSignal wraps raw OCR text as an ocr_mark signal. Parsing happens
// at fusion time so an unparseable mark is discarded, not fatal.
func OCRSignal(text string, confidence float64) domain.QuantitySignal {
	return domain.QuantitySignal{
		Source:     domain.SourceOCRMark,
		Text:       text,
		Confidence: confidence,
	}
}

// spoonUnit resolves a detected tool name to the unit its fill ratio
// measures.
func spoonUnit(name string) (domain.Unit, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(n, "table"):
		return domain.UnitTablespoon, true
	case strings.Contains(n, "tea"), n == "spoon":
		return domain.UnitTeaspoon, true
	case strings.Contains(n, "cup"):
		return domain.UnitCup, true
	default:
		return domain.UnitUnknown, false
	}
}

// vulgar fraction glyphs seen on measuring spoons and labels.
var vulgarFractions = map[string]float64{
	"½": 0.5, "¼": 0.25, "¾": 0.75,
	"⅓": 1.0 / 3.0, "⅔": 2.0 / 3.0,
	"⅛": 0.125, "⅜": 0.375, "⅝": 0.625, "⅞": 0.875,
}

// quantityPattern matches a leading quantity token (ascii fraction,
// decimal, integer, or vulgar fraction glyph) followed by a unit token.
var quantityPattern = regexp.MustCompile(`(\d+\s*/\s*\d+|\d+(?:\.\d+)?|[½¼¾⅓⅔⅛⅜⅝⅞])\s*([a-zA-Z]+)`)

// ParseQuantityText extracts an amount and unit from OCR text like
// "½ tsp", "1/2 teaspoon", or "100g". Returns ok=false when no
// quantity token is found or the unit spelling is unrecognized.
func ParseQuantityText(text string) (float64, domain.Unit, bool) {
	m := quantityPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, domain.UnitUnknown, false
	}

	amount, ok := parseAmountToken(m[1])
	if !ok {
		return 0, domain.UnitUnknown, false
	}

	unit, ok := domain.ParseUnit(m[2])
	if !ok {
		return 0, domain.UnitUnknown, false
	}
	return amount, unit, true
}

// parseAmountToken handles "0.5", "3", "1/2", and vulgar glyphs.
func parseAmountToken(tok string) (float64, bool) {
	tok = strings.TrimSpace(tok)

	if v, ok := vulgarFractions[tok]; ok {
		return v, true
	}

	if num, den, found := strings.Cut(tok, "/"); found {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
