package estimate

import (
	"math"
	"testing"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func newEstimator(t *testing.T, opts ...Option) *Estimator {
	t.Helper()
	return New(logger.New(logger.LevelOff, nil), opts...)
}

func TestEstimateFillRatioBands(t *testing.T) {
	est := newEstimator(t)

	tests := []struct {
		name   string
		ratio  float64
		heaped bool
		want   float64
	}{
		{"nearly empty", 0.1, false, 0.25},
		{"third full", 0.3, false, 0.33},
		{"half full", 0.5, false, 0.5},
		{"three quarters", 0.75, false, 0.75},
		{"full", 0.95, false, 1.0},
		{"over full", 1.1, false, 1.0},
		{"heaped full", 0.95, true, 1.5},
		{"heaped half", 0.5, true, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := est.Estimate([]domain.QuantitySignal{{
				Source:     domain.SourceFillRatio,
				Value:      tt.ratio,
				Unit:       domain.UnitTeaspoon,
				Heaped:     tt.heaped,
				Confidence: 0.9,
			}}, "cumin")

			if math.Abs(got.Value-tt.want) > 1e-9 {
				t.Errorf("ratio %.2f (heaped=%v): got %g, want %g", tt.ratio, tt.heaped, got.Value, tt.want)
			}
			if got.Unit != domain.UnitTeaspoon {
				t.Errorf("got unit %s, want teaspoon", got.Unit)
			}
			if got.Method != "fill_ratio" {
				t.Errorf("got method %q, want fill_ratio", got.Method)
			}
		})
	}
}

func TestEstimateBandsAreMonotonic(t *testing.T) {
	est := newEstimator(t)

	prev := 0.0
	for ratio := 0.05; ratio <= 1.0; ratio += 0.05 {
		got := est.Estimate([]domain.QuantitySignal{{
			Source:     domain.SourceFillRatio,
			Value:      ratio,
			Unit:       domain.UnitTeaspoon,
			Confidence: 0.9,
		}}, "salt")
		if got.Value < prev {
			t.Fatalf("amount decreased at ratio %.2f: %g < %g", ratio, got.Value, prev)
		}
		prev = got.Value
	}
}

func TestEstimateSourcePriority(t *testing.T) {
	est := newEstimator(t)

	// Fill ratio beats OCR even when it appears later in the slice and
	// with lower confidence.
	got := est.Estimate([]domain.QuantitySignal{
		{Source: domain.SourceOCRMark, Text: "1 tbsp", Confidence: 0.95},
		{Source: domain.SourceFillRatio, Value: 0.5, Unit: domain.UnitTeaspoon, Confidence: 0.6},
	}, "turmeric")

	if got.Method != "fill_ratio" {
		t.Fatalf("got method %q, want fill_ratio", got.Method)
	}
	if got.Value != 0.5 {
		t.Fatalf("got value %g, want 0.5", got.Value)
	}
}

func TestEstimateFallsBackToOCR(t *testing.T) {
	est := newEstimator(t)

	// Fill ratio below the floor; the OCR mark should carry.
	got := est.Estimate([]domain.QuantitySignal{
		{Source: domain.SourceFillRatio, Value: 0.5, Unit: domain.UnitTeaspoon, Confidence: 0.1},
		{Source: domain.SourceOCRMark, Text: "1/2 tsp", Confidence: 0.8},
	}, "salt")

	if got.Method != "ocr_mark" {
		t.Fatalf("got method %q, want ocr_mark", got.Method)
	}
	if math.Abs(got.Value-0.5) > 1e-9 {
		t.Fatalf("got value %g, want 0.5", got.Value)
	}
	if got.Unit != domain.UnitTeaspoon {
		t.Fatalf("got unit %s, want teaspoon", got.Unit)
	}
}

func TestEstimateHeuristicDefault(t *testing.T) {
	est := newEstimator(t)

	tests := []struct {
		name    string
		signals []domain.QuantitySignal
	}{
		{"no signals", nil},
		{"all below floor", []domain.QuantitySignal{
			{Source: domain.SourceFillRatio, Value: 0.5, Unit: domain.UnitTeaspoon, Confidence: 0.2},
			{Source: domain.SourceOCRMark, Text: "1 tsp", Confidence: 0.1},
		}},
		{"unparseable OCR only", []domain.QuantitySignal{
			{Source: domain.SourceOCRMark, Text: "best before 2027", Confidence: 0.9},
		}},
		{"fill ratio with no unit", []domain.QuantitySignal{
			{Source: domain.SourceFillRatio, Value: 0.5, Unit: domain.UnitUnknown, Confidence: 0.9},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := est.Estimate(tt.signals, "cumin")
			if got.Method != domain.MethodHeuristic {
				t.Fatalf("got method %q, want %s", got.Method, domain.MethodHeuristic)
			}
			if got.Value != 0.25 || got.Unit != domain.UnitTeaspoon {
				t.Fatalf("got %g %s, want 0.25 teaspoon", got.Value, got.Unit)
			}
			if got.Confidence != 0.1 {
				t.Fatalf("got confidence %g, want 0.1", got.Confidence)
			}
		})
	}
}

func TestEstimateRejectsDepthVolume(t *testing.T) {
	est := newEstimator(t)

	// A depth signal alone yields the heuristic default, whatever its
	// confidence claims.
	got := est.Estimate([]domain.QuantitySignal{
		{Source: domain.SourceDepthVolume, Value: 2.0, Unit: domain.UnitTeaspoon, Confidence: 0.99},
	}, "sugar")

	if got.Method != domain.MethodHeuristic {
		t.Fatalf("depth signal was accepted: method %q", got.Method)
	}
}

func TestEstimateConfidenceFloorOption(t *testing.T) {
	est := newEstimator(t, WithConfidenceFloor(0.8))

	got := est.Estimate([]domain.QuantitySignal{
		{Source: domain.SourceFillRatio, Value: 0.5, Unit: domain.UnitTeaspoon, Confidence: 0.7},
	}, "salt")

	if got.Method != domain.MethodHeuristic {
		t.Fatalf("signal below raised floor was accepted: method %q", got.Method)
	}
}

func TestParseQuantityText(t *testing.T) {
	tests := []struct {
		text       string
		wantAmount float64
		wantUnit   domain.Unit
		wantOK     bool
	}{
		{"½ tsp", 0.5, domain.UnitTeaspoon, true},
		{"¼ tsp", 0.25, domain.UnitTeaspoon, true},
		{"1/2 teaspoon", 0.5, domain.UnitTeaspoon, true},
		{"1 tbsp", 1, domain.UnitTablespoon, true},
		{"100g", 100, domain.UnitGram, true},
		{"2.5 cups", 2.5, domain.UnitCup, true},
		{"SALT ½ tsp net wt", 0.5, domain.UnitTeaspoon, true},
		{"⅓ cup", 1.0 / 3.0, domain.UnitCup, true},
		{"no numbers here", 0, domain.UnitUnknown, false},
		{"500 widgets", 0, domain.UnitUnknown, false},
		{"", 0, domain.UnitUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			amount, unit, ok := ParseQuantityText(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok=%v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(amount-tt.wantAmount) > 1e-9 {
				t.Errorf("amount=%g, want %g", amount, tt.wantAmount)
			}
			if unit != tt.wantUnit {
				t.Errorf("unit=%s, want %s", unit, tt.wantUnit)
			}
		})
	}
}

func TestSignalsFromObservation(t *testing.T) {
	obs := &domain.FrameObservation{
		Tools: []domain.ToolDetection{
			{Name: "teaspoon", FillRatio: 0.5, Confidence: 0.9},
			{Name: "tablespoon", FillRatio: 0.3, Heaped: true, Confidence: 0.8},
			{Name: "whisk", FillRatio: 0.7, Confidence: 0.9}, // not a measuring tool
		},
	}

	signals := SignalsFromObservation(obs)
	if len(signals) != 2 {
		t.Fatalf("got %d signals, want 2", len(signals))
	}
	if signals[0].Unit != domain.UnitTeaspoon || signals[0].Value != 0.5 {
		t.Errorf("first signal: got %g %s", signals[0].Value, signals[0].Unit)
	}
	if signals[1].Unit != domain.UnitTablespoon || !signals[1].Heaped {
		t.Errorf("second signal: got %s heaped=%v", signals[1].Unit, signals[1].Heaped)
	}

	if got := SignalsFromObservation(nil); got != nil {
		t.Errorf("nil observation: got %v, want nil", got)
	}
}
