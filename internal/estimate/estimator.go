package estimate

import (
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Estimation defaults.
const (
	// DefaultConfidenceFloor is the minimum confidence a signal needs
	// to qualify for fusion.
	DefaultConfidenceFloor = 0.3

	// fallbackAmount / fallbackConfidence are the fixed last-resort
	// estimate when nothing qualified: a quarter teaspoon at barely
	// any confidence, so the presentation layer knows to hedge.
	fallbackAmount     = 0.25
	fallbackConfidence = 0.1

	// heapedMultiplier scales a band amount when the spoon looks
	// heaping full.
	heapedMultiplier = 1.5
)

// Option configures the estimator.
type Option func(*Estimator)

// WithConfidenceFloor overrides the minimum qualifying confidence.
func WithConfidenceFloor(f float64) Option {
	return func(e *Estimator) { e.floor = f }
}

// Estimator fuses quantity signals into a single estimate. It is
// stateless and safe for concurrent use.
type Estimator struct {
	log   *logger.Logger
	floor float64
}

// New creates an estimator.
func New(log *logger.Logger, opts ...Option) *Estimator {
	e := &Estimator{log: log, floor: DefaultConfidenceFloor}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// fusion order. Exactly one source contributes per call so provenance
// stays unambiguous — confidences are never blended across sources.
var sourcePriority = []domain.SignalSource{
	domain.SourceFillRatio,
	domain.SourceOCRMark,
	domain.SourceDepthVolume,
}

// Estimate fuses the given signals into one estimate for the named
// ingredient. It never fails: when no signal clears the confidence
// floor with a resolvable unit, the fixed heuristic default is
// returned instead.
func (e *Estimator) Estimate(signals []domain.QuantitySignal, ingredient string) domain.QuantityEstimate {
	for _, source := range sourcePriority {
		for _, sig := range signals {
			if sig.Source != source {
				continue
			}
			if est, ok := e.fromSignal(sig); ok {
				e.log.Info("estimate for %q: %s", ingredient, est)
				return est
			}
		}
	}

	est := domain.QuantityEstimate{
		Value:      fallbackAmount,
		Unit:       domain.UnitTeaspoon,
		Confidence: fallbackConfidence,
		Method:     domain.MethodHeuristic,
	}
	e.log.Warn("no qualifying signal for %q, using heuristic default", ingredient)
	return est
}

// fromSignal tries to turn one signal into an estimate. ok is false
// when the signal doesn't qualify; fusion then moves on.
func (e *Estimator) fromSignal(sig domain.QuantitySignal) (domain.QuantityEstimate, bool) {
	if sig.Confidence < e.floor {
		e.log.Debug("signal %s below confidence floor (%.2f < %.2f)", sig.Source, sig.Confidence, e.floor)
		return domain.QuantityEstimate{}, false
	}

	switch sig.Source {
	case domain.SourceFillRatio:
		if sig.Unit == domain.UnitUnknown || !sig.Unit.IsVolume() {
			return domain.QuantityEstimate{}, false
		}
		return domain.QuantityEstimate{
			Value:      mapFillRatio(sig.Value, sig.Heaped),
			Unit:       sig.Unit,
			Confidence: sig.Confidence,
			Method:     domain.SourceFillRatio.String(),
		}, true

	case domain.SourceOCRMark:
		amount, unit, ok := ParseQuantityText(sig.Text)
		if !ok {
			e.log.Debug("discarding unparseable OCR mark %q", sig.Text)
			return domain.QuantityEstimate{}, false
		}
		return domain.QuantityEstimate{
			Value:      amount,
			Unit:       unit,
			Confidence: sig.Confidence,
			Method:     domain.SourceOCRMark.String(),
		}, true

	case domain.SourceDepthVolume:
		// Known limitation: depth-based volume estimation is not
		// implemented. The source exists so its absence is explicit;
		// any such signal is rejected, never approximated.
		e.log.Debug("rejecting depth_volume signal: not implemented")
		return domain.QuantityEstimate{}, false

	default:
		return domain.QuantityEstimate{}, false
	}
}

// mapFillRatio maps a spoon fill ratio onto the discrete amounts a
// cook actually measures. The bands are calibrated against how people
// read spoons, not a linear fit.
func mapFillRatio(ratio float64, heaped bool) float64 {
	var amount float64
	switch {
	case ratio < 0.2:
		amount = 0.25
	case ratio < 0.4:
		amount = 0.33
	case ratio < 0.6:
		amount = 0.5
	case ratio < 0.9:
		amount = 0.75
	default:
		amount = 1.0
	}
	if heaped {
		amount *= heapedMultiplier
	}
	return amount
}
