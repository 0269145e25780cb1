package domain

import "fmt"

// SignalSource identifies where a measurement signal came from. The
// numeric order is the fusion priority: lower value = consulted first.
type SignalSource int

const (
	// SourceFillRatio — a measuring spoon detected in frame with an
	// estimated fill ratio.
	SourceFillRatio SignalSource = iota
	// SourceOCRMark — text read off a label or measuring mark,
	// e.g. "1/2 tsp" or "100g".
	SourceOCRMark
	// SourceDepthVolume — depth-map volume estimation. Reserved: no
	// implementation produces this signal, and the estimator never
	// accepts it. It exists so the limitation is visible in the type
	// system instead of silently approximated.
	SourceDepthVolume
	// SourceFallback — the estimator's own last-resort default. Never
	// supplied by collaborators.
	SourceFallback
)

// String returns the source name, which doubles as the estimate's
// method tag for all sources except the fallback (see MethodHeuristic).
func (s SignalSource) String() string {
	switch s {
	case SourceFillRatio:
		return "fill_ratio"
	case SourceOCRMark:
		return "ocr_mark"
	case SourceDepthVolume:
		return "depth_volume"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// MethodHeuristic is the method tag on estimates produced by the
// fixed fallback when no sensed signal qualified.
const MethodHeuristic = "heuristic_default"

// QuantitySignal is one raw measurement observation, normalized into a
// common shape. Treated as immutable once produced.
type QuantitySignal struct {
	Source     SignalSource
	Value      float64 // fill ratio for SourceFillRatio, parsed amount otherwise
	Unit       Unit    // UnitUnknown when the collaborator couldn't resolve one
	Text       string  // raw text for SourceOCRMark
	Heaped     bool    // fill-ratio only: the spoon looked heaping full
	Confidence float64 // 0..1, the collaborator's own confidence
}

// QuantityEstimate is the fused result of one estimation call. It is
// always produced — when nothing qualified, the estimator returns its
// low-confidence default rather than failing.
type QuantityEstimate struct {
	Value      float64
	Unit       Unit
	Confidence float64 // 0..1
	Method     string  // provenance tag: which source produced this
}

// String renders the estimate for logs and narration.
func (e QuantityEstimate) String() string {
	return fmt.Sprintf("%g %s (confidence %.2f, method %s)", e.Value, e.Unit, e.Confidence, e.Method)
}
