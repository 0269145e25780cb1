package domain

// FrameObservation is the structured output of a single vision pass
// over a camera frame. It carries everything the signal normalizer
// needs; raw pixels never cross into the core.
type FrameObservation struct {
	Tools         []ToolDetection
	Items         []ItemDetection
	Uncertainties []string
}

// ToolDetection is a measuring implement found in frame.
type ToolDetection struct {
	Name       string  // "teaspoon", "tablespoon", "measuring cup"
	FillRatio  float64 // 0..1, occasionally above 1 when heaping
	Heaped     bool
	Confidence float64
}

// ItemDetection is an ingredient or object recognized in frame.
type ItemDetection struct {
	Name       string
	Confidence float64
}
