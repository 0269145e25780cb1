package vision

// systemPrompt frames the model as a kitchen perception system that
// answers only in JSON.
const systemPrompt = `You are the perception module of a kitchen assistant for
visually impaired cooks. You look at a single photo from a countertop camera
and report what you see as JSON. You never add prose outside the JSON.`

// analyzePrompt asks for the observation document the signal
// normalizer consumes.
const analyzePrompt = `Look at this photo and respond with exactly one JSON object:

{
  "tools": [
    {"name": "teaspoon|tablespoon|measuring cup", "fill_ratio": 0.0, "heaped": false, "confidence": 0.0}
  ],
  "items": [
    {"name": "ingredient or object name", "confidence": 0.0}
  ],
  "uncertainties": ["anything you are unsure about"]
}

Rules:
- "fill_ratio" is how full the measuring tool looks, 0.0 (empty) to 1.0 (level full).
- "heaped" is true when the contents mound above the rim.
- "confidence" is your own certainty from 0.0 to 1.0.
- Omit "tools" entries for anything that is not a measuring implement.
- If you see printed text on labels or measuring marks, include it as an item
  named exactly as written.
- Respond with the JSON object only.`
