// Package vision provides the frame-analysis collaborator: a client
// for an OpenAI-compatible vision model that reports measuring tools,
// fill ratios, and recognized items as structured JSON. The core never
// sees pixels — only the resulting observation.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.FrameAnalyzer = (*Client)(nil)

// Env var names for the vision endpoint credentials.
const (
	EnvVisionKey      = "VISION_API_KEY"
	EnvVisionEndpoint = "VISION_API_ENDPOINT"
)

// ── Wire types ───────────────────────────────────────────────────

type message struct {
	Role    string    `json:"role"`
	Content []content `json:"content"`
}

type content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type payload struct {
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Model       string    `json:"model,omitempty"`
}

type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// observationDoc is the JSON shape the model is prompted to return.
type observationDoc struct {
	Tools []struct {
		Name       string  `json:"name"`
		FillRatio  float64 `json:"fill_ratio"`
		Heaped     bool    `json:"heaped"`
		Confidence float64 `json:"confidence"`
	} `json:"tools"`
	Items []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"items"`
	Uncertainties []string `json:"uncertainties"`
}

// ── Client ───────────────────────────────────────────────────────

// Option configures the Client.
type Option func(*Client)

// WithModel overrides the model name sent in requests.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// Client talks to an OpenAI-compatible chat endpoint with image input.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
	log      *logger.Logger
}

// NewClient creates a vision client.
func NewClient(endpoint, apiKey string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 45 * time.Second},
		log:      log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Analyze sends a captured frame for analysis and parses the model's
// JSON reply into an observation.
func (c *Client) Analyze(ctx context.Context, imagePath string) (*domain.FrameObservation, error) {
	imgData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("vision: reading frame: %w", err)
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imgData)
	body := payload{
		Messages: []message{
			{
				Role:    "system",
				Content: []content{{Type: "text", Text: systemPrompt}},
			},
			{
				Role: "user",
				Content: []content{
					{Type: "text", Text: analyzePrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		Temperature: 0.2,
		MaxTokens:   512,
		Model:       c.model,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("vision: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("vision: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	c.log.Debug("vision: POST %s (%d bytes)", c.endpoint, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("vision: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision: API %s: %s", resp.Status, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("vision: unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("vision: empty response")
	}

	return parseObservation(result.Choices[0].Message.Content)
}

// parseObservation extracts the observation JSON from the model reply,
// tolerating markdown fences and surrounding prose.
func parseObservation(reply string) (*domain.FrameObservation, error) {
	raw := extractJSON(reply)

	var doc observationDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("vision: model reply is not valid observation JSON: %w", err)
	}

	obs := &domain.FrameObservation{Uncertainties: doc.Uncertainties}
	for _, t := range doc.Tools {
		obs.Tools = append(obs.Tools, domain.ToolDetection{
			Name:       t.Name,
			FillRatio:  t.FillRatio,
			Heaped:     t.Heaped,
			Confidence: t.Confidence,
		})
	}
	for _, it := range doc.Items {
		obs.Items = append(obs.Items, domain.ItemDetection{
			Name:       it.Name,
			Confidence: it.Confidence,
		})
	}
	return obs, nil
}

// extractJSON returns the first {...} block in the reply, stripping
// markdown code fences if present.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
