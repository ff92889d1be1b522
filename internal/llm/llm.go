// Package llm talks to the model vendors that write the narrative report.
package llm

import (
	"context"
	"strings"
)

// Backend names
const (
	BackendOpenAI = "openai-compatible"
	BackendGemini = "gemini"
)

// Settings are the resolved vendor credentials for one request
type Settings struct {
	Endpoint string
	APIKey   string
	Model    string
}

// DeltaFunc receives each piece of generated text in arrival order. Returning
// an error aborts generation.
type DeltaFunc func(delta string) error

// Generator produces a report for a prompt. With a nil DeltaFunc it returns the
// whole text at once; otherwise it streams deltas and still returns the full
// accumulated text.
type Generator interface {
	Backend() string
	Generate(ctx context.Context, prompt string, onDelta DeltaFunc) (string, error)
}

// UsesCustomEndpoint reports whether settings select the OpenAI-compatible backend.
func UsesCustomEndpoint(s Settings) bool {
	return strings.HasPrefix(s.Endpoint, "http")
}

// NewGenerator selects the backend for settings: a custom http(s) endpoint
// means an OpenAI-compatible API, anything else uses the Gemini SDK.
func NewGenerator(s Settings) Generator {
	if UsesCustomEndpoint(s) {
		return NewOpenAIClient(s.Endpoint, s.APIKey, s.Model)
	}
	return NewGeminiClient(s.APIKey, s.Model)
}
