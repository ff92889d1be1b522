package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiClient generates reports through the Gemini SDK. A client is created
// per call because the API key may come from the request.
type GeminiClient struct {
	APIKey string
	Model  string
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{APIKey: apiKey, Model: model}
}

func (g *GeminiClient) Backend() string { return BackendGemini }

func (g *GeminiClient) Generate(ctx context.Context, prompt string, onDelta DeltaFunc) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()
	model := client.GenerativeModel(g.Model)

	if onDelta == nil {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", fmt.Errorf("gemini generate: %w", err)
		}
		text := responseText(resp)
		if text == "" {
			return "", errors.New("empty response from gemini")
		}
		return text, nil
	}

	var content strings.Builder
	iter := model.GenerateContentStream(ctx, genai.Text(prompt))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return content.String(), fmt.Errorf("gemini stream: %w", err)
		}
		delta := responseText(resp)
		if delta == "" {
			continue
		}
		content.WriteString(delta)
		if err := onDelta(delta); err != nil {
			return content.String(), err
		}
	}
	if content.Len() == 0 {
		return "", errors.New("empty stream from gemini")
	}
	return content.String(), nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
