package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "soulmatch/internal/errors"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint
type OpenAIClient struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client
	Logger   *slog.Logger
}

func NewOpenAIClient(endpoint, apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Model:    model,
		Client: &http.Client{
			Timeout: 5 * time.Minute,
		},
		Logger: slog.Default(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (c *OpenAIClient) Backend() string { return BackendOpenAI }

// Generate calls the endpoint, streaming Server-Sent Events when onDelta is set.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, onDelta DeltaFunc) (string, error) {
	resp, err := c.post(ctx, chatRequest{
		Model:    c.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   onDelta != nil,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if onDelta == nil {
		return c.readWhole(resp.Body)
	}
	return c.readStream(resp.Body, onDelta)
}

func (c *OpenAIClient) post(ctx context.Context, body chatRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &apperrors.TransientError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("custom API error: %w", apperrors.FromStatus(resp.StatusCode, string(errBody)))
	}
	return resp, nil
}

func (c *OpenAIClient) readWhole(body io.Reader) (string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", errors.New("empty response from custom endpoint")
	}
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("invalid response format from custom endpoint: missing choices[0].message.content")
	}
	return parsed.Choices[0].Message.Content, nil
}

// readStream consumes `data: ` lines in order, forwarding each content delta.
func (c *OpenAIClient) readStream(body io.Reader, onDelta DeltaFunc) (string, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var content strings.Builder
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		if payload == "[DONE]" {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			c.logger().Debug("skipping undecodable stream chunk", "error", err)
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		content.WriteString(delta)
		if err := onDelta(delta); err != nil {
			return content.String(), err
		}
	}
	if err := scanner.Err(); err != nil {
		return content.String(), fmt.Errorf("read stream: %w", err)
	}
	if content.Len() == 0 {
		return "", errors.New("empty stream from custom endpoint")
	}
	return content.String(), nil
}

func (c *OpenAIClient) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
