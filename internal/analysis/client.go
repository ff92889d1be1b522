// Package analysis drives one compatibility analysis: local scoring, prompt
// construction and the cache-aware report request with retry and streaming.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"soulmatch/internal/catalog"
	apperrors "soulmatch/internal/errors"
	"soulmatch/internal/models"
	"soulmatch/internal/observability"
	"soulmatch/internal/service"
)

// StreamErrorTrailer is set by the report server when a stream fails after
// its first chunk was sent.
const StreamErrorTrailer = "X-Stream-Error"

// Callbacks observe an analysis in progress. Both are optional.
type Callbacks struct {
	// OnRetry gets the 1-based retry number before each backoff.
	OnRetry func(attempt int)
	// OnStream gets the full report text received so far, never just a delta.
	OnStream func(text string)
}

// Client requests narrative reports from the report server
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	Retry      apperrors.RetryConfig
	Catalog    catalog.Catalog
	Scoring    *service.ScoringService
	Prompts    *service.PromptBuilder
	Logger     *slog.Logger
	Metrics    *observability.Metrics
}

// NewClient returns a client for the analyze endpoint at endpoint, e.g.
// http://localhost:8001/api/analyze.
func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint: endpoint,
		HTTPClient: &http.Client{
			Timeout: 3 * time.Minute,
		},
		Retry:   apperrors.DefaultRetryConfig(),
		Catalog: catalog.Default,
		Scoring: service.NewScoringService(catalog.Default),
		Prompts: service.NewPromptBuilder(),
		Logger:  observability.Component(nil, "analysis"),
	}
}

// Analyze scores host against guest and fetches the narrative report.
//
// Scenario and catalog-length problems are returned before any request is
// made. Network and vendor failures are not returned: they produce a degraded
// result carrying the local score and the prompt. Only cancellation of ctx
// aborts with an error.
func (c *Client) Analyze(ctx context.Context, host, guest models.Profile, config *models.AIConfig, cb Callbacks) (*models.AnalysisResult, error) {
	aiCtx, err := c.Scoring.BuildContext(host, guest)
	if err != nil {
		return nil, err
	}
	prompt := c.Prompts.BuildPrompt(aiCtx)
	key := CacheKey(c.Catalog, aiCtx.Host, aiCtx.Guest, c.Logger)

	payload, err := json.Marshal(models.AnalyzeRequest{
		Prompt:   prompt,
		Stream:   true,
		Config:   config,
		CacheKey: key,
	})
	if err != nil {
		return nil, fmt.Errorf("encode analyze request: %w", err)
	}

	text, err := apperrors.Retry(ctx, c.Retry, func(ctx context.Context) (string, error) {
		return c.fetch(ctx, payload, cb.OnStream)
	}, func(attempt int, delay time.Duration, err error) {
		c.Logger.Warn("report request failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		c.Metrics.ClientRetry()
		if cb.OnRetry != nil {
			cb.OnRetry(attempt)
		}
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.Logger.Error("report unavailable, falling back to offline preview", "error", err)
		return degraded(aiCtx, prompt), nil
	}

	result := &models.AnalysisResult{
		CompatibilityScore: aiCtx.MatchScore,
		Summary:            service.Summary(aiCtx.Scenario, aiCtx.MatchScore, false),
		Details:            text,
		ComparisonMatrix:   aiCtx.ComparisonMatrix,
	}
	if sections, ok := service.ParseReport(text); ok {
		result.Sections = &sections
	}
	return result, nil
}

func degraded(aiCtx *models.AIContext, prompt string) *models.AnalysisResult {
	return &models.AnalysisResult{
		CompatibilityScore: aiCtx.MatchScore,
		Summary:            service.Summary(aiCtx.Scenario, aiCtx.MatchScore, true),
		Details:            service.OfflineMarker + "\n\n" + prompt,
		ComparisonMatrix:   aiCtx.ComparisonMatrix,
		Degraded:           true,
	}
}

// fetch performs one attempt. Transport failures and retryable statuses come
// back as TransientError; a stream that breaks after it started is permanent
// so observers never see a report restart from scratch.
func (c *Client) fetch(ctx context.Context, payload []byte, onStream func(string)) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &apperrors.PermanentError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &apperrors.TransientError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperrors.FromStatus(resp.StatusCode, string(body))
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		var out models.AnalyzeResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", &apperrors.PermanentError{Err: fmt.Errorf("decode report: %w", err)}
		}
		if out.ReportText == "" {
			return "", &apperrors.PermanentError{Err: errors.New("empty report")}
		}
		if onStream != nil {
			onStream(out.ReportText)
		}
		return out.ReportText, nil
	}

	text, err := ConsumeStream(resp.Body, onStream)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &apperrors.PermanentError{Err: fmt.Errorf("stream interrupted: %w", err)}
	}
	if reason := resp.Trailer.Get(StreamErrorTrailer); reason != "" {
		return "", &apperrors.PermanentError{Err: errors.New("stream failed on server: " + reason)}
	}
	if text == "" {
		return "", &apperrors.PermanentError{Err: errors.New("empty report")}
	}
	return text, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
