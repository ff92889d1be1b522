package analysis

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"soulmatch/internal/catalog"
	apperrors "soulmatch/internal/errors"
	"soulmatch/internal/models"
	"soulmatch/internal/observability"
	"soulmatch/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func friendProfile(name string, value int) models.Profile {
	answers := make([]int, catalog.Len(catalog.Default, models.ScenarioFriend))
	for i := range answers {
		answers[i] = value
	}
	return models.Profile{Version: 2, Name: name, Scenario: models.ScenarioFriend, Answers: answers}
}

func newTestClient(url string) (*Client, *[]time.Duration) {
	c := NewClient(url)
	c.Logger = observability.Discard()
	var delays []time.Duration
	c.Retry.Sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return c, &delays
}

func TestAnalyzeJSONResponse(t *testing.T) {
	host, guest := friendProfile("Ann", 5), friendProfile("Bo", 5)
	report := "[[VERDICT]]\nGreat pair\n[[STRENGTHS]]\nTrust\n[[FRICTIONS]]\nNone\n[[ADVICE]]\nKeep going"

	var got models.AnalyzeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.AnalyzeResponse{ReportText: report})
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL)
	var streamed []string
	cfg := &models.AIConfig{Model: "custom-model"}
	result, err := client.Analyze(context.Background(), host, guest, cfg, Callbacks{
		OnStream: func(text string) { streamed = append(streamed, text) },
	})
	require.NoError(t, err)

	assert.True(t, got.Stream)
	assert.Equal(t, CacheKey(catalog.Default, host, guest, nil), got.CacheKey)
	require.NotNil(t, got.Config)
	assert.Equal(t, "custom-model", got.Config.Model)
	assert.Contains(t, got.Prompt, "Ann")

	assert.Equal(t, []string{report}, streamed)
	assert.False(t, result.Degraded)
	assert.Equal(t, 100, result.CompatibilityScore)
	assert.Equal(t, report, result.Details)
	assert.Equal(t, service.Summary(models.ScenarioFriend, 100, false), result.Summary)
	require.NotNil(t, result.Sections)
	assert.Equal(t, "Great pair", result.Sections.Verdict)
	assert.Len(t, result.ComparisonMatrix, len(host.Answers))
}

func TestAnalyzeStreamsAccumulatedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		flusher := w.(http.Flusher)
		for _, chunk := range []string{"Hello", " world"} {
			io.WriteString(w, chunk)
			flusher.Flush()
		}
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL)
	var streamed []string
	result, err := client.Analyze(context.Background(), friendProfile("A", 1), friendProfile("B", 5), nil, Callbacks{
		OnStream: func(text string) { streamed = append(streamed, text) },
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello world", result.Details)
	assert.Nil(t, result.Sections)
	assert.Equal(t, 0, result.CompatibilityScore)
	require.NotEmpty(t, streamed)
	assert.Equal(t, "Hello world", streamed[len(streamed)-1])
	for i := 1; i < len(streamed); i++ {
		assert.True(t, strings.HasPrefix(streamed[i], streamed[i-1]))
	}
}

func TestAnalyzeRetriesTransientFailuresThenDegrades(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, delays := newTestClient(srv.URL)
	var retries []int
	result, err := client.Analyze(context.Background(), friendProfile("A", 3), friendProfile("B", 3), nil, Callbacks{
		OnRetry: func(attempt int) { retries = append(retries, attempt) },
	})
	require.NoError(t, err)

	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, []int{1, 2, 3}, retries)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, *delays)

	assert.True(t, result.Degraded)
	assert.Equal(t, 100, result.CompatibilityScore)
	assert.Equal(t, service.Summary(models.ScenarioFriend, 100, true), result.Summary)
	assert.True(t, strings.HasPrefix(result.Details, service.OfflineMarker+"\n\n"))
	assert.Contains(t, result.Details, "A")
}

func TestAnalyzeRecoversAfterTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, "report")
	}))
	defer srv.Close()

	client, delays := newTestClient(srv.URL)
	result, err := client.Analyze(context.Background(), friendProfile("A", 3), friendProfile("B", 3), nil, Callbacks{})
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []time.Duration{time.Second}, *delays)
	assert.False(t, result.Degraded)
	assert.Equal(t, "report", result.Details)
}

func TestAnalyzeDoesNotRetryPermanentStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, delays := newTestClient(srv.URL)
	result, err := client.Analyze(context.Background(), friendProfile("A", 3), friendProfile("B", 4), nil, Callbacks{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, *delays)
	assert.True(t, result.Degraded)
}

func TestAnalyzeStreamErrorTrailerDegrades(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Trailer", StreamErrorTrailer)
		io.WriteString(w, "partial")
		w.(http.Flusher).Flush()
		w.Header().Set(StreamErrorTrailer, "vendor stream broke")
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL)
	var streamed []string
	result, err := client.Analyze(context.Background(), friendProfile("A", 3), friendProfile("B", 3), nil, Callbacks{
		OnStream: func(text string) { streamed = append(streamed, text) },
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []string{"partial"}, streamed)
	assert.True(t, result.Degraded)
}

func TestAnalyzeScenarioMismatchMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	couple := make([]int, catalog.Len(catalog.Default, models.ScenarioCouple))
	host := models.Profile{Version: 2, Scenario: models.ScenarioCouple, Answers: couple}

	client, _ := newTestClient(srv.URL)
	_, err := client.Analyze(context.Background(), host, friendProfile("B", 3), nil, Callbacks{})
	require.Error(t, err)
	assert.True(t, apperrors.IsScenarioMismatch(err))
	assert.Equal(t, int32(0), calls.Load())
}

func TestAnalyzeCatalogLengthMismatchMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	short := friendProfile("B", 3)
	short.Answers = short.Answers[:3]

	client, _ := newTestClient(srv.URL)
	_, err := client.Analyze(context.Background(), friendProfile("A", 3), short, nil, Callbacks{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCatalogLengthMismatch(err))
	assert.Equal(t, int32(0), calls.Load())
}

func TestAnalyzeCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, _ := newTestClient(srv.URL)
	client.Retry.Sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}
	result, err := client.Analyze(ctx, friendProfile("A", 3), friendProfile("B", 3), nil, Callbacks{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestAnalyzeEmptyReportDegrades(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"empty stream", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}},
		{"empty json report", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(models.AnalyzeResponse{})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			client, delays := newTestClient(srv.URL)
			result, err := client.Analyze(context.Background(), friendProfile("A", 3), friendProfile("B", 3), nil, Callbacks{})
			require.NoError(t, err)

			assert.Equal(t, int32(1), calls.Load())
			assert.Empty(t, *delays)
			assert.True(t, result.Degraded)
			assert.True(t, strings.HasPrefix(result.Details, service.OfflineMarker))
			assert.Nil(t, result.Sections)
		})
	}
}
