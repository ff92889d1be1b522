package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apperrors "soulmatch/internal/errors"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratorSelectsBackend(t *testing.T) {
	assert.Equal(t, BackendOpenAI, NewGenerator(Settings{Endpoint: "https://llm.example.com/v1/chat/completions"}).Backend())
	assert.Equal(t, BackendGemini, NewGenerator(Settings{}).Backend())
	assert.Equal(t, BackendGemini, NewGenerator(Settings{Endpoint: "ftp://nope"}).Backend())
}

func TestOpenAIClientStreamsDeltas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "hello?", req.Messages[0].Content)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "data: not-json\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ignored\"}}]}\n\n")
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key", "test-model")
	var deltas []string
	text, err := client.Generate(context.Background(), "hello?", func(d string) error {
		deltas = append(deltas, d)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
	assert.Equal(t, []string{"Hello", " world"}, deltas)
}

func TestOpenAIClientWholeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"full report"}}]}`)
	}))
	defer server.Close()

	text, err := NewOpenAIClient(server.URL, "k", "m").Generate(context.Background(), "p", nil)
	require.NoError(t, err)
	assert.Equal(t, "full report", text)
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	_, err := NewOpenAIClient(server.URL, "k", "m").Generate(context.Background(), "p", nil)
	assert.ErrorContains(t, err, "missing choices")
}

func TestOpenAIClientClassifiesStatus(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusTooManyRequests)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", int(status.Load()))
	}))
	defer server.Close()
	client := NewOpenAIClient(server.URL, "k", "m")

	_, err := client.Generate(context.Background(), "p", nil)
	assert.True(t, apperrors.IsTransient(err))

	status.Store(http.StatusUnauthorized)
	_, err = client.Generate(context.Background(), "p", nil)
	var permanent *apperrors.PermanentError
	require.ErrorAs(t, err, &permanent)
	assert.Equal(t, http.StatusUnauthorized, permanent.StatusCode)
}

func TestOpenAIClientStopsWhenDeltaFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n\n")
	}))
	defer server.Close()

	boom := fmt.Errorf("client went away")
	text, err := NewOpenAIClient(server.URL, "k", "m").Generate(context.Background(), "p", func(string) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "a", text)
}

func TestGeminiResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello"), genai.Text(" there")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("other candidate")}}},
		},
	}
	assert.Equal(t, "Hello there", responseText(resp))
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
}

func TestOpenAIClientEmptyStreamIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "k", "m")
	called := false
	text, err := client.Generate(context.Background(), "p", func(string) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty stream")
	assert.Empty(t, text)
	assert.False(t, called)
}
