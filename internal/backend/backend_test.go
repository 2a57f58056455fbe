package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestNew_Unavailable(t *testing.T) {
	tests := map[string]Config{
		"disabled":         {Provider: ProviderNone, APIKey: "key"},
		"missing key":      {Provider: ProviderGemini},
		"blank key":        {Provider: ProviderOpenAI, APIKey: "   "},
		"unknown provider": {Provider: "llama-farm", APIKey: "key"},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			gen, err := New(context.Background(), cfg, zap.NewNop())
			assert.Nil(t, gen)
			assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
		})
	}
}

func TestNew_SelectsProvider(t *testing.T) {
	gen, err := New(context.Background(), Config{Provider: "OpenAI", APIKey: "key"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, gen.Name())

	gen, err = New(context.Background(), Config{Provider: ProviderAnthropic, APIKey: "key"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, gen.Name())
}

func TestOpenAI_GenerateStructured(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"lead_score\":70}"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":4,"total_tokens":7}}`))
	}))
	defer srv.Close()

	gen := NewOpenAI(Config{APIKey: "key", BaseURL: srv.URL + "/v1/", Model: "local-model", MaxTokens: 128}, zap.NewNop())
	text, err := gen.GenerateStructured(context.Background(), "score this")
	require.NoError(t, err)

	assert.Equal(t, `{"lead_score":70}`, text)
	assert.Equal(t, "local-model", body["model"])
	assert.EqualValues(t, 128, body["max_tokens"])
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	gen := NewOpenAI(Config{APIKey: "key", BaseURL: srv.URL}, zap.NewNop())
	_, err := gen.GenerateStructured(context.Background(), "score this")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnthropic_GenerateStructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",
"content":[{"type":"text","text":"{\"lead_score\":"},{"type":"text","text":"42}"}],
"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":5}}`))
	}))
	defer srv.Close()

	gen := NewAnthropic(Config{APIKey: "key", BaseURL: srv.URL + "/", Model: "claude-test", MaxTokens: 256}, zap.NewNop())
	text, err := gen.GenerateStructured(context.Background(), "score this")
	require.NoError(t, err)
	assert.Equal(t, `{"lead_score":42}`, text)
}

func TestAnthropic_ServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	}))
	defer srv.Close()

	gen := NewAnthropic(Config{APIKey: "key", BaseURL: srv.URL + "/", MaxTokens: 256}, zap.NewNop())
	_, err := gen.GenerateStructured(context.Background(), "score this")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGemini_GenerateStructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-goog-api-key"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		cfg, _ := body["generationConfig"].(map[string]any)
		assert.Equal(t, "application/json", cfg["responseMimeType"])
		assert.EqualValues(t, 64, cfg["maxOutputTokens"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"insights\":\"ok\"}"}]}}]}`))
	}))
	defer srv.Close()

	gen, err := NewGemini(context.Background(),
		Config{APIKey: "key", Model: "models/gemini-test", BaseURL: srv.URL + "/", MaxTokens: 64},
		zap.NewNop(),
	)
	require.NoError(t, err)

	text, err := gen.GenerateStructured(context.Background(), "advise")
	require.NoError(t, err)
	assert.Equal(t, `{"insights":"ok"}`, text)
}

func TestGemini_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	gen, err := NewGemini(context.Background(), Config{APIKey: "key", BaseURL: srv.URL + "/"}, zap.NewNop())
	require.NoError(t, err)

	_, err = gen.GenerateStructured(context.Background(), "advise")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGemini_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	gen, err := NewGemini(context.Background(), Config{APIKey: "key", BaseURL: srv.URL + "/"}, zap.NewNop())
	require.NoError(t, err)

	_, err = gen.GenerateStructured(context.Background(), "advise")
	require.Error(t, err)

	var apiErr genai.APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Code)
}
