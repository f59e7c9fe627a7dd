package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingAPIRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

func fakeEmbeddingServer(t *testing.T, dims int, failures *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failures != nil && failures.Add(-1) >= 0 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit_error"}}`))
			return
		}

		var req embeddingAPIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		data := make([]map[string]any, len(req.Input))
		for i := range req.Input {
			vec := make([]float64, dims)
			vec[i%dims] = 1
			data[i] = map[string]any{"object": "embedding", "index": i, "embedding": vec}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": len(req.Input), "total_tokens": len(req.Input)},
		})
	}))
}

func newTestEmbedder(server *httptest.Server, dims int) *OpenAIEmbedder {
	return NewOpenAIEmbedder(OpenAIConfig{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		Dimensions:   dims,
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
	})
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	server := fakeEmbeddingServer(t, 4, nil)
	defer server.Close()

	embedder := newTestEmbedder(server, 4)

	vectors, err := embedder.Embed(context.Background(), []string{"alpha", "beta"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Len(t, vectors[0], 4)
	assert.NotEqual(t, vectors[0], vectors[1])
}

func TestOpenAIEmbedder_Embed_Empty(t *testing.T) {
	server := fakeEmbeddingServer(t, 4, nil)
	defer server.Close()

	embedder := newTestEmbedder(server, 4)

	vectors, err := embedder.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

func TestOpenAIEmbedder_Embed_Batches(t *testing.T) {
	server := fakeEmbeddingServer(t, 4, nil)
	defer server.Close()

	embedder := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		Dimensions: 4,
		BatchSize:  2,
	})

	texts := []string{"a", "b", "c", "d", "e"}
	vectors, err := embedder.Embed(context.Background(), texts)
	require.NoError(t, err)
	assert.Len(t, vectors, len(texts))
}

func TestOpenAIEmbedder_Embed_RetriesRateLimit(t *testing.T) {
	var failures atomic.Int32
	failures.Store(2)
	server := fakeEmbeddingServer(t, 4, &failures)
	defer server.Close()

	embedder := newTestEmbedder(server, 4)

	vectors, err := embedder.Embed(context.Background(), []string{"alpha"})
	require.NoError(t, err)
	assert.Len(t, vectors, 1)
}

func TestOpenAIEmbedder_Embed_ExhaustsRetries(t *testing.T) {
	var failures atomic.Int32
	failures.Store(100)
	server := fakeEmbeddingServer(t, 4, &failures)
	defer server.Close()

	embedder := newTestEmbedder(server, 4)

	_, err := embedder.Embed(context.Background(), []string{"alpha"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
}

func TestOpenAIEmbedder_Dimensions(t *testing.T) {
	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "k", Dimensions: 256})
	assert.Equal(t, 256, embedder.Dimensions())

	embedder = NewOpenAIEmbedder(OpenAIConfig{APIKey: "k"})
	assert.Equal(t, 1536, embedder.Dimensions())
}
