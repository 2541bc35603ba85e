package compat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/matchwise/internal/domain"
	"github.com/davidbz/matchwise/internal/embedding/compat"
)

func TestNewEmbedder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config compat.Config
	}{
		{name: "missing base url", config: compat.Config{Model: "m", Dimensions: 3}},
		{name: "missing model", config: compat.Config{BaseURL: "http://localhost:11434/v1", Dimensions: 3}},
		{name: "missing dimensions", config: compat.Config{BaseURL: "http://localhost:11434/v1", Model: "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedder, err := compat.NewEmbedder(tt.config)
			require.ErrorIs(t, err, domain.ErrConfiguration)
			require.Nil(t, embedder)
		})
	}
}

func TestEmbedder_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)

		var body struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "nomic-embed-text", body.Model)
		require.Equal(t, []string{"go engineer remote"}, body.Input)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list",
			"model": "nomic-embed-text",
			"data": [{"object": "embedding", "index": 0, "embedding": [0.5, 0.25, -1]}],
			"usage": {"prompt_tokens": 3, "total_tokens": 3}
		}`))
	}))
	defer server.Close()

	embedder, err := compat.NewEmbedder(compat.Config{
		BaseURL:    server.URL,
		Model:      "nomic-embed-text",
		Dimensions: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "compat", embedder.Name())
	require.Equal(t, 3, embedder.Dimension())

	// Newlines are stripped before the request.
	embedding, err := embedder.Embed(context.Background(), "go engineer\nremote")
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 0.25, -1}, embedding.Vector)
	require.Equal(t, "nomic-embed-text", embedding.Model)
}

func TestEmbedder_EmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "model not loaded"}}`))
	}))
	defer server.Close()

	embedder, err := compat.NewEmbedder(compat.Config{BaseURL: server.URL, Model: "m", Dimensions: 3})
	require.NoError(t, err)

	_, err = embedder.Embed(context.Background(), "text")
	require.Error(t, err)
}
