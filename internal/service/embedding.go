package service

import (
	"context"
	"strings"
	"time"

	"github.com/akinmix/sibelgpt-backend/pkg/log"
)

// Embedder converts text into a dense vector for similarity search.
type Embedder struct {
	client  EmbeddingClient
	timeout time.Duration
}

// NewEmbedder creates a new embedder
func NewEmbedder(client EmbeddingClient, timeout time.Duration) *Embedder {
	return &Embedder{client: client, timeout: timeout}
}

// Embed returns the embedding vector for text, or nil when the input is empty
// or the upstream call fails. Failures are logged, never propagated; the
// retriever treats a nil vector as "no listings".
func (e *Embedder) Embed(ctx context.Context, text string) []float32 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vec, err := e.client.CreateEmbedding(ctx, text)
	if err != nil {
		log.Error("embedding request failed", err)
		return nil
	}
	return vec
}
