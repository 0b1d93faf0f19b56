package service

import (
	"context"

	"github.com/akinmix/sibelgpt-backend/internal/model"
)

// ChatClient is the interface for chat completion providers
type ChatClient interface {
	// ChatCompletion performs a non-streaming chat completion
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// EmbeddingClient is the interface for embedding providers
type EmbeddingClient interface {
	// CreateEmbedding generates an embedding for a single text
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ListingStore is the retrieval-facing slice of the repository
type ListingStore interface {
	MatchListings(ctx context.Context, queryEmbedding []float32, matchThreshold float64, matchCount int) ([]model.ListingRow, error)
}

// Ensure OpenAIClient implements both client interfaces
var (
	_ ChatClient      = (*OpenAIClient)(nil)
	_ EmbeddingClient = (*OpenAIClient)(nil)
)
