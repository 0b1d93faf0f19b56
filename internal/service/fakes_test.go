package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/akinmix/sibelgpt-backend/internal/model"
)

// fakeChat is a canned ChatClient counting calls.
type fakeChat struct {
	mu      sync.Mutex
	calls   int32
	lastReq ChatCompletionRequest
	reply   string
	err     error
}

func (f *fakeChat) ChatCompletion(_ context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.lastReq = req
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	resp := &ChatCompletionResponse{}
	resp.Choices = append(resp.Choices, struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	}{Message: ChatMessage{Role: model.RoleAssistant, Content: f.reply}})
	return resp, nil
}

func (f *fakeChat) callCount() int32 { return atomic.LoadInt32(&f.calls) }

// fakeEmbeddingClient returns a fixed vector and counts calls.
type fakeEmbeddingClient struct {
	calls  int32
	vector []float32
	err    error
}

func (f *fakeEmbeddingClient) CreateEmbedding(_ context.Context, _ string) ([]float32, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbeddingClient) callCount() int32 { return atomic.LoadInt32(&f.calls) }

// fakeStore returns canned rows from the similarity RPC and counts calls.
type fakeStore struct {
	calls int32
	rows  []model.ListingRow
	err   error
}

func (f *fakeStore) MatchListings(_ context.Context, _ []float32, _ float64, _ int) ([]model.ListingRow, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeStore) callCount() int32 { return atomic.LoadInt32(&f.calls) }

// fakeTopics is a canned topicDetector.
type fakeTopics struct {
	calls int32
	topic model.Topic
}

func (f *fakeTopics) DetectTopic(_ context.Context, _ string, current model.Persona) model.Topic {
	atomic.AddInt32(&f.calls, 1)
	if f.topic == "" {
		return current.Topic()
	}
	return f.topic
}

// fakeIntent is a canned listingIntentDetector.
type fakeIntent struct {
	calls int32
	needs bool
}

func (f *fakeIntent) NeedsListings(_ context.Context, _ string) bool {
	atomic.AddInt32(&f.calls, 1)
	return f.needs
}

// fakeSearcher is a canned propertySearcher.
type fakeSearcher struct {
	calls int32
	html  string
}

func (f *fakeSearcher) SearchProperties(_ context.Context, _ string) string {
	atomic.AddInt32(&f.calls, 1)
	return f.html
}

var errUpstream = fmt.Errorf("upstream unavailable")
