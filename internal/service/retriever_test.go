package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akinmix/sibelgpt-backend/internal/config"
	"github.com/akinmix/sibelgpt-backend/internal/model"
)

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		MatchThreshold:   0.3,
		MatchCount:       50,
		MaxListingsShown: 20,
		CacheSize:        1024,
	}
}

func newTestRetriever(t *testing.T, embedding *fakeEmbeddingClient, store *fakeStore) *Retriever {
	t.Helper()
	embedder := NewEmbedder(embedding, 5*time.Second)
	retriever, err := NewRetriever(embedder, store, testSearchConfig(), 5*time.Second)
	if err != nil {
		t.Fatalf("NewRetriever: %v", err)
	}
	return retriever
}

func TestSearch_FilterAndBackfill(t *testing.T) {
	store := &fakeStore{rows: []model.ListingRow{
		{ListingID: "P1", Title: "A", Similarity: 0.7},
		{IlanNo: "P2", Title: "B", Similarity: 0.5},
		{ListingID: "P3", Title: "C", Similarity: 0.2},
	}}
	retriever := newTestRetriever(t, &fakeEmbeddingClient{vector: []float32{0.1, 0.2}}, store)

	rows := retriever.Search(context.Background(), []float32{0.1, 0.2})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (threshold must drop P3)", len(rows))
	}
	if rows[0].ListingID != "P1" || rows[1].ListingID != "P2" {
		t.Errorf("rows = [%s, %s], want [P1, P2] in store order", rows[0].ListingID, rows[1].ListingID)
	}
}

func TestSearch_StoreErrorYieldsEmpty(t *testing.T) {
	store := &fakeStore{err: errUpstream}
	retriever := newTestRetriever(t, &fakeEmbeddingClient{vector: []float32{0.1}}, store)

	rows := retriever.Search(context.Background(), []float32{0.1})
	if len(rows) != 0 {
		t.Errorf("store failure should yield no rows, got %d", len(rows))
	}
}

func TestSearchProperties_CacheIdempotence(t *testing.T) {
	embedding := &fakeEmbeddingClient{vector: []float32{0.1, 0.2}}
	store := &fakeStore{rows: []model.ListingRow{
		{ListingID: "P1", Title: "Daire", Location: "Kadıköy", Similarity: 0.7},
	}}
	retriever := newTestRetriever(t, embedding, store)

	first := retriever.SearchProperties(context.Background(), "Kadıköy'de 3+1 satılık daire")
	second := retriever.SearchProperties(context.Background(), "Kadıköy'de 3+1 satılık daire")

	if first != second {
		t.Error("cached call returned different HTML")
	}
	if embedding.callCount() != 1 {
		t.Errorf("embedding called %d times, want 1", embedding.callCount())
	}
	if store.callCount() != 1 {
		t.Errorf("store called %d times, want 1", store.callCount())
	}
}

func TestSearchProperties_NormalizedKeySharing(t *testing.T) {
	embedding := &fakeEmbeddingClient{vector: []float32{0.1}}
	store := &fakeStore{rows: []model.ListingRow{{ListingID: "P1", Title: "Daire", Similarity: 0.6}}}
	retriever := newTestRetriever(t, embedding, store)

	retriever.SearchProperties(context.Background(), "  Kadıköy daire ")
	retriever.SearchProperties(context.Background(), "kadıköy   DAİRE")

	if embedding.callCount() != 1 {
		t.Errorf("whitespace/case variants should share a fingerprint, embedding called %d times", embedding.callCount())
	}
}

func TestSearchProperties_ConcurrentSingleFill(t *testing.T) {
	embedding := &fakeEmbeddingClient{vector: []float32{0.1, 0.2}}
	store := &fakeStore{rows: []model.ListingRow{
		{ListingID: "P1", Title: "Daire", Location: "Kadıköy", Similarity: 0.7},
	}}
	retriever := newTestRetriever(t, embedding, store)

	const workers = 8
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = retriever.SearchProperties(context.Background(), "Kadıköy daire")
		}(i)
	}
	wg.Wait()

	if embedding.callCount() != 1 {
		t.Errorf("embedding called %d times under concurrency, want 1", embedding.callCount())
	}
	if store.callCount() != 1 {
		t.Errorf("store called %d times under concurrency, want 1", store.callCount())
	}
	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d got different HTML", i)
		}
	}
	if !strings.Contains(results[0], "P1") {
		t.Error("result does not mention the matched listing")
	}
}

func TestSearchProperties_CanceledFillNotCached(t *testing.T) {
	embedding := &fakeEmbeddingClient{vector: []float32{0.1}}
	store := &fakeStore{rows: []model.ListingRow{{ListingID: "P1", Title: "Daire", Similarity: 0.6}}}
	retriever := newTestRetriever(t, embedding, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	retriever.SearchProperties(ctx, "Kadıköy daire")

	// A fresh call must run the pipeline again: the canceled fill may not
	// populate the cache.
	retriever.SearchProperties(context.Background(), "Kadıköy daire")
	if store.callCount() < 2 {
		t.Errorf("canceled fill was cached; store called %d times, want 2", store.callCount())
	}
}
