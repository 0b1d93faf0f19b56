package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/akinmix/sibelgpt-backend/internal/config"
	"github.com/akinmix/sibelgpt-backend/internal/model"
	"github.com/akinmix/sibelgpt-backend/pkg/log"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// cacheEntry is a formatted listings fragment plus its fill time.
type cacheEntry struct {
	HTML     string
	CachedAt time.Time
}

// Retriever performs semantic listing retrieval and caches formatted results.
type Retriever struct {
	embedder     *Embedder
	store        ListingStore
	cfg          config.SearchConfig
	storeTimeout time.Duration

	cache *lru.Cache[string, cacheEntry]
	group singleflight.Group
}

// NewRetriever creates a new retriever
func NewRetriever(embedder *Embedder, store ListingStore, searchCfg config.SearchConfig, storeTimeout time.Duration) (*Retriever, error) {
	cache, err := lru.New[string, cacheEntry](searchCfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Retriever{
		embedder:     embedder,
		store:        store,
		cfg:          searchCfg,
		storeTimeout: storeTimeout,
		cache:        cache,
	}, nil
}

// Search runs the similarity RPC for an already-computed vector and applies
// the client-side post-processing: listing_id backfill from ilan_no and the
// similarity threshold. Store order is preserved. On RPC failure it returns
// an empty slice; callers treat that as "no listings".
func (r *Retriever) Search(ctx context.Context, vector []float32) []model.ListingRow {
	if len(vector) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()

	rows, err := r.store.MatchListings(ctx, vector, r.cfg.MatchThreshold, r.cfg.MatchCount)
	if err != nil {
		log.Error("listing similarity RPC failed", err)
		return nil
	}

	filtered := make([]model.ListingRow, 0, len(rows))
	for _, row := range rows {
		if row.ListingID == "" {
			row.ListingID = row.IlanNo
		}
		if row.Similarity <= r.cfg.MatchThreshold {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// SearchProperties composes embed, search and format, caching the HTML
// fragment per question fingerprint. Concurrent calls with the same
// fingerprint coalesce onto a single fill; a canceled fill never populates
// the cache.
func (r *Retriever) SearchProperties(ctx context.Context, question string) string {
	key := questionFingerprint(question)

	if entry, ok := r.cache.Get(key); ok {
		return entry.HTML
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: a previous fill may have landed
		// between the miss and the Do call.
		if entry, ok := r.cache.Get(key); ok {
			return entry.HTML, nil
		}

		vector := r.embedder.Embed(ctx, question)
		rows := r.Search(ctx, vector)
		html := FormatListings(rows, r.cfg.MaxListingsShown)

		if ctx.Err() != nil {
			return html, ctx.Err()
		}
		r.cache.Add(key, cacheEntry{HTML: html, CachedAt: time.Now()})
		return html, nil
	})
	if err != nil {
		// Cancellation mid-fill: hand back whatever was assembled without
		// caching it.
		if s, ok := result.(string); ok {
			return s
		}
		return FormatListings(nil, r.cfg.MaxListingsShown)
	}
	return result.(string)
}

// questionFingerprint hashes the normalized question for cache keying.
func questionFingerprint(question string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(question))), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
