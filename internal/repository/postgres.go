package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/akinmix/sibelgpt-backend/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// ListingRepository handles listings store operations
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository connects to the Supabase Postgres instance backing the
// listings corpus.
func NewListingRepository(dsn string, maxConn, maxIdleConn int) (*ListingRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &ListingRepository{db: db}, nil
}

// Close closes the database connection
func (r *ListingRepository) Close() error {
	return r.db.Close()
}

// MatchListings invokes the store's vector similarity RPC. The rows come back
// ordered by descending similarity; threshold filtering happens in the caller
// so the invariant lives in one place.
func (r *ListingRepository) MatchListings(ctx context.Context, queryEmbedding []float32, matchThreshold float64, matchCount int) ([]model.ListingRow, error) {
	vec := pgvector.NewVector(queryEmbedding)
	query := `
		SELECT listing_id, ilan_no, title, location, price, room_count,
		       area_m2, floor, features, similarity
		FROM match_remax_listings($1, $2, $3)
	`

	var rows []model.ListingRow
	err := r.db.SelectContext(ctx, &rows, query, vec, matchThreshold, matchCount)
	if err != nil {
		return nil, fmt.Errorf("match_remax_listings RPC failed: %w", err)
	}
	return rows, nil
}

// GetListingByNo fetches a single listing for the PDF endpoint. Returns nil
// when the id is unknown.
func (r *ListingRepository) GetListingByNo(ctx context.Context, listingID string) (*model.ListingRow, error) {
	var row model.ListingRow
	query := `
		SELECT listing_id, ilan_no, title, location, price, room_count,
		       area_m2, floor, features, 1.0 AS similarity
		FROM remax_listings
		WHERE listing_id = $1 OR ilan_no = $1
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &row, query, listingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &row, nil
}
