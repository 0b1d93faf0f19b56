package model

import "database/sql"

// ListingRow represents one row returned by the match_remax_listings RPC.
// Fields mirror the store's column names; most are nullable upstream and the
// scraped values are free text, so price is kept as raw text and parsed only
// at render time.
type ListingRow struct {
	ListingID  string         `json:"listing_id" db:"listing_id"`
	IlanNo     string         `json:"ilan_no,omitempty" db:"ilan_no"`
	Title      string         `json:"title" db:"title"`
	Location   string         `json:"location" db:"location"`
	Price      sql.NullString `json:"price,omitempty" db:"price"`
	RoomCount  string         `json:"room_count,omitempty" db:"room_count"`
	AreaM2     string         `json:"area_m2,omitempty" db:"area_m2"`
	Floor      sql.NullInt64  `json:"floor,omitempty" db:"floor"`
	Features   sql.NullString `json:"features,omitempty" db:"features"`
	Similarity float64        `json:"similarity" db:"similarity"`
}
