package model

import "time"

// WatchEntry tracks one watched symbol across refreshes.
type WatchEntry struct {
	Symbol             string    `json:"symbol"`
	AddedAt            time.Time `json:"added_at"`
	RecentComposites   []float64 `json:"recent_composites"`
	LastQuadrant       Quadrant  `json:"last_quadrant,omitempty"`
	ConsecutiveLeading int       `json:"consecutive_leading"`
	LastRating         int       `json:"last_rating"`
	LastUpdated        time.Time `json:"last_updated"`
}

// WatchlistState is the persisted watchlist.
type WatchlistState struct {
	Entries   map[string]*WatchEntry `json:"entries"`
	UpdatedAt time.Time              `json:"updated_at"`
}
