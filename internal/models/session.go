package models

import "time"

// Session is one venue's live request-queue context. Sessions live in the
// key-value store under "session:<id>", not in Postgres; the whole record is
// read and written as a single JSON value.
type Session struct {
	ID                     string    `json:"id"`
	VenueName              string    `json:"venue_name"`
	IsOpen                 bool      `json:"is_open"`
	PricePerRequest        float64   `json:"price_per_request"`
	MaxTrackLengthSeconds  int       `json:"max_track_length_seconds"`
	ExplicitContentBlocked bool      `json:"explicit_content_blocked"`
	AverageWaitSeconds     int       `json:"average_wait_seconds"`
	OwnerID                string    `json:"owner_id,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

// SessionSummary is the projection returned by the active-session listing.
type SessionSummary struct {
	ID              string  `json:"id"`
	VenueName       string  `json:"venue_name"`
	IsOpen          bool    `json:"is_open"`
	PricePerRequest float64 `json:"price_per_request"`
}

func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:              s.ID,
		VenueName:       s.VenueName,
		IsOpen:          s.IsOpen,
		PricePerRequest: s.PricePerRequest,
	}
}
