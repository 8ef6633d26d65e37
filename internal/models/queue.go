package models

import "time"

type EntryStatus string

const (
	StatusQueued  EntryStatus = "queued"
	StatusPlaying EntryStatus = "playing"
	StatusPlayed  EntryStatus = "played"
)

// QueueEntry is one patron request. The Track field is a snapshot taken at
// request time; it is never re-resolved against the catalog afterwards.
// Entries for a session are stored as a single JSON list under
// "queue:<sessionID>" and always written back as a whole.
type QueueEntry struct {
	ID          string      `json:"id"`
	TrackID     string      `json:"track_id"`
	Track       Track       `json:"track"`
	RequesterID string      `json:"requester_id"`
	SessionID   string      `json:"session_id"`
	Position    int         `json:"position"`
	Dedication  string      `json:"dedication,omitempty"`
	TipAmount   float64     `json:"tip_amount,omitempty"`
	Boosted     bool        `json:"boosted"`
	CreatedAt   time.Time   `json:"created_at"`
	Status      EntryStatus `json:"status"`
}
