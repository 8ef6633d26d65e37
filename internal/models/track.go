package models

// Track is the provider-agnostic song representation. The ID is always
// provider-prefixed ("spotify:...", "apple:...", "fixture:...") so that raw
// ids from different catalogs can never collide.
type Track struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	DurationSeconds int    `json:"duration_seconds"`
	ArtworkURL      string `json:"artwork_url,omitempty"`
	Genre           string `json:"genre,omitempty"`
}
