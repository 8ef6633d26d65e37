package catalog

import "github.com/jukevox/backend/internal/models"

// FixtureTracks is the built-in browse/fallback catalog. It is served when a
// search cannot reach any real provider, and as the default browse list for
// an empty query, so the patron UI never renders a hard empty state.
func FixtureTracks() []models.Track {
	return []models.Track{
		{ID: "fixture:1", Title: "Bohemian Rhapsody", Artist: "Queen", DurationSeconds: 355, Genre: "Rock", ArtworkURL: "https://picsum.photos/300/300?random=1"},
		{ID: "fixture:2", Title: "Sweet Child O' Mine", Artist: "Guns N' Roses", DurationSeconds: 356, Genre: "Rock", ArtworkURL: "https://picsum.photos/300/300?random=2"},
		{ID: "fixture:3", Title: "Hotel California", Artist: "Eagles", DurationSeconds: 391, Genre: "Rock", ArtworkURL: "https://picsum.photos/300/300?random=3"},
		{ID: "fixture:4", Title: "Stairway to Heaven", Artist: "Led Zeppelin", DurationSeconds: 482, Genre: "Rock", ArtworkURL: "https://picsum.photos/300/300?random=4"},
		{ID: "fixture:5", Title: "Don't Stop Believin'", Artist: "Journey", DurationSeconds: 251, Genre: "Rock", ArtworkURL: "https://picsum.photos/300/300?random=5"},
	}
}
