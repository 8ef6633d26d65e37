package policy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jukevox/backend/internal/models"
)

func sampleTracks() []models.Track {
	return []models.Track{
		{ID: "spotify:1", Title: "Bohemian Rhapsody", Artist: "Queen", Genre: "Rock"},
		{ID: "spotify:2", Title: "Radio Ga Ga", Artist: "Queen", Genre: "Rock"},
		{ID: "spotify:3", Title: "Hotel California", Artist: "Eagles", Genre: "Rock"},
		{ID: "apple:4", Title: "Lose Yourself", Artist: "Eminem", Genre: "Hip-Hop"},
		{ID: "apple:5", Title: "One Dance", Artist: "Drake"},
	}
}

func TestApplyAllowArtistsIsExclusive(t *testing.T) {
	p := models.Policy{AllowArtists: []string{"Queen"}}

	out := Apply(sampleTracks(), p)

	assert.Len(t, out, 2)
	for _, tr := range out {
		assert.Equal(t, "Queen", tr.Artist)
	}
}

func TestApplyAllowMatchIsCaseInsensitiveSubstring(t *testing.T) {
	p := models.Policy{AllowArtists: []string{"qUeEn"}}

	out := Apply(sampleTracks(), p)

	assert.Len(t, out, 2)
}

func TestApplyBlockArtists(t *testing.T) {
	p := models.Policy{BlockArtists: []string{"eagles"}}

	out := Apply(sampleTracks(), p)

	assert.Len(t, out, 4)
	for _, tr := range out {
		assert.NotEqual(t, "Eagles", tr.Artist)
	}
}

func TestApplyBlockSongsByTitle(t *testing.T) {
	p := models.Policy{BlockSongs: []string{"lose yourself"}}

	out := Apply(sampleTracks(), p)

	assert.Len(t, out, 4)
	for _, tr := range out {
		assert.NotEqual(t, "Lose Yourself", tr.Title)
	}
}

func TestApplyBlockGenresSkipsTracksWithoutGenre(t *testing.T) {
	// "One Dance" has no genre and must survive any genre rule
	p := models.Policy{BlockGenres: []string{"rock", "hip-hop"}}

	out := Apply(sampleTracks(), p)

	assert.Len(t, out, 1)
	assert.Equal(t, "One Dance", out[0].Title)
}

func TestApplyAllowBeforeBlockPrecedence(t *testing.T) {
	// Allow list narrows to Queen first; block on title then applies within it
	p := models.Policy{
		AllowArtists: []string{"Queen"},
		BlockSongs:   []string{"radio"},
	}

	out := Apply(sampleTracks(), p)

	assert.Len(t, out, 1)
	assert.Equal(t, "Bohemian Rhapsody", out[0].Title)
}

func TestApplyDeduplicatesByTitleArtist(t *testing.T) {
	tracks := []models.Track{
		{ID: "spotify:1", Title: "Bohemian Rhapsody", Artist: "Queen"},
		{ID: "apple:9", Title: "bohemian rhapsody", Artist: "QUEEN"},
		{ID: "apple:4", Title: "Lose Yourself", Artist: "Eminem"},
	}

	out := Apply(tracks, models.Policy{})

	assert.Len(t, out, 2)
	// First occurrence wins
	assert.Equal(t, "spotify:1", out[0].ID)
}

func TestApplyCapsResults(t *testing.T) {
	tracks := make([]models.Track, 0, 40)
	for i := 0; i < 40; i++ {
		tracks = append(tracks, models.Track{
			ID:     fmt.Sprintf("spotify:%d", i),
			Title:  fmt.Sprintf("Song %d", i),
			Artist: "Various",
		})
	}

	out := Apply(tracks, models.Policy{})

	assert.Len(t, out, MaxResults)
}

func TestApplyIsIdempotent(t *testing.T) {
	p := models.Policy{
		AllowArtists: []string{"Queen", "Eagles"},
		BlockGenres:  []string{"hip-hop"},
	}

	once := Apply(sampleTracks(), p)
	twice := Apply(once, p)

	assert.Equal(t, once, twice)
}

func TestApplyIsDeterministic(t *testing.T) {
	p := models.Policy{BlockArtists: []string{"drake"}}

	first := Apply(sampleTracks(), p)
	second := Apply(sampleTracks(), p)

	assert.Equal(t, first, second)
}

func TestApplyEmptyPolicyKeepsOrder(t *testing.T) {
	out := Apply(sampleTracks(), models.Policy{})

	assert.Len(t, out, 5)
	assert.Equal(t, "spotify:1", out[0].ID)
	assert.Equal(t, "apple:5", out[4].ID)
}
