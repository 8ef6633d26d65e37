package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpotifyTestServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "track", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"tracks": {
				"items": [
					{
						"id": "abc123",
						"name": "Bohemian Rhapsody",
						"artists": [{"name": "Queen"}, {"name": "Someone Else"}],
						"duration_ms": 354500,
						"album": {"images": [{"url": "https://img.example/full.jpg"}, {"url": "https://img.example/small.jpg"}]}
					},
					{
						"id": "def456",
						"name": "Instrumental",
						"artists": [],
						"duration_ms": 953,
						"album": {"images": []}
					}
				]
			}
		}`))
	})
	return httptest.NewServer(mux), &tokenCalls
}

func TestSpotifySearchNormalizesTracks(t *testing.T) {
	srv, _ := newSpotifyTestServer(t)
	defer srv.Close()

	c := NewSpotifyClient("id", "secret")
	c.tokenURL = srv.URL + "/api/token"
	c.searchURL = srv.URL + "/v1/search"

	tracks, err := c.Search(context.Background(), "queen", 20)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, "spotify:abc123", tracks[0].ID)
	assert.Equal(t, "Bohemian Rhapsody", tracks[0].Title)
	assert.Equal(t, "Queen", tracks[0].Artist)
	assert.Equal(t, 355, tracks[0].DurationSeconds)
	assert.Equal(t, "https://img.example/full.jpg", tracks[0].ArtworkURL)

	assert.Equal(t, "Unknown", tracks[1].Artist)
	assert.Equal(t, 1, tracks[1].DurationSeconds)
	assert.Empty(t, tracks[1].ArtworkURL)
}

func TestSpotifySearchReusesCachedToken(t *testing.T) {
	srv, tokenCalls := newSpotifyTestServer(t)
	defer srv.Close()

	c := NewSpotifyClient("id", "secret")
	c.tokenURL = srv.URL + "/api/token"
	c.searchURL = srv.URL + "/v1/search"
	ctx := context.Background()

	_, err := c.Search(ctx, "queen", 20)
	require.NoError(t, err)
	_, err = c.Search(ctx, "eagles", 20)
	require.NoError(t, err)

	assert.Equal(t, 1, *tokenCalls)
}

func TestSpotifySearchWithoutCredentials(t *testing.T) {
	c := NewSpotifyClient("", "")

	_, err := c.Search(context.Background(), "queen", 20)
	assert.Error(t, err)
}

func TestSpotifySearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewSpotifyClient("id", "secret")
	c.tokenURL = srv.URL + "/api/token"
	c.searchURL = srv.URL + "/v1/search"

	_, err := c.Search(context.Background(), "queen", 20)
	assert.Error(t, err)
}
