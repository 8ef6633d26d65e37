package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppleSearchNormalizesTracks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/catalog/de/search", r.URL.Path)
		assert.Equal(t, "Bearer dev-token", r.Header.Get("Authorization"))
		assert.Equal(t, "songs", r.URL.Query().Get("types"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": {
				"songs": {
					"data": [
						{
							"id": "999",
							"attributes": {
								"name": "Hotel California",
								"artistName": "Eagles",
								"durationInMillis": 391000,
								"genreNames": ["Rock", "Classic Rock"],
								"artwork": {"url": "https://art.example/{w}x{h}.jpg"}
							}
						},
						{
							"id": "1000",
							"attributes": {
								"name": "",
								"artistName": "",
								"durationInMillis": 1000,
								"genreNames": [],
								"artwork": {"url": ""}
							}
						}
					]
				}
			}
		}`))
	}))
	defer srv.Close()

	c := NewAppleMusicClient("dev-token", "de")
	c.baseURL = srv.URL

	tracks, err := c.Search(context.Background(), "hotel", 20)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, "apple:999", tracks[0].ID)
	assert.Equal(t, "Hotel California", tracks[0].Title)
	assert.Equal(t, "Eagles", tracks[0].Artist)
	assert.Equal(t, 391, tracks[0].DurationSeconds)
	assert.Equal(t, "Rock", tracks[0].Genre)
	// Artwork size template is resolved to a concrete size
	assert.Equal(t, "https://art.example/300x300.jpg", tracks[0].ArtworkURL)

	assert.Equal(t, "Unknown", tracks[1].Title)
	assert.Equal(t, "Unknown", tracks[1].Artist)
	assert.Empty(t, tracks[1].Genre)
}

func TestAppleSearchWithoutToken(t *testing.T) {
	c := NewAppleMusicClient("", "us")

	_, err := c.Search(context.Background(), "hotel", 20)
	assert.Error(t, err)
}

func TestAppleSearchDefaultStorefront(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/catalog/us/search", r.URL.Path)
		w.Write([]byte(`{"results":{}}`))
	}))
	defer srv.Close()

	c := NewAppleMusicClient("dev-token", "")
	c.baseURL = srv.URL

	tracks, err := c.Search(context.Background(), "hotel", 20)
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestAppleSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewAppleMusicClient("dev-token", "us")
	c.baseURL = srv.URL

	_, err := c.Search(context.Background(), "hotel", 20)
	assert.Error(t, err)
}
