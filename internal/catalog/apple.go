package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jukevox/backend/internal/models"
)

const appleAPIBaseURL = "https://api.music.apple.com"

// AppleMusicClient searches the Apple Music catalog with a pre-issued
// developer token; there is no per-request handshake.
type AppleMusicClient struct {
	developerToken string
	storefront     string
	baseURL        string
	httpClient     *http.Client
}

func NewAppleMusicClient(developerToken, storefront string) *AppleMusicClient {
	if storefront == "" {
		storefront = "us"
	}
	return &AppleMusicClient{
		developerToken: developerToken,
		storefront:     storefront,
		baseURL:        appleAPIBaseURL,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *AppleMusicClient) Name() string { return "apple" }

type appleSearchResponse struct {
	Results struct {
		Songs struct {
			Data []struct {
				ID         string `json:"id"`
				Attributes struct {
					Name             string   `json:"name"`
					ArtistName       string   `json:"artistName"`
					DurationInMillis int      `json:"durationInMillis"`
					GenreNames       []string `json:"genreNames"`
					Artwork          struct {
						URL string `json:"url"`
					} `json:"artwork"`
				} `json:"attributes"`
			} `json:"data"`
		} `json:"songs"`
	} `json:"results"`
}

func (c *AppleMusicClient) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if c.developerToken == "" {
		return nil, errors.New("apple: developer token not configured")
	}

	params := url.Values{}
	params.Add("term", query)
	params.Add("types", "songs")
	params.Add("limit", fmt.Sprintf("%d", limit))

	endpoint := fmt.Sprintf("%s/v1/catalog/%s/search?%s", c.baseURL, c.storefront, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Authorization", "Bearer "+c.developerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apple: search request failed with status %d", resp.StatusCode)
	}

	var searchResp appleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}

	songs := searchResp.Results.Songs.Data
	tracks := make([]models.Track, 0, len(songs))
	for _, song := range songs {
		attrs := song.Attributes
		title := attrs.Name
		if title == "" {
			title = "Unknown"
		}
		artist := attrs.ArtistName
		if artist == "" {
			artist = "Unknown"
		}
		genre := ""
		if len(attrs.GenreNames) > 0 {
			genre = attrs.GenreNames[0]
		}
		// Apple artwork URLs are size templates
		artwork := strings.Replace(attrs.Artwork.URL, "{w}x{h}", "300x300", 1)
		tracks = append(tracks, models.Track{
			ID:              "apple:" + song.ID,
			Title:           title,
			Artist:          artist,
			DurationSeconds: (attrs.DurationInMillis + 500) / 1000,
			ArtworkURL:      artwork,
			Genre:           genre,
		})
	}
	return tracks, nil
}
