package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jukevox/backend/internal/models"
)

type stubProvider struct {
	name   string
	tracks []models.Track
	err    error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.tracks, nil
}

func allEnabled(string) bool { return true }

func TestAggregatorConcatenatesInProviderOrder(t *testing.T) {
	a := NewAggregator(20,
		&stubProvider{name: "spotify", tracks: []models.Track{{ID: "spotify:1", Title: "One"}}},
		&stubProvider{name: "apple", tracks: []models.Track{{ID: "apple:2", Title: "Two"}}},
	)

	out := a.Search(context.Background(), "test", allEnabled)

	assert.Len(t, out, 2)
	assert.Equal(t, "spotify:1", out[0].ID)
	assert.Equal(t, "apple:2", out[1].ID)
}

func TestAggregatorFailingProviderFallsBackToFixtures(t *testing.T) {
	a := NewAggregator(20,
		&stubProvider{name: "spotify", err: errors.New("credentials missing")},
	)

	out := a.Search(context.Background(), "queen", allEnabled)

	assert.Equal(t, FixtureTracks(), out)
}

func TestAggregatorDoesNotAppendFixturesAfterRealResults(t *testing.T) {
	real := []models.Track{{ID: "spotify:1", Title: "One"}}
	a := NewAggregator(20,
		&stubProvider{name: "spotify", tracks: real},
		&stubProvider{name: "apple", err: errors.New("boom")},
	)

	out := a.Search(context.Background(), "queen", allEnabled)

	assert.Equal(t, real, out)
}

func TestAggregatorSkipsDisabledProviders(t *testing.T) {
	a := NewAggregator(20,
		&stubProvider{name: "spotify", tracks: []models.Track{{ID: "spotify:1"}}},
		&stubProvider{name: "apple", tracks: []models.Track{{ID: "apple:2"}}},
	)

	out := a.Search(context.Background(), "test", func(name string) bool { return name == "apple" })

	assert.Len(t, out, 1)
	assert.Equal(t, "apple:2", out[0].ID)
}

func TestAggregatorEmptyQueryServesFixtures(t *testing.T) {
	a := NewAggregator(20,
		&stubProvider{name: "spotify", tracks: []models.Track{{ID: "spotify:1"}}},
		&stubProvider{name: "apple", tracks: []models.Track{{ID: "apple:2"}}},
	)

	out := a.Search(context.Background(), "", allEnabled)

	// Browse default: fixtures once, not per provider
	assert.Equal(t, FixtureTracks(), out)
}

func TestAggregatorEmptyQueryNoProvidersEnabled(t *testing.T) {
	a := NewAggregator(20,
		&stubProvider{name: "spotify", tracks: []models.Track{{ID: "spotify:1"}}},
	)

	out := a.Search(context.Background(), "", func(string) bool { return false })

	assert.Equal(t, FixtureTracks(), out)
}

func TestFixtureTracksAreStable(t *testing.T) {
	first := FixtureTracks()
	second := FixtureTracks()

	assert.Equal(t, first, second)
	assert.Len(t, first, 5)
	for _, tr := range first {
		assert.NotEmpty(t, tr.ID)
		assert.NotEmpty(t, tr.Title)
		assert.NotEmpty(t, tr.Artist)
	}
}
