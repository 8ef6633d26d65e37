package catalog

import (
	"context"
	"log"

	"github.com/jukevox/backend/internal/models"
)

// Aggregator fans a query out to its providers in fixed order and
// concatenates the normalized results. A provider that fails or has no
// credential degrades to the fixture catalog, but only while no real
// provider has produced anything yet; real results are never mixed with
// fixture content that would be appended after them.
type Aggregator struct {
	providers []Provider
	limit     int
}

func NewAggregator(limit int, providers ...Provider) *Aggregator {
	if limit <= 0 {
		limit = 20
	}
	return &Aggregator{providers: providers, limit: limit}
}

// Search never hard-fails: provider errors are logged and absorbed. An empty
// query is the browse default and resolves to the fixture catalog.
func (a *Aggregator) Search(ctx context.Context, query string, enabled func(provider string) bool) []models.Track {
	var results []models.Track

	for _, p := range a.providers {
		if enabled != nil && !enabled(p.Name()) {
			continue
		}

		if query == "" {
			if len(results) == 0 {
				results = append(results, FixtureTracks()...)
			}
			continue
		}

		tracks, err := p.Search(ctx, query, a.limit)
		if err != nil {
			log.Printf("Catalog provider %s unavailable: %v", p.Name(), err)
			if len(results) == 0 {
				results = append(results, FixtureTracks()...)
			}
			continue
		}
		results = append(results, tracks...)
	}

	// No provider enabled at all: still serve the browse default
	if query == "" && len(results) == 0 {
		results = FixtureTracks()
	}
	return results
}
