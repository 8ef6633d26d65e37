// Package catalog fans search queries out to the external music catalogs and
// normalizes whatever comes back into the common Track shape.
package catalog

import (
	"context"

	"github.com/jukevox/backend/internal/models"
)

type Provider interface {
	Name() string
	// Search returns normalized tracks for a free-text query. Implementations
	// must return an error (not an empty list) when the upstream call fails
	// or no credential is configured, so the aggregator can degrade.
	Search(ctx context.Context, query string, limit int) ([]models.Track, error)
}
