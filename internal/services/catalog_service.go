package services

import (
	"context"

	"github.com/jukevox/backend/internal/catalog"
	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/internal/policy"
)

// CatalogService glues the provider aggregator to the per-owner policy: it
// resolves the policy scoping a session, intersects the enabled-provider set
// with the caller's provider filter, and runs the results through the policy
// filter.
type CatalogService struct {
	aggregator *catalog.Aggregator
	sessions   *SessionService
	policies   *PolicyService
}

func NewCatalogService(aggregator *catalog.Aggregator, sessions *SessionService, policies *PolicyService) *CatalogService {
	return &CatalogService{
		aggregator: aggregator,
		sessions:   sessions,
		policies:   policies,
	}
}

// Search runs a scoped catalog search. providerFilter is "all" or a single
// provider name; sessionID may be empty (unscoped browse).
func (s *CatalogService) Search(ctx context.Context, query, providerFilter, sessionID string) ([]models.Track, error) {
	p, err := s.policies.PolicyForSession(ctx, s.sessions, sessionID)
	if err != nil {
		return nil, err
	}

	enabled := func(name string) bool {
		if providerFilter != "" && providerFilter != "all" && providerFilter != name {
			return false
		}
		return p.ProviderEnabled(name)
	}

	results := s.aggregator.Search(ctx, query, enabled)
	return policy.Apply(results, p), nil
}
