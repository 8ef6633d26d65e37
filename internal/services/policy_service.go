package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/internal/store"
)

// PolicyService stores one policy record per owner. Sessions without an
// owner, and owners who never saved a policy, get the default policy.
type PolicyService struct {
	kv store.KV
}

func NewPolicyService(kv store.KV) *PolicyService {
	return &PolicyService{kv: kv}
}

func (s *PolicyService) GetPolicy(ctx context.Context, ownerID string) (models.Policy, error) {
	if ownerID == "" {
		return models.DefaultPolicy(), nil
	}

	var p models.Policy
	if err := s.kv.Get(ctx, policyKey(ownerID), &p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.DefaultPolicy(), nil
		}
		return models.Policy{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return p, nil
}

func (s *PolicyService) SetPolicy(ctx context.Context, ownerID string, p models.Policy) error {
	if ownerID == "" {
		return ErrUnauthorized
	}
	if p.EnabledProviders == nil {
		p.EnabledProviders = models.DefaultPolicy().EnabledProviders
	}
	if err := s.kv.Set(ctx, policyKey(ownerID), p); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// PolicyForSession resolves the policy that scopes a session's searches: the
// session owner's record, or the default for anonymous/demo sessions. An
// unknown session also falls back to the default so search keeps working
// while a patron holds a stale session id.
func (s *PolicyService) PolicyForSession(ctx context.Context, sessions *SessionService, sessionID string) (models.Policy, error) {
	if sessionID == "" {
		return models.DefaultPolicy(), nil
	}
	session, err := sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.DefaultPolicy(), nil
		}
		return models.Policy{}, err
	}
	return s.GetPolicy(ctx, session.OwnerID)
}
