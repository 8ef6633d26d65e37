package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/internal/store"
)

func TestGetPolicyMissingOwnerFallsBackToDefault(t *testing.T) {
	svc := NewPolicyService(store.NewMemoryKV())

	p, err := svc.GetPolicy(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPolicy(), p)
	assert.True(t, p.ProviderEnabled("spotify"))
	assert.True(t, p.ProviderEnabled("apple"))
}

func TestSetPolicyRoundTrip(t *testing.T) {
	svc := NewPolicyService(store.NewMemoryKV())
	ctx := context.Background()

	in := models.Policy{
		EnabledProviders: map[string]bool{"spotify": true, "apple": false},
		BlockArtists:     []string{"nickelback"},
	}
	require.NoError(t, svc.SetPolicy(ctx, "owner-1", in))

	got, err := svc.GetPolicy(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.False(t, got.ProviderEnabled("apple"))
}

func TestSetPolicyRequiresOwner(t *testing.T) {
	svc := NewPolicyService(store.NewMemoryKV())

	err := svc.SetPolicy(context.Background(), "", models.Policy{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSetPolicyFillsProviderDefaults(t *testing.T) {
	svc := NewPolicyService(store.NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, svc.SetPolicy(ctx, "owner-1", models.Policy{BlockGenres: []string{"polka"}}))

	got, err := svc.GetPolicy(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPolicy().EnabledProviders, got.EnabledProviders)
	assert.Equal(t, []string{"polka"}, got.BlockGenres)
}

func TestPolicyForSessionResolvesOwnerRecord(t *testing.T) {
	kv := store.NewMemoryKV()
	policies := NewPolicyService(kv)
	sessions := NewSessionService(kv, testConfig())
	ctx := context.Background()

	session, err := sessions.CreateSession(ctx, CreateSessionInput{OwnerID: "owner-1"})
	require.NoError(t, err)

	custom := models.Policy{
		EnabledProviders: map[string]bool{"spotify": true, "apple": true},
		AllowArtists:     []string{"queen"},
	}
	require.NoError(t, policies.SetPolicy(ctx, "owner-1", custom))

	got, err := policies.PolicyForSession(ctx, sessions, session.ID)
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}

func TestPolicyForSessionUnknownSessionUsesDefault(t *testing.T) {
	kv := store.NewMemoryKV()
	policies := NewPolicyService(kv)
	sessions := NewSessionService(kv, testConfig())

	got, err := policies.PolicyForSession(context.Background(), sessions, "missing")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPolicy(), got)
}
