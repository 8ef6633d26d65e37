package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jukevox/backend/internal/config"
	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/internal/store"
)

type SessionService struct {
	kv  store.KV
	cfg *config.Config
}

func NewSessionService(kv store.KV, cfg *config.Config) *SessionService {
	return &SessionService{kv: kv, cfg: cfg}
}

// CreateSessionInput carries the optional knobs of session creation; nil
// fields fall back to the configured defaults.
type CreateSessionInput struct {
	VenueName              string
	PricePerRequest        *float64
	MaxTrackLengthSeconds  *int
	ExplicitContentBlocked *bool
	OwnerID                string
}

// CreateSession creates an open session and its empty queue record.
func (s *SessionService) CreateSession(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	price := s.cfg.DefaultPricePerRequest
	if input.PricePerRequest != nil {
		price = *input.PricePerRequest
	}
	if price < 0 {
		return nil, errors.New("price per request must not be negative")
	}

	maxLen := s.cfg.DefaultMaxTrackSeconds
	if input.MaxTrackLengthSeconds != nil {
		maxLen = *input.MaxTrackLengthSeconds
	}

	explicitBlocked := true
	if input.ExplicitContentBlocked != nil {
		explicitBlocked = *input.ExplicitContentBlocked
	}

	session := &models.Session{
		ID:                     uuid.New().String(),
		VenueName:              input.VenueName,
		IsOpen:                 true,
		PricePerRequest:        price,
		MaxTrackLengthSeconds:  maxLen,
		ExplicitContentBlocked: explicitBlocked,
		AverageWaitSeconds:     s.cfg.DefaultAverageWaitSecs,
		OwnerID:                input.OwnerID,
		CreatedAt:              time.Now().UTC(),
	}

	if err := s.kv.Set(ctx, sessionKey(session.ID), session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if err := s.kv.Set(ctx, queueKey(session.ID), []models.QueueEntry{}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	if err := s.kv.Get(ctx, sessionKey(sessionID), &session); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return &session, nil
}

// ListActiveSessions returns the open sessions projected to their public
// summary, in key order.
func (s *SessionService) ListActiveSessions(ctx context.Context) ([]models.SessionSummary, error) {
	summaries := []models.SessionSummary{}
	err := s.kv.ScanPrefix(ctx, sessionKeyPrefix, func(raw []byte) error {
		var session models.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			return err
		}
		if session.IsOpen {
			summaries = append(summaries, session.Summary())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return summaries, nil
}

// SetOpen opens or closes a session. Owned sessions can only be toggled by
// their owner.
func (s *SessionService) SetOpen(ctx context.Context, sessionID, callerID string, open bool) (*models.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// Anonymous demo sessions (OwnerID == "") have no owner to check; any
	// authenticated admin may manage them.
	if session.OwnerID != "" && session.OwnerID != callerID {
		return nil, ErrUnauthorized
	}

	session.IsOpen = open
	if err := s.kv.Set(ctx, sessionKey(session.ID), session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return session, nil
}

// UpdateSettingsInput carries admin-editable session knobs; nil fields keep
// their current value.
type UpdateSettingsInput struct {
	PricePerRequest        *float64
	MaxTrackLengthSeconds  *int
	ExplicitContentBlocked *bool
	AverageWaitSeconds     *int
}

func (s *SessionService) UpdateSettings(ctx context.Context, sessionID, callerID string, input UpdateSettingsInput) (*models.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// Same ownerless-session rule as SetOpen
	if session.OwnerID != "" && session.OwnerID != callerID {
		return nil, ErrUnauthorized
	}

	if input.PricePerRequest != nil {
		if *input.PricePerRequest < 0 {
			return nil, errors.New("price per request must not be negative")
		}
		session.PricePerRequest = *input.PricePerRequest
	}
	if input.MaxTrackLengthSeconds != nil {
		session.MaxTrackLengthSeconds = *input.MaxTrackLengthSeconds
	}
	if input.ExplicitContentBlocked != nil {
		session.ExplicitContentBlocked = *input.ExplicitContentBlocked
	}
	if input.AverageWaitSeconds != nil {
		session.AverageWaitSeconds = *input.AverageWaitSeconds
	}

	if err := s.kv.Set(ctx, sessionKey(session.ID), session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return session, nil
}

// PatronURL is the address encoded in the session QR code.
func (s *SessionService) PatronURL(sessionID string) string {
	return fmt.Sprintf("%s/patron/%s", s.cfg.FrontendURL, sessionID)
}
