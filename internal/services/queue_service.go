package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/internal/store"
)

// QueueService owns the per-session request lists. The stored value under
// "queue:<sessionID>" is the whole ordered list, played history included;
// every mutation rewrites it in a single put. Mutations for one session are
// serialized through a per-session mutex: the stored list is read-modify-
// written as one value, and without the lock two concurrent adds could both
// see the same length, compute the same boost index and miss each other's
// duplicate.
type QueueService struct {
	kv store.KV

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewQueueService(kv store.KV) *QueueService {
	return &QueueService{
		kv:    kv,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *QueueService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// AddRequestInput is one patron request as received from the boundary layer;
// Track is the denormalized snapshot the caller selected.
type AddRequestInput struct {
	TrackID     string
	Track       models.Track
	RequesterID string
	Dedication  string
	TipAmount   float64
}

// AddResult is the patron-facing confirmation for a queued request.
type AddResult struct {
	Entry      models.QueueEntry `json:"entry"`
	Position   int               `json:"position"` // 1-based
	ETASeconds int               `json:"eta_seconds"`
}

// AddRequest validates the session, inserts the entry and rewrites the queue.
// Untipped requests append at the tail of the queued subsequence; tipped ones
// jump to the halfway point floor(queuedLen/2) regardless of tip size.
func (s *QueueService) AddRequest(ctx context.Context, sessionID string, input AddRequestInput) (*AddResult, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	var session models.Session
	if err := s.kv.Get(ctx, sessionKey(sessionID), &session); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionUnavailable
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if !session.IsOpen {
		return nil, ErrSessionUnavailable
	}

	entries, err := s.loadQueue(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.TrackID == input.TrackID && e.Status == models.StatusQueued {
			return nil, ErrDuplicateRequest
		}
	}

	entry := models.QueueEntry{
		ID:          uuid.New().String(),
		TrackID:     input.TrackID,
		Track:       input.Track,
		RequesterID: input.RequesterID,
		SessionID:   sessionID,
		Dedication:  input.Dedication,
		TipAmount:   input.TipAmount,
		Boosted:     input.TipAmount > 0,
		CreatedAt:   time.Now().UTC(),
		Status:      models.StatusQueued,
	}

	queuedIdx := queuedIndices(entries)
	if entry.Boosted {
		// Halfway boost: ahead of at least half the current queued list,
		// independent of tip size or other boosted entries.
		boostPos := len(queuedIdx) / 2
		insertAt := len(entries)
		if boostPos < len(queuedIdx) {
			insertAt = queuedIdx[boostPos]
		}
		entries = append(entries, models.QueueEntry{})
		copy(entries[insertAt+1:], entries[insertAt:])
		entries[insertAt] = entry
	} else {
		entries = append(entries, entry)
	}

	recomputePositions(entries)

	if err := s.kv.Set(ctx, queueKey(sessionID), entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	// Locate the stored copy: Position was just recomputed in place.
	var stored models.QueueEntry
	for _, e := range entries {
		if e.ID == entry.ID {
			stored = e
			break
		}
	}

	queuedLen := countQueued(entries)
	return &AddResult{
		Entry:      stored,
		Position:   stored.Position + 1,
		ETASeconds: estimateWait(queuedLen, session.AverageWaitSeconds),
	}, nil
}

// ListQueue returns the session's full list, history included, in storage
// order. Unknown sessions yield an empty list, not an error.
func (s *QueueService) ListQueue(ctx context.Context, sessionID string) ([]models.QueueEntry, error) {
	return s.loadQueue(ctx, sessionID)
}

// Advance pops the queued head and marks it played. The new queued head is
// what displays render as now-playing; the engine itself never sets the
// playing status. An empty queued list is a no-op, not an error.
func (s *QueueService) Advance(ctx context.Context, sessionID string) ([]models.QueueEntry, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	entries, err := s.loadQueue(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Status == models.StatusQueued {
			entries[i].Status = models.StatusPlayed
			recomputePositions(entries)
			if err := s.kv.Set(ctx, queueKey(sessionID), entries); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
			}
			break
		}
	}
	return entries, nil
}

func (s *QueueService) loadQueue(ctx context.Context, sessionID string) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := s.kv.Get(ctx, queueKey(sessionID), &entries); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.QueueEntry{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if entries == nil {
		entries = []models.QueueEntry{}
	}
	return entries, nil
}

// queuedIndices returns the positions in the full list occupied by queued
// entries, in storage order.
func queuedIndices(entries []models.QueueEntry) []int {
	idx := make([]int, 0, len(entries))
	for i, e := range entries {
		if e.Status == models.StatusQueued {
			idx = append(idx, i)
		}
	}
	return idx
}

func countQueued(entries []models.QueueEntry) int {
	n := 0
	for _, e := range entries {
		if e.Status == models.StatusQueued {
			n++
		}
	}
	return n
}

// recomputePositions reindexes the queued subsequence 0..N-1 in storage
// order. Played entries keep the position they held when they left the queue.
func recomputePositions(entries []models.QueueEntry) {
	pos := 0
	for i := range entries {
		if entries[i].Status == models.StatusQueued {
			entries[i].Position = pos
			pos++
		}
	}
}

// estimateWait reproduces the historical ETA formula: the per-entry average
// cancels the queue length, so any non-empty queue estimates exactly the
// session average. Kept verbatim; a position-scaled estimate would be a
// behavior change.
func estimateWait(queuedLen, averageWaitSeconds int) int {
	return int(math.Round(float64(queuedLen) * (float64(averageWaitSeconds) / math.Max(1, float64(queuedLen)))))
}
