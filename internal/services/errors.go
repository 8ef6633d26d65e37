package services

import "errors"

// Stable error kinds surfaced to handlers. Handlers map these to HTTP status
// codes with errors.Is; services never retry on their own.
var (
	ErrNotFound           = errors.New("not found")
	ErrSessionUnavailable = errors.New("session not available")
	ErrDuplicateRequest   = errors.New("song already in queue")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
