// Package store is the durable key-value collaborator: a flat map from string
// key to a JSON value, with prefix scan. Sessions, queues and policies all
// live here as whole-value records.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

type KV interface {
	// Get unmarshals the value at key into dest. Returns ErrNotFound if the
	// key is absent.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set marshals value and writes it at key, replacing any previous value.
	Set(ctx context.Context, key string, value interface{}) error

	// ScanPrefix unmarshals every value whose key starts with prefix into a
	// fresh element appended via the collect callback.
	ScanPrefix(ctx context.Context, prefix string, collect func(raw []byte) error) error
}
