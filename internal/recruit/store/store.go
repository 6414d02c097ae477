package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("store: not found")

// KeyToken is where the bearer token survives process restarts.
const KeyToken = "token"

// Store is durable client-side storage: a small string key/value space,
// the CLI's equivalent of browser local storage. Concrete drivers (sqlite,
// memory) implement this.
type Store interface {
	// Get returns ErrNotFound when key was never set or has been deleted.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}
