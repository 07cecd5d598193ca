package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value. Callers in the
// session layer treat it the same as any other failure: no value, degrade
// to the anonymous flow.
var ErrNotFound = errors.New("storage: key not found")

// ErrUnavailable wraps backend I/O failures so callers can distinguish a
// missing key from a broken store.
var ErrUnavailable = errors.New("storage: backend unavailable")

// Store is the persisted session store contract. Implementations must make
// each operation atomic from the caller's point of view: a Set either lands
// completely or reports an error, never a torn value.
//
// Clear removes every key the store owns, not just the ones famtask wrote.
// That is deliberate: a 401 wipes the whole namespace, matching the app's
// observed behavior.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
