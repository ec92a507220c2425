// Package store provides the session-scoped key/value medium shared by the
// pending-context slot and the saved base configuration.
//
// Two backends exist: Memory for a single process (CLI runs, tests, a server
// without DATABASE_URL) and Postgres for a server whose state should survive
// between requests served by different instances.
package store

import (
	"context"
	"time"
)

// Entry is a stored value with the time it was last written.
type Entry struct {
	Value     string
	UpdatedAt time.Time
}

// KV is a string key/value store. Take must be atomic: a value is returned
// to exactly one caller.
type KV interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key, value string) error
	Take(ctx context.Context, key string) (Entry, bool, error)
	Delete(ctx context.Context, key string) error
}
