// Package provider defines the identifier-lookup contract between lookup
// clients and the config generator. Clients report every lookup as a
// Resolution so "no match" and "service failure" never blur together.
package provider

import (
	"context"
	"errors"
)

// ErrNotFound means the service answered but matched no player.
var ErrNotFound = errors.New("player not found")

// Outcome tags a Resolution.
type Outcome int

const (
	// Found carries an identifier.
	Found Outcome = iota
	// NotFound means the service responded with zero matches.
	NotFound
	// LookupFailed means a network or service error; Err holds the reason.
	LookupFailed
)

// String returns the lower-case label used in logs, metrics and the API.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case LookupFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolution is the settled result of one identifier lookup.
type Resolution struct {
	Outcome Outcome
	ID      string
	Err     error
}

// Resolver resolves a player display name to a league identifier. Resolve
// never panics on service errors; it reports them as LookupFailed.
type Resolver interface {
	Resolve(ctx context.Context, name string) Resolution
}

// ResolveFrom turns the (id, error) pair of a plain lookup into a Resolution.
func ResolveFrom(id string, err error) Resolution {
	switch {
	case err == nil:
		return Resolution{Outcome: Found, ID: id}
	case errors.Is(err, ErrNotFound):
		return Resolution{Outcome: NotFound}
	default:
		return Resolution{Outcome: LookupFailed, Err: err}
	}
}
