// Package session holds the pending base configuration between the moment an
// operator asks for a config and the moment the scraped roster arrives.
//
// The slot is single-valued: Set replaces, TakeAndClear consumes. It is not a
// queue, and overlapping generation requests are not supported; a second
// request may consume the first one's context.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alex-monroe/six-picks-stream-finder/internal/config"
	"github.com/alex-monroe/six-picks-stream-finder/internal/store"
)

// ErrInvalidInput is returned by Set for empty or unparseable config text.
var ErrInvalidInput = errors.New("invalid input")

// Slot is the pending-context hand-off. It is safe to share between the
// stage that sets the context and the stage that consumes it.
type Slot struct {
	kv     store.KV
	key    string
	now    func() time.Time
	logger *slog.Logger
}

// NewSlot creates a slot stored under config.PendingContextKey in kv.
func NewSlot(kv store.KV, logger *slog.Logger) *Slot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slot{
		kv:     kv,
		key:    config.PendingContextKey,
		now:    time.Now,
		logger: logger,
	}
}

// Set validates that raw is JSON and stores it as the single pending value.
// Structural validation of the priority array happens at generation time.
func (s *Slot) Set(ctx context.Context, raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: received empty base config", ErrInvalidInput)
	}
	var probe any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return fmt.Errorf("%w: invalid base config format: %v", ErrInvalidInput, err)
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save base config: %w", err)
	}
	s.logger.Debug("Base config context set", "bytes", len(raw))
	return nil
}

// TakeAndClear atomically reads and clears the pending value. ok is false
// when nothing was set or it was already consumed.
func (s *Slot) TakeAndClear(ctx context.Context) (raw string, ok bool, err error) {
	e, ok, err := s.kv.Take(ctx, s.key)
	if err != nil {
		return "", false, fmt.Errorf("retrieve base config: %w", err)
	}
	return e.Value, ok, nil
}

// Clear empties the slot unconditionally.
func (s *Slot) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear base config: %w", err)
	}
	return nil
}

// ExpireStale clears a pending value that has waited longer than maxAge and
// reports whether it did.
func (s *Slot) ExpireStale(ctx context.Context, maxAge time.Duration) (bool, error) {
	e, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return false, fmt.Errorf("inspect base config: %w", err)
	}
	if !ok || s.now().Sub(e.UpdatedAt) <= maxAge {
		return false, nil
	}
	if err := s.Clear(ctx); err != nil {
		return false, err
	}
	s.logger.Info("Expired stale base config context", "age", s.now().Sub(e.UpdatedAt).Round(time.Second))
	return true, nil
}
