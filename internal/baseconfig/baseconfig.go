// Package baseconfig stores the operator's custom base configuration, the
// document every "generate from page" run starts from.
package baseconfig

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

var (
	// ErrNotSaved means no custom base config has been saved.
	ErrNotSaved = errors.New("no base config saved, upload and save one first")
	// ErrInvalidJSON means the uploaded document is not valid JSON.
	ErrInvalidJSON = errors.New("file is not valid JSON")
)

// Saved is a stored base config.
type Saved struct {
	Content   string
	UpdatedAt time.Time
}

// Repository reads and writes the saved base config.
type Repository struct {
	kv     store.KV
	logger *slog.Logger
}

// NewRepository creates a repository over kv.
func NewRepository(kv store.KV, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{kv: kv, logger: logger}
}

// Save stores raw after checking it parses as JSON. The priority array is
// checked only when a config is generated.
func (r *Repository) Save(ctx context.Context, raw string) error {
	if !json.Valid([]byte(raw)) {
		return ErrInvalidJSON
	}
	if err := r.kv.Put(ctx, config.SavedConfigKey, raw); err != nil {
		return fmt.Errorf("save base config: %w", err)
	}
	r.logger.Info("Custom base config saved", "bytes", len(raw))
	return nil
}

// Load returns the saved base config or ErrNotSaved.
func (r *Repository) Load(ctx context.Context) (Saved, error) {
	e, ok, err := r.kv.Get(ctx, config.SavedConfigKey)
	if err != nil {
		return Saved{}, fmt.Errorf("load base config: %w", err)
	}
	if !ok || e.Value == "" {
		return Saved{}, ErrNotSaved
	}
	return Saved{Content: e.Value, UpdatedAt: e.UpdatedAt}, nil
}

// Delete removes the saved base config. Deleting when nothing is saved is
// not an error.
func (r *Repository) Delete(ctx context.Context) error {
	if err := r.kv.Delete(ctx, config.SavedConfigKey); err != nil {
		return fmt.Errorf("delete base config: %w", err)
	}
	r.logger.Info("Custom base config deleted")
	return nil
}
