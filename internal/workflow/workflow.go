// Package workflow coordinates one generation run across its asynchronous
// stages: the base config is parked in the session slot, the roster is
// scraped, and the scraped players are handed to the generator together
// with the parked config.
//
// Every failure path ends in an error notification on the sink, so a
// watcher of the event stream always learns how a run ended.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alex-monroe/six-picks-stream-finder/internal/metrics"
	"github.com/alex-monroe/six-picks-stream-finder/internal/notifications"
	"github.com/alex-monroe/six-picks-stream-finder/internal/roster"
	"github.com/alex-monroe/six-picks-stream-finder/internal/session"
	"github.com/alex-monroe/six-picks-stream-finder/internal/streamfinder"
)

var (
	// ErrMissingContext means players arrived but no base config was pending.
	ErrMissingContext = errors.New("base config context missing")
	// ErrExtractionFailed wraps any failure to get players off a page.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrNoRosterSource is returned by GenerateFromPage on a coordinator
	// built without a roster source.
	ErrNoRosterSource = errors.New("no roster source configured")
)

// Generator builds a config from players and base config text.
type Generator interface {
	Generate(ctx context.Context, players []streamfinder.PlayerPick, baseConfigText string) (*streamfinder.Config, error)
}

// RosterSource scrapes the picked players from a page.
type RosterSource interface {
	Fetch(ctx context.Context, pageURL string) ([]streamfinder.PlayerPick, error)
}

// Coordinator runs the message handlers of a generation workflow.
type Coordinator struct {
	slot         *session.Slot
	gen          Generator
	roster       RosterSource
	pagePrefixes []string
	sink         notifications.Sink
	logger       *slog.Logger
	now          func() time.Time
}

// New creates a coordinator. roster may be nil when only the
// context/players handlers are used.
func New(slot *session.Slot, gen Generator, src RosterSource, pagePrefixes []string, sink notifications.Sink, logger *slog.Logger) *Coordinator {
	if sink == nil {
		sink = notifications.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		slot:         slot,
		gen:          gen,
		roster:       src,
		pagePrefixes: pagePrefixes,
		sink:         sink,
		logger:       logger,
		now:          time.Now,
	}
}

// withRun makes sure ctx carries a run id.
func withRun(ctx context.Context) (context.Context, string) {
	if id := notifications.RunIDFrom(ctx); id != "" {
		return ctx, id
	}
	id := notifications.NewRunID()
	return notifications.WithRunID(ctx, id), id
}

// SetBaseConfigContext parks raw as the pending base config.
func (c *Coordinator) SetBaseConfigContext(ctx context.Context, raw string) error {
	if err := c.slot.Set(ctx, raw); err != nil {
		c.logger.Warn("Rejected base config context", "error", err)
		return err
	}
	metrics.ContextEvents.WithLabelValues("set").Inc()
	return nil
}

// ProcessPlayers consumes the pending base config and generates a config
// for players. The slot is cleared before generation starts, so a failed
// run never leaves context behind for a later one.
func (c *Coordinator) ProcessPlayers(ctx context.Context, players []streamfinder.PlayerPick) (*streamfinder.Artifact, error) {
	ctx, runID := withRun(ctx)

	raw, ok, err := c.slot.TakeAndClear(ctx)
	if err != nil {
		c.sink.Notify(notifications.Error(runID, "Error: "+err.Error()))
		return nil, err
	}
	if !ok {
		metrics.ContextEvents.WithLabelValues("missing").Inc()
		c.logger.Error("Process players called but no base config context was set", "run_id", runID)
		c.sink.Notify(notifications.Error(runID, "Internal Error: Base config context missing."))
		return nil, ErrMissingContext
	}
	metrics.ContextEvents.WithLabelValues("taken").Inc()

	cfg, err := c.gen.Generate(ctx, players, raw)
	if err != nil {
		c.logger.Error("Config generation failed", "run_id", runID, "error", err)
		c.sink.Notify(notifications.Error(runID, "Error: "+err.Error()))
		return nil, err
	}

	art, err := streamfinder.NewArtifact(cfg, c.now())
	if err != nil {
		c.sink.Notify(notifications.Error(runID, "Error: "+err.Error()))
		return nil, err
	}

	c.sink.Notify(notifications.Download(runID, art.Filename, art.Content))
	return art, nil
}

// ExtractionFailed reports a scrape failure and drops any pending context.
func (c *Coordinator) ExtractionFailed(ctx context.Context, reason string) error {
	_, runID := withRun(ctx)

	c.sink.Notify(notifications.Error(runID, "Extraction Error: "+reason))
	if err := c.slot.Clear(ctx); err != nil {
		c.logger.Error("Failed to clear base config context", "run_id", runID, "error", err)
		return err
	}
	metrics.ContextEvents.WithLabelValues("cleared").Inc()
	return nil
}

// GenerateFromPage runs the whole workflow for one page: check the URL,
// park the base config, scrape the roster and process the players.
func (c *Coordinator) GenerateFromPage(ctx context.Context, pageURL, baseConfig string) (*streamfinder.Artifact, error) {
	ctx, runID := withRun(ctx)

	if c.roster == nil {
		c.sink.Notify(notifications.Error(runID, "Error: "+ErrNoRosterSource.Error()))
		return nil, ErrNoRosterSource
	}
	if err := roster.ValidatePageURL(pageURL, c.pagePrefixes); err != nil {
		c.sink.Notify(notifications.Error(runID, "Error: Not on an Ottoneu Six Picks view or createEntry page."))
		return nil, err
	}
	if err := c.SetBaseConfigContext(ctx, baseConfig); err != nil {
		c.sink.Notify(notifications.Error(runID, "Error setting base config: "+err.Error()))
		return nil, err
	}
	c.sink.Notify(notifications.Status(runID, "Base config set. Extracting players..."))

	players, err := c.roster.Fetch(ctx, pageURL)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, roster.ErrTableNotFound) || errors.Is(err, roster.ErrNoPlayers) {
			reason = roster.ExtractionFailedReason
		}
		_ = c.ExtractionFailed(ctx, reason)
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	return c.ProcessPlayers(ctx, players)
}
