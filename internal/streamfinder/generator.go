package streamfinder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alex-monroe/six-picks-stream-finder/internal/metrics"
	"github.com/alex-monroe/six-picks-stream-finder/internal/notifications"
	"github.com/alex-monroe/six-picks-stream-finder/internal/provider"
)

// Generator turns a player list and a base config into a Config.
type Generator struct {
	resolver provider.Resolver
	sink     notifications.Sink
	logger   *slog.Logger
}

// NewGenerator creates a generator. A nil sink discards notifications.
func NewGenerator(resolver provider.Resolver, sink notifications.Sink, logger *slog.Logger) *Generator {
	if sink == nil {
		sink = notifications.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{resolver: resolver, sink: sink, logger: logger}
}

// Generate validates its inputs, looks up every player concurrently, and
// prepends the resolved players to the base priority list.
//
// Players that are not found or whose lookup fails are skipped with a
// warning notification. The run fails with ErrNoPlayersResolved when
// nothing resolves. The lookups are not cancelled by each other; ctx is
// passed to the resolver unchanged.
func (g *Generator) Generate(ctx context.Context, players []PlayerPick, baseConfigText string) (*Config, error) {
	start := time.Now()
	cfg, err := g.generate(ctx, players, baseConfigText)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	metrics.GenerationsTotal.WithLabelValues(resultLabel(err)).Inc()
	if err == nil {
		metrics.PlayersAdded.Observe(float64(cfg.Added()))
	}
	return cfg, err
}

func (g *Generator) generate(ctx context.Context, players []PlayerPick, baseConfigText string) (*Config, error) {
	runID := notifications.RunIDFrom(ctx)

	if len(players) == 0 {
		return nil, ErrEmptyInput
	}
	base, err := parseBaseConfig(baseConfigText)
	if err != nil {
		return nil, err
	}

	for _, p := range players {
		g.sink.Notify(notifications.Status(runID, fmt.Sprintf("Fetching ID for %s...", p.Name)))
	}

	results := make([]provider.Resolution, len(players))
	var eg errgroup.Group
	for i, p := range players {
		eg.Go(func() error {
			results[i] = g.resolver.Resolve(ctx, p.Name)
			return nil
		})
	}
	_ = eg.Wait()

	var added []json.RawMessage
	for i, p := range players {
		r := results[i]
		metrics.LookupsTotal.WithLabelValues(r.Outcome.String()).Inc()

		switch r.Outcome {
		case provider.Found:
			item, err := json.Marshal(PriorityItem{Type: Classify(p.Position), Data: r.ID})
			if err != nil {
				return nil, fmt.Errorf("encode item for %s: %w", p.Name, err)
			}
			added = append(added, item)
		case provider.NotFound:
			g.sink.Notify(notifications.Warning(runID,
				fmt.Sprintf("Warning: Could not find MLB ID for %s. Skipping.", p.Name)))
		default:
			g.logger.Warn("Player lookup failed", "player", p.Name, "run_id", runID, "error", r.Err)
			g.sink.Notify(notifications.Warning(runID,
				fmt.Sprintf("Warning: Failed to fetch ID for %s. Skipping.", p.Name)))
		}
	}

	if len(added) == 0 {
		return nil, ErrNoPlayersResolved
	}

	cfg, err := merge(base, added)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Generated config", "run_id", runID, "added", cfg.Added(), "total", cfg.Len())
	g.sink.Notify(notifications.Status(runID,
		fmt.Sprintf("Generated config with %d player(s) added.", cfg.Added())))
	return cfg, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrInvalidBaseConfig):
		return "invalid_base_config"
	case errors.Is(err, ErrNoPlayersResolved):
		return "no_players_resolved"
	default:
		return "error"
	}
}
