// Package maintenance runs periodic background tasks as Go tickers.
// Today that is one task: dropping a pending base config that nobody
// consumed, so an abandoned run cannot leak its context into the next one.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/alex-monroe/six-picks-stream-finder/internal/metrics"
)

// Expirer clears a pending value older than maxAge and reports whether it
// did. *session.Slot implements it.
type Expirer interface {
	ExpireStale(ctx context.Context, maxAge time.Duration) (bool, error)
}

// Config controls maintenance task intervals. A zero duration takes the
// DefaultConfig value; a negative one disables the sweep.
type Config struct {
	SweepInterval time.Duration // How often the pending context is checked
	ContextTTL    time.Duration // Age after which a pending context is dropped
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		SweepInterval: 1 * time.Minute,
		ContextTTL:    10 * time.Minute,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, slot Expirer, cfg Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	if cfg.SweepInterval < 0 || cfg.ContextTTL < 0 {
		logger.Info("Maintenance disabled", "sweep", cfg.SweepInterval, "context_ttl", cfg.ContextTTL)
		return
	}
	logger.Info("Maintenance tickers started",
		"sweep", cfg.SweepInterval,
		"context_ttl", cfg.ContextTTL)

	t := time.NewTicker(cfg.SweepInterval)
	defer t.Stop()

	runLoop(ctx, t.C, func() { Sweep(ctx, slot, cfg.ContextTTL, logger) })
	logger.Info("Maintenance tickers stopped")
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SweepInterval == 0 {
		c.SweepInterval = def.SweepInterval
	}
	if c.ContextTTL == 0 {
		c.ContextTTL = def.ContextTTL
	}
	return c
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs one expiry pass and reports whether a stale context was dropped.
func Sweep(ctx context.Context, slot Expirer, maxAge time.Duration, logger *slog.Logger) bool {
	expired, err := slot.ExpireStale(ctx, maxAge)
	if err != nil {
		logger.Warn("Sweep: failed to expire pending context", "error", err)
		return false
	}
	if expired {
		metrics.ContextEvents.WithLabelValues("expired").Inc()
	}
	return expired
}
