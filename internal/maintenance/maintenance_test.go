package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-monroe/six-picks-stream-finder/internal/metrics"
	"github.com/alex-monroe/six-picks-stream-finder/internal/session"
	"github.com/alex-monroe/six-picks-stream-finder/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (c *countingExpirer) ExpireStale(context.Context, time.Duration) (bool, error) {
	c.calls.Add(1)
	return false, c.err
}

func TestSweep_ExpiresOldContext(t *testing.T) {
	ctx := context.Background()
	// Entries are stamped an hour in the past.
	kv := store.NewMemoryWithClock(func() time.Time { return time.Now().Add(-time.Hour) })
	slot := session.NewSlot(kv, quietLogger())
	require.NoError(t, slot.Set(ctx, `{"priority":[]}`))

	before := testutil.ToFloat64(metrics.ContextEvents.WithLabelValues("expired"))

	assert.True(t, Sweep(ctx, slot, 10*time.Minute, quietLogger()))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ContextEvents.WithLabelValues("expired")))

	_, ok, err := slot.TakeAndClear(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSweep_KeepsFreshContext(t *testing.T) {
	ctx := context.Background()
	slot := session.NewSlot(store.NewMemory(), quietLogger())
	require.NoError(t, slot.Set(ctx, `{"priority":[]}`))

	assert.False(t, Sweep(ctx, slot, 10*time.Minute, quietLogger()))

	_, ok, err := slot.TakeAndClear(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSweep_ErrorIsLoggedNotFatal(t *testing.T) {
	exp := &countingExpirer{err: errors.New("connection refused")}
	assert.False(t, Sweep(context.Background(), exp, time.Minute, quietLogger()))
	assert.EqualValues(t, 1, exp.calls.Load())
}

func TestStart_TicksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exp := &countingExpirer{}

	done := make(chan struct{})
	go func() {
		Start(ctx, exp, Config{SweepInterval: 5 * time.Millisecond, ContextTTL: time.Minute}, quietLogger())
		close(done)
	}()

	require.Eventually(t, func() bool { return exp.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestStart_DisabledReturnsImmediately(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative interval", Config{SweepInterval: -1, ContextTTL: time.Minute}},
		{"negative ttl", Config{SweepInterval: time.Minute, ContextTTL: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := &countingExpirer{}
			Start(context.Background(), exp, tt.cfg, quietLogger())
			assert.Zero(t, exp.calls.Load())
		})
	}
}

func TestStart_ZeroConfigUsesDefaults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		Start(ctx, &countingExpirer{}, Config{}, quietLogger())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), Config{}.withDefaults())

	custom := Config{SweepInterval: time.Second}.withDefaults()
	assert.Equal(t, time.Second, custom.SweepInterval)
	assert.Equal(t, DefaultConfig().ContextTTL, custom.ContextTTL)

	disabled := Config{SweepInterval: -1}.withDefaults()
	assert.Equal(t, time.Duration(-1), disabled.SweepInterval)
}
