package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-monroe/six-picks-stream-finder/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSlot_SetThenTakeReturnsValueOnce(t *testing.T) {
	ctx := context.Background()
	s := NewSlot(store.NewMemory(), quietLogger())

	require.NoError(t, s.Set(ctx, `{"priority":[]}`))

	raw, ok, err := s.TakeAndClear(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"priority":[]}`, raw)

	raw, ok, err = s.TakeAndClear(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, raw)
}

func TestSlot_SetReplacesPendingValue(t *testing.T) {
	ctx := context.Background()
	s := NewSlot(store.NewMemory(), quietLogger())

	require.NoError(t, s.Set(ctx, `{"priority":[],"n":1}`))
	require.NoError(t, s.Set(ctx, `{"priority":[],"n":2}`))

	raw, ok, err := s.TakeAndClear(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"priority":[],"n":2}`, raw)
}

func TestSlot_SetRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	s := NewSlot(store.NewMemory(), quietLogger())

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", "received empty base config"},
		{"not json", "not json", "invalid base config format"},
		{"truncated", `{"priority":[`, "invalid base config format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Set(ctx, tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, ok, err := s.TakeAndClear(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "rejected input must not be stored")
}

func TestSlot_SetAcceptsAnyJSON(t *testing.T) {
	// Only parsing is checked here; the priority array is validated later.
	ctx := context.Background()
	s := NewSlot(store.NewMemory(), quietLogger())

	require.NoError(t, s.Set(ctx, `[1,2,3]`))
	raw, ok, err := s.TakeAndClear(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1,2,3]`, raw)
}

func TestSlot_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewSlot(store.NewMemory(), quietLogger())

	require.NoError(t, s.Clear(ctx), "clearing an empty slot is fine")
	require.NoError(t, s.Set(ctx, `{"priority":[]}`))
	require.NoError(t, s.Clear(ctx))

	_, ok, err := s.TakeAndClear(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlot_ExpireStale(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	s := NewSlot(store.NewMemoryWithClock(clock), quietLogger())
	s.now = clock

	expired, err := s.ExpireStale(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, expired, "nothing pending")

	require.NoError(t, s.Set(ctx, `{"priority":[]}`))

	now = now.Add(30 * time.Second)
	expired, err = s.ExpireStale(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, expired, "still fresh")

	now = now.Add(2 * time.Minute)
	expired, err = s.ExpireStale(ctx, time.Minute)
	require.NoError(t, err)
	assert.True(t, expired)

	_, ok, err := s.TakeAndClear(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
