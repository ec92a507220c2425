package baseconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-monroe/six-picks-stream-finder/internal/config"
	"github.com/alex-monroe/six-picks-stream-finder/internal/store"
)

func TestRepository_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(store.NewMemory(), nil)

	_, err := r.Load(ctx)
	assert.ErrorIs(t, err, ErrNotSaved)

	require.NoError(t, r.Save(ctx, `{"priority":[]}`))
	s, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"priority":[]}`, s.Content)
	assert.False(t, s.UpdatedAt.IsZero())

	require.NoError(t, r.Save(ctx, `{"priority":[{"type":"bat"}]}`))
	s, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"priority":[{"type":"bat"}]}`, s.Content)

	require.NoError(t, r.Delete(ctx))
	_, err = r.Load(ctx)
	assert.ErrorIs(t, err, ErrNotSaved)

	assert.NoError(t, r.Delete(ctx))
}

func TestRepository_SaveRejectsInvalidJSON(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(store.NewMemory(), nil)

	for _, raw := range []string{"", "{", "priority: []"} {
		assert.ErrorIs(t, r.Save(ctx, raw), ErrInvalidJSON, raw)
	}
	_, err := r.Load(ctx)
	assert.ErrorIs(t, err, ErrNotSaved)
}

func TestRepository_DoesNotTouchPendingContext(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Put(ctx, config.PendingContextKey, `{"pending":true}`))

	r := NewRepository(kv, nil)
	require.NoError(t, r.Save(ctx, `{"priority":[]}`))
	require.NoError(t, r.Delete(ctx))

	e, ok, err := kv.Get(ctx, config.PendingContextKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"pending":true}`, e.Value)
}
