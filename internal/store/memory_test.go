package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/store"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	g := &game.Game{ID: "g1", Start: "cat", Target: "dog", StartedAt: time.Now()}
	require.NoError(t, st.Save(ctx, g))

	got, err := st.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = st.Get(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.Error(t, st.Save(ctx, &game.Game{}))

	require.NoError(t, st.Delete(ctx, "g1"))
	require.NoError(t, st.Delete(ctx, "g1"))
	_, err = st.Get(ctx, "g1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_Prune(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	now := time.Now()

	require.NoError(t, st.Save(ctx, &game.Game{ID: "old", StartedAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, st.Save(ctx, &game.Game{ID: "new", StartedAt: now}))

	n, err := st.Prune(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = st.Get(ctx, "old")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(ctx, "new")
	require.NoError(t, err)
}
