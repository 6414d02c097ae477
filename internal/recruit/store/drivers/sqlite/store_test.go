package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/store"
)

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()

	s, err := NewStore("file:" + path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t, filepath.Join(t.TempDir(), "recruit.db"))

	_, err := s.Get(ctx, store.KeyToken)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, store.KeyToken, "t1"))
	require.NoError(t, s.Set(ctx, store.KeyToken, "t2"))

	got, err := s.Get(ctx, store.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "t2", got)

	require.NoError(t, s.Delete(ctx, store.KeyToken))
	require.NoError(t, s.Delete(ctx, store.KeyToken))
	_, err = s.Get(ctx, store.KeyToken)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoreSurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recruit.db")

	first, err := NewStore("file:" + path)
	require.NoError(t, err)
	require.NoError(t, first.ApplyMigrations())
	require.NoError(t, first.Set(ctx, store.KeyToken, "persisted"))
	require.NoError(t, first.Close())

	second := newTestStore(t, path)
	got, err := second.Get(ctx, store.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "persisted", got)
}
