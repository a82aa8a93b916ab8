package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/kv"
)

func openTemp(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(path)
	require.NoError(t, err, "open sqlite store")
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t, filepath.Join(t.TempDir(), "nested", "tally.db"))
	defer s.Close()

	require.NoError(t, s.Ping(ctx))
	_, err := s.Get(ctx, "expenses")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "expenses", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Set(ctx, "expenses", []byte(`[]`)))
	got, err := s.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, s.Delete(ctx, "expenses"))
	_, err = s.Get(ctx, "expenses")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tally.db")

	s := openTemp(t, path)
	require.NoError(t, s.Set(ctx, "expenses", []byte(`[1,2]`)))
	require.NoError(t, s.Close())

	// Reopening re-runs migrations, which must be a no-op.
	s = openTemp(t, path)
	defer s.Close()
	got, err := s.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(got))
}

func TestSQLiteVersionTracksWritesFromEveryHandle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tally.db")
	a := openTemp(t, path)
	defer a.Close()
	b := openTemp(t, path)
	defer b.Close()

	v0, err := a.Version(ctx, "expenses")
	require.NoError(t, err)
	assert.Zero(t, v0, "absent key")

	require.NoError(t, a.Set(ctx, "expenses", []byte(`[]`)))
	v1, err := a.Version(ctx, "expenses")
	require.NoError(t, err)
	assert.Greater(t, v1, v0)

	// Back-to-back writes from another handle still move the version.
	require.NoError(t, b.Set(ctx, "expenses", []byte(`[1]`)))
	require.NoError(t, b.Set(ctx, "expenses", []byte(`[2]`)))
	v2, err := a.Version(ctx, "expenses")
	require.NoError(t, err)
	assert.Greater(t, v2, v1)

	require.NoError(t, b.Delete(ctx, "expenses"))
	v3, err := a.Version(ctx, "expenses")
	require.NoError(t, err)
	assert.Zero(t, v3)
}
