package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "expenses")
	assert.ErrorIs(t, err, ErrNotFound)

	in := []byte(`[1]`)
	require.NoError(t, m.Set(ctx, "expenses", in))
	in[1] = '9'

	got, err := m.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(got), "Set must copy its input")

	got[1] = '7'
	again, _ := m.Get(ctx, "expenses")
	assert.Equal(t, "[1]", string(again), "Get must return a copy")

	require.NoError(t, m.Delete(ctx, "expenses"))
	_, err = m.Get(ctx, "expenses")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewMemoryFromFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	m := NewMemoryFromFiles(dir, "expenses")
	_, err := m.Get(ctx, "expenses")
	assert.ErrorIs(t, err, ErrNotFound, "missing seed file")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "expenses.json"), []byte(`[]`), 0o644))
	m = NewMemoryFromFiles(dir, "expenses", "other")
	got, err := m.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	_, err = m.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrNotFound)
}
