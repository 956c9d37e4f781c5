package session_storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFlagStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewFileFlagStore(dir)

	ok, err := store.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetAuthenticated(ctx, true))
	ok, err = NewFileFlagStore(dir).Authenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	info, err := os.Stat(filepath.Join(dir, sessionFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.SetAuthenticated(ctx, false))
	ok, err = store.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileFlagStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte("{"), 0o600))

	_, err := NewFileFlagStore(dir).Authenticated(context.Background())
	assert.Error(t, err)
}
