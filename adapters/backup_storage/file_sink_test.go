package backup_storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(filepath.Join(dir, "nested"))
	require.NoError(t, err)

	loc, err := sink.Upload(context.Background(), strings.NewReader(`{"version":1}`), "backup-1.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "backup-1.json"), loc)

	rc, err := sink.Open(context.Background(), "backup-1.json")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(b))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileSink_RejectsPathKeys(t *testing.T) {
	sink, err := NewFileSink(t.TempDir())
	require.NoError(t, err)

	_, err = sink.Upload(context.Background(), strings.NewReader("x"), "../escape.json")
	assert.Error(t, err)
	_, err = sink.Open(context.Background(), "a/b.json")
	assert.Error(t, err)
}
