package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReportsChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "part.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	fw, err := NewFileWatcher(50*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()
	require.NoError(t, fw.Watch([]string{file}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- fw.Run(ctx, func(_ context.Context, path string) {
			changes <- path
		})
	}()

	// unwatched files in the same directory are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(file, []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(file, []byte("c"), 0o644))

	select {
	case got := <-changes:
		assert.Equal(t, file, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatchAndRemoveAll(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")

	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, fw.Watch([]string{a, b, a}))
	assert.ElementsMatch(t, []string{a, b}, fw.Files())

	require.NoError(t, fw.RemoveAll())
	assert.Empty(t, fw.Files())
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	assert.Error(t, fw.Watch([]string{filepath.Join(t.TempDir(), "nope", "x.yaml")}))
}
