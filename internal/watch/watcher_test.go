package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	fw, err := New(path, func() { calls.Add(1) }, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		fw.Close()
	})
	go fw.Run(ctx)
	return &calls
}

func TestFileWatcher_WriteTriggersOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	calls := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1}]`), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestFileWatcher_RenameOverTriggersOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	calls := startWatcher(t, path)

	tmp := filepath.Join(dir, "next.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`[]`), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	calls := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
