package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSettlesAfterWrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "project", "features", "m"), 0o755))

	w, err := New(root, []string{".c", ".h"}, 30*time.Millisecond, nil)
	require.NoError(t, err)

	settled := make(chan struct{}, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() {
			select {
			case settled <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register the tree.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(root, "project", "features", "m", "ida_m.c")
	require.NoError(t, os.WriteFile(path, []byte("int x;\n"), 0o644))

	select {
	case <-settled:
	case <-ctx.Done():
		t.Fatal("watcher did not settle after a relevant write")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRunStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, []string{".c"}, 10*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func() {}) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestNewNormalizesExtensions(t *testing.T) {
	w, err := New(t.TempDir(), []string{"c", " .H "}, 0, nil)
	require.NoError(t, err)
	defer w.fsw.Close()

	assert.True(t, w.extensions[".c"])
	assert.True(t, w.extensions[".h"])
	assert.Equal(t, 500*time.Millisecond, w.debounce, "zero debounce falls back to the default")
}
