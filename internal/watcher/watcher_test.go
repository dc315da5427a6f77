package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCoalescesBursts(t *testing.T) {
	root := t.TempDir()

	w, err := New(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(root))

	var settles atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func() { settles.Add(1) })
	}()

	// A burst of writes should settle into a single callback.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.proto"), []byte{byte(i)}, 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return settles.Load() == 1
	}, 2*time.Second, 20*time.Millisecond)

	// Quiet period: no further callbacks.
	time.Sleep(300 * time.Millisecond)
	assert.EqualValues(t, 1, settles.Load())

	cancel()
	<-done
}

func TestWatcherSeesNewModuleDirectories(t *testing.T) {
	root := t.TempDir()

	w, err := New(50*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(root))

	var settles atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx, func() { settles.Add(1) }) }()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "billing", "v1"), 0755))

	assert.Eventually(t, func() bool {
		return settles.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestAddMissingRoot(t *testing.T) {
	w, err := New(50*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "absent")))
}
