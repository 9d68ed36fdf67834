package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDirs(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"schemas/services", "reviews", "unrelated"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}

	assert.Equal(t, []string{
		filepath.Join(root, "reviews"),
		filepath.Join(root, "schemas"),
		filepath.Join(root, "schemas", "services"),
	}, Dirs(root))
}

func TestRun_NothingToWatch(t *testing.T) {
	err := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, func() error { return nil }, zaptest.NewLogger(t), 10*time.Millisecond)
	assert.Error(t, err)
}

func TestRun_RebuildsOnceAfterBurstOfChanges(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "schemas", "faqs")
	require.NoError(t, os.MkdirAll(dir, 0755))

	var builds atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{filepath.Join(root, "schemas")}, func() error {
			builds.Add(1)
			return nil
		}, zaptest.NewLogger(t), 100*time.Millisecond)
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "q.yaml"), []byte("question: Q?\n"), 0644))
	}

	assert.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestRun_WatchesNewSubdirectories(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "llm-data")
	require.NoError(t, os.MkdirAll(dir, 0755))

	var builds atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	defer func() {
		cancel()
		<-done
	}()
	go func() {
		defer close(done)
		_ = run(ctx, []string{dir}, func() error {
			builds.Add(1)
			return nil
		}, zaptest.NewLogger(t), 50*time.Millisecond)
	}()

	time.Sleep(100 * time.Millisecond)
	sub := filepath.Join(dir, "help-articles")
	require.NoError(t, os.Mkdir(sub, 0755))
	assert.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.md"), []byte("hi\n"), 0644))
	assert.Eventually(t, func() bool { return builds.Load() == 2 }, 2*time.Second, 20*time.Millisecond)
}
