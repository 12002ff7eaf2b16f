package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func newTestWatcher(t *testing.T, dir string) <-chan string {
	t.Helper()
	changed := make(chan string, 16)
	w, err := New(dir, func(path string) {
		changed <- path
	})
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })
	return changed
}

func TestWatcherDetectsTemplateEdit(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(index, []byte("<p>original</p>"), 0o644))

	changed := newTestWatcher(t, dir)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(index, []byte("<p>modified</p>"), 0o644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for template edit")
	assert.Equal(t, index, path)
}

func TestWatcherDetectsNewTemplate(t *testing.T) {
	dir := t.TempDir()
	changed := newTestWatcher(t, dir)
	time.Sleep(50 * time.Millisecond)

	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte("<p>new</p>"), 0o644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for new template")
	assert.Equal(t, page, path)
}

// drain collects callbacks until none arrive for quiet
func drain(ch <-chan string, quiet time.Duration) []string {
	var got []string
	for {
		path, ok := waitForCallback(ch, quiet)
		if !ok {
			return got
		}
		got = append(got, path)
	}
}

func TestWatcherDebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(index, []byte("<p>0</p>"), 0o644))

	changed := newTestWatcher(t, dir)
	time.Sleep(50 * time.Millisecond)

	f, err := os.OpenFile(index, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("<p>1</p>")
	require.NoError(t, err)
	_, err = f.WriteString("<p>2</p>")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, []string{index}, drain(changed, 300*time.Millisecond))
}

func TestWatcherSeparateFilesNotDebounced(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "index.html")
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(index, []byte("<p>index</p>"), 0o644))
	require.NoError(t, os.WriteFile(page, []byte("<p>page</p>"), 0o644))

	changed := newTestWatcher(t, dir)
	time.Sleep(50 * time.Millisecond)

	f1, err := os.OpenFile(index, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	f2, err := os.OpenFile(page, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f1.WriteString("x")
	require.NoError(t, err)
	_, err = f2.WriteString("x")
	require.NoError(t, err)
	require.NoError(t, f1.Close())
	require.NoError(t, f2.Close())

	assert.ElementsMatch(t, []string{index, page}, drain(changed, 300*time.Millisecond))
}

func TestDebounced(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w := &Watcher{
		now:      func() time.Time { return clock },
		debounce: make(map[string]time.Time),
	}

	assert.False(t, w.debounced("/t/index.html"))
	clock = clock.Add(10 * time.Millisecond)
	assert.True(t, w.debounced("/t/index.html"), "second event within interval")
	assert.False(t, w.debounced("/t/page.html"), "other path has its own window")

	clock = clock.Add(debounceInterval)
	assert.False(t, w.debounced("/t/index.html"), "window expired")
}

func TestDebouncedPrunesExpiredEntries(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w := &Watcher{
		now:      func() time.Time { return clock },
		debounce: make(map[string]time.Time),
	}

	for _, p := range []string{"/t/a.html", "/t/b.html", "/t/c.html"} {
		w.debounced(p)
	}
	assert.Len(t, w.debounce, 3)

	clock = clock.Add(2 * debounceInterval)
	w.debounced("/t/index.html")
	assert.Equal(t, map[string]time.Time{"/t/index.html": clock}, w.debounce)
}

func TestWatcherIgnoresEditorFiles(t *testing.T) {
	dir := t.TempDir()
	changed := newTestWatcher(t, dir)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".index.html.swp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html~"), []byte("x"), 0o644))

	path, ok := waitForCallback(changed, 200*time.Millisecond)
	assert.False(t, ok, "unexpected callback for %s", path)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestStopIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestShouldIgnore(t *testing.T) {
	assert.True(t, shouldIgnore("/tmp/t/.index.html.swp"))
	assert.True(t, shouldIgnore("/tmp/t/index.html~"))
	assert.True(t, shouldIgnore("/tmp/t/.#index.html"))
	assert.False(t, shouldIgnore("/tmp/t/index.html"))
}
