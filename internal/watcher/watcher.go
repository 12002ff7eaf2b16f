// Package watcher reports edits to the template directory in debug mode.
// Templates are read on every request, so nothing is reloaded here.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 50 * time.Millisecond

// editor droppings
var ignoreSuffixes = []string{".swp", ".swx", "~", ".tmp", ".DS_Store"}

// Watcher watches one directory (not recursive)
type Watcher struct {
	fw       *fsnotify.Watcher
	dir      string
	onChange func(path string)
	done     chan struct{}
	stopped  bool
	mu       sync.Mutex

	now      func() time.Time
	debounce map[string]time.Time // last event per path, pruned after debounceInterval
}

// New starts watching dir. onChange receives the absolute path of each
// written, created, removed or renamed file.
func New(dir string, onChange func(path string)) (*Watcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absDir); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(absDir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		fw:       fw,
		dir:      absDir,
		onChange: onChange,
		done:     make(chan struct{}),
		now:      time.Now,
		debounce: make(map[string]time.Time),
	}
	go w.loop()
	return w, nil
}

// Dir returns the absolute watched directory
func (w *Watcher) Dir() string {
	return w.dir
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if shouldIgnore(event.Name) || w.debounced(event.Name) {
				continue
			}
			if w.onChange != nil {
				w.onChange(event.Name)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("[WATCH]: Error watching %s: %v", w.dir, err)

		case <-w.done:
			return
		}
	}
}

// debounced reports whether path fired within debounceInterval.
// Only called from loop.
func (w *Watcher) debounced(path string) bool {
	now := w.now()
	for p, last := range w.debounce {
		if now.Sub(last) >= debounceInterval {
			delete(w.debounce, p)
		}
	}
	if _, ok := w.debounce[path]; ok {
		return true
	}
	w.debounce[path] = now
	return false
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".#") {
		return true
	}
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
