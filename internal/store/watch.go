package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports that something under the data directory was written.
// Key is the KV key for file-per-key backends and empty when the change
// cannot be attributed (database files, watcher errors).
type Change struct {
	Key string
}

// Watch streams changes in dir until ctx is cancelled. Bursts of writes are
// coalesced into one Change per key. The channel is closed when the watcher stops.
func Watch(ctx context.Context, dir string) (<-chan Change, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure %s: %w", dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	out := make(chan Change, 16)
	go func() {
		var mu sync.Mutex
		pending := map[string]struct{}{}
		var timer *time.Timer

		send := func(c Change) {
			select {
			case out <- c:
			default:
				// consumer busy; it reloads everything anyway
			}
		}
		flush := func() {
			mu.Lock()
			keys := pending
			pending = map[string]struct{}{}
			timer = nil
			mu.Unlock()
			for k := range keys {
				send(Change{Key: k})
			}
		}
		enqueue := func(key string) {
			mu.Lock()
			defer mu.Unlock()
			pending[key] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(100*time.Millisecond, flush)
			}
		}

		defer func() {
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			w.Close()
			close(out)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
				enqueue("")
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op == fsnotify.Chmod {
					continue
				}
				if key, ok := keyForPath(dir, ev.Name); ok {
					enqueue(key)
				}
			}
		}
	}()
	return out, nil
}

// keyForPath maps a file in dir to the KV key it holds. Temporary files and
// the log are ignored.
func keyForPath(dir, path string) (string, bool) {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || strings.Contains(rel, string(os.PathSeparator)) {
		return "", false
	}
	switch {
	case strings.HasPrefix(rel, "."), rel == "diary.log", rel == "salt":
		return "", false
	case strings.HasPrefix(rel, "diary.db"):
		return "", true
	}
	return rel, true
}
