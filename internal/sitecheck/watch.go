package sitecheck

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// Watcher watches the site directory for changes to the files the audit
// cares about and reruns the given callback once a burst of writes has
// settled.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	siteDir     string
	onChange    func([]string)
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats WatcherStats
}

// WatcherStats tracks watcher activity for debugging and tests.
type WatcherStats struct {
	EventsSeen    int
	RunsTriggered int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
	LastEventOp   string
}

// NewWatcher creates a watcher over the configured site directory.
// onChange receives the batch of settled paths.
func NewWatcher(cfg *config.Config, onChange func([]string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fsw,
		siteDir:     cfg.Site.Dir,
		onChange:    onChange,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a
// goroutine until Stop or ctx cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	err := filepath.WalkDir(w.siteDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		logging.Get(logging.CategoryWatch).Warn("initial watch of %s failed: %v", w.siteDir, err)
	} else {
		logging.Watch("watching %s", w.siteDir)
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Error("close watcher: %v", err)
	}
	logging.Watch("stopped")
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// WatchedDirs returns the directories currently being watched.
func (w *Watcher) WatchedDirs() []string {
	return w.watcher.WatchList()
}

// Stats returns a snapshot of the watcher statistics.
func (w *Watcher) Stats() WatcherStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Watch("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("watch error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.flushSettled()
		}
	}
}

// handleEvent records a relevant filesystem event for debounced
// processing. Newly created directories join the watch.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err == nil {
				logging.WatchDebug("watching new directory %s", event.Name)
			}
			return
		}
	}

	if !relevantFile(event.Name) {
		return
	}

	var op string
	switch {
	case event.Op&fsnotify.Create != 0:
		op = "create"
	case event.Op&fsnotify.Write != 0:
		op = "write"
	case event.Op&fsnotify.Remove != 0:
		op = "remove"
	case event.Op&fsnotify.Rename != 0:
		op = "rename"
	default:
		return
	}

	logging.WatchDebug("%s %s", op, event.Name)

	w.mu.Lock()
	w.stats.EventsSeen++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventOp = op
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// flushSettled fires the callback for paths whose last event is older
// than the debounce window.
func (w *Watcher) flushSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.debounceMap {
		if now.Sub(at) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	if len(settled) > 0 {
		w.stats.RunsTriggered++
	}
	w.mu.Unlock()

	if len(settled) > 0 {
		logging.Watch("%d files settled, rerunning", len(settled))
		w.onChange(settled)
	}
}

// relevantFile reports whether a change to the path can affect the
// audited behaviors.
func relevantFile(path string) bool {
	switch filepath.Ext(path) {
	case ".html", ".css", ".js", ".wasm":
		return true
	}
	return false
}
