package server

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// WatcherConfig configures the page watcher.
type WatcherConfig struct {
	// Paths are the directories to watch.
	Paths []string

	// Ignore patterns to skip, matched against the base name (globs).
	Ignore []string

	// Debounce is the polling interval.
	Debounce time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher polls the watched directories for page changes and hands each
// changed file to the OnChange callback. In development mode the serve
// command points the callback at ReloadServer.NotifyReload.
type Watcher struct {
	config   WatcherConfig
	onChange func(path string)

	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	timestamps map[string]time.Time
}

// NewWatcher creates a new page watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}

	return &Watcher{
		config:     config,
		timestamps: make(map[string]time.Time),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins polling. It blocks until the context is cancelled or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	// Build the baseline timestamps without reporting.
	w.scan(false)

	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.scan(true)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// scan walks the watched directories comparing modification times
// against the previous pass. New, modified, and deleted files are
// reported when report is set.
func (w *Watcher) scan(report bool) {
	w.mu.Lock()
	callback := w.onChange

	var changed []string
	seen := make(map[string]bool, len(w.timestamps))

	for _, root := range w.config.Paths {
		filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if w.shouldIgnore(p) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				return nil
			}

			seen[p] = true
			last, exists := w.timestamps[p]
			if !exists || info.ModTime().After(last) {
				w.timestamps[p] = info.ModTime()
				if report {
					changed = append(changed, p)
				}
			}
			return nil
		})
	}

	for p := range w.timestamps {
		if !seen[p] {
			delete(w.timestamps, p)
			if report {
				changed = append(changed, p)
			}
		}
	}
	w.mu.Unlock()

	if callback == nil {
		return
	}
	for _, p := range changed {
		callback(p)
	}
}

// shouldIgnore checks the base name against the ignore patterns.
func (w *Watcher) shouldIgnore(p string) bool {
	name := filepath.Base(p)
	for _, pattern := range w.config.Ignore {
		if name == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
