package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultSettle is how long the watcher waits after the last change
// before reloading; editors often write a file in several steps.
const defaultSettle = 150 * time.Millisecond

// Watcher reloads a user theme when any CSS file in its directory changes,
// so edits to imported partials are picked up too. Callbacks run on the
// watcher goroutine.
type Watcher struct {
	mu       sync.Mutex
	reloadMu sync.Mutex // serializes Theme.Reload
	logger   *slog.Logger

	theme    *Theme
	settle   time.Duration
	onChange func(css string)

	fs      *fsnotify.Watcher
	pending *time.Timer
	done    chan struct{}
	running bool
}

// NewWatcher creates a watcher for theme.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger: logger,
		theme:  theme,
		settle: defaultSettle,
	}
}

// SetSettleDelay sets how long to wait for changes to stop before
// reloading.
func (w *Watcher) SetSettleDelay(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settle = d
}

// SetChangeCallback sets the callback that receives the reloaded CSS.
func (w *Watcher) SetChangeCallback(callback func(css string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start watches the theme directory until Stop is called or ctx ends.
// Bundled themes have no directory and are not watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	if w.theme == nil || w.theme.IsBundled {
		w.logger.Debug("not watching bundled theme")
		return nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(w.theme.Path)
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return err
	}

	w.fs = fs
	w.done = make(chan struct{})
	w.running = true
	go w.watch(ctx, fs, w.done)

	w.logger.Debug("theme watcher started", "dir", dir, "theme", w.theme.Name)
	return nil
}

// Stop stops watching. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.done)
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	fs := w.fs
	w.mu.Unlock()

	// Closing waits for fsnotify's reader, which may be waiting on us.
	if err := fs.Close(); err != nil {
		w.logger.Debug("closing theme watcher", "error", err)
	}
	w.logger.Debug("theme watcher stopped")
}

func (w *Watcher) watch(ctx context.Context, fs *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case event, ok := <-fs.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".css") {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)

		case <-ctx.Done():
			w.Stop()
			return

		case <-done:
			return
		}
	}
}

// schedule restarts the settle timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.settle, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.pending = nil
	theme := w.theme
	callback := w.onChange
	w.mu.Unlock()

	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	changed, err := theme.Reload()
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}

	w.logger.Info("theme changed, reloading", "path", theme.Path)
	if callback != nil {
		callback(theme.CSS)
	}
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
