package audio

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// cacheInvalidator drops a decoded sound so the next play re-reads the file.
type cacheInvalidator interface {
	InvalidateCache(path string)
}

// Watcher drops the decoded copy of a sound file when the file changes on
// disk. Directories are watched so replaced files are noticed.
type Watcher struct {
	mu     sync.Mutex
	logger *slog.Logger
	cache  cacheInvalidator

	paths map[string]bool // cleaned sound paths
	dirs  map[string]int  // watched directories, by number of sounds in them

	fs      *fsnotify.Watcher
	done    chan struct{}
	running bool
}

// NewWatcher creates a new sound file watcher.
func NewWatcher(cache cacheInvalidator, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger: logger,
		cache:  cache,
		paths:  make(map[string]bool),
		dirs:   make(map[string]int),
	}
}

// Watch adds a sound file. Paths added before Start are watched once it
// runs.
func (w *Watcher) Watch(path string) {
	if path == "" {
		return
	}
	path = filepath.Clean(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.paths[path] {
		return
	}
	w.paths[path] = true

	dir := filepath.Dir(path)
	w.dirs[dir]++
	if w.running && w.dirs[dir] == 1 {
		w.addDir(dir)
	}
}

// Unwatch removes a sound file.
func (w *Watcher) Unwatch(path string) {
	path = filepath.Clean(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.paths[path] {
		return
	}
	delete(w.paths, path)

	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return
	}
	delete(w.dirs, dir)
	if w.running {
		_ = w.fs.Remove(dir)
	}
}

// UnwatchAll removes every sound file.
func (w *Watcher) UnwatchAll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		for dir := range w.dirs {
			_ = w.fs.Remove(dir)
		}
	}
	clear(w.paths)
	clear(w.dirs)
}

// Watched returns the number of watched sound files.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.paths)
}

// Start begins watching until Stop is called or ctx ends.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fs = fs
	w.done = make(chan struct{})
	w.running = true

	for dir := range w.dirs {
		w.addDir(dir)
	}

	go w.watch(ctx, fs, w.done)
	w.logger.Debug("audio watcher started", "files", len(w.paths))
	return nil
}

// addDir starts watching dir. Must hold w.mu.
func (w *Watcher) addDir(dir string) {
	if err := w.fs.Add(dir); err != nil {
		w.logger.Warn("cannot watch sound directory", "dir", dir, "error", err)
	}
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
	fs := w.fs
	w.mu.Unlock()

	// Closing waits for fsnotify's reader, which may be waiting on us.
	if err := fs.Close(); err != nil {
		w.logger.Debug("closing audio watcher", "error", err)
	}
	w.logger.Debug("audio watcher stopped")
}

func (w *Watcher) watch(ctx context.Context, fs *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case event, ok := <-fs.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.invalidate(event.Name)
			}

		case err, ok := <-fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("audio watcher error", "error", err)

		case <-ctx.Done():
			w.Stop()
			return

		case <-done:
			return
		}
	}
}

// invalidate drops the cached sound for path if it is watched.
func (w *Watcher) invalidate(path string) {
	path = filepath.Clean(path)

	w.mu.Lock()
	watched := w.paths[path]
	w.mu.Unlock()

	if !watched || w.cache == nil {
		return
	}
	w.logger.Debug("sound file changed, invalidating cache", "path", path)
	w.cache.InvalidateCache(path)
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
