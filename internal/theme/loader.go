package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader owns the two CSS providers toast popups are styled with: the
// theme, and the rules generated for the current custom style. Use,
// Install and SetCustomCSS must be called on the GTK main thread.
type Loader struct {
	mu        sync.Mutex
	logger    *slog.Logger
	themesDir string

	themeCSS  *gtk.CSSProvider
	customCSS *gtk.CSSProvider
	installed bool

	theme   *Theme
	watcher *Watcher
}

// NewLoader creates a loader reading user themes from ThemesDir.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		themesDir: ThemesDir(),
		themeCSS:  gtk.NewCSSProvider(),
		customCSS: gtk.NewCSSProvider(),
	}
}

// Install attaches the providers to display, or to the default display
// when nil. Custom style rules take precedence over the theme. Later
// calls do nothing.
func (l *Loader) Install(display *gdk.Display) {
	if l.installed {
		return
	}
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot install theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(display, l.themeCSS, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	gtk.StyleContextAddProviderForDisplay(display, l.customCSS, gtk.STYLE_PROVIDER_PRIORITY_USER)
	l.installed = true
}

// Use switches to the named theme, falling back to the default when it
// cannot be found. User themes are reloaded when their files change until
// ctx ends or Close is called.
func (l *Loader) Use(ctx context.Context, name string) error {
	t, found, err := Resolve(name, l.themesDir)
	if err != nil {
		return err
	}
	if !found {
		l.logger.Warn("theme not found, using default", "theme", name)
	}

	l.themeCSS.LoadFromString(t.CSS)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopWatching()
	l.theme = t
	l.logger.Info("loaded theme", "name", t.Name, "bundled", t.IsBundled, "path", t.Path)

	if t.IsBundled {
		return nil
	}
	w := NewWatcher(t, l.logger)
	w.SetChangeCallback(func(css string) {
		glib.IdleAdd(func() {
			l.themeCSS.LoadFromString(css)
			l.logger.Info("hot-reloaded theme", "name", t.Name)
		})
	})
	if err := w.Start(ctx); err != nil {
		l.logger.Warn("theme hot-reload unavailable", "name", t.Name, "error", err)
		return nil
	}
	l.watcher = w
	return nil
}

// SetCustomCSS replaces the custom style rules.
func (l *Loader) SetCustomCSS(css string) {
	l.customCSS.LoadFromString(css)
}

// Close stops watching the theme files.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopWatching()
}

// stopWatching must be called with l.mu held.
func (l *Loader) stopWatching() {
	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}

// CurrentTheme returns the name of the theme in use.
func (l *Loader) CurrentTheme() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.theme == nil {
		return ""
	}
	return l.theme.Name
}

// Themes returns the bundled and user theme names.
func (l *Loader) Themes() []string {
	return ListThemes(l.themesDir)
}
