package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/layout"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/theme"
	"github.com/jmylchreest/toasty/internal/toast"
)

// Queue is the part of a coordinator that mouse actions reach.
type Queue interface {
	DismissActive(animated bool)
	Clear() int
}

// Presenter shows toasts as layer-shell popups. It implements
// toast.Presenter and must only be used on the GTK main thread.
type Presenter struct {
	app     *gtk.Application
	config  *config.Config
	loader  *theme.Loader
	screens *monitors
	queue   Queue
	logger  *slog.Logger

	current *popup
}

var _ toast.Presenter = (*Presenter)(nil)

// NewPresenter creates a GTK presenter. loader may be nil, in which case
// custom styles fall back to the theme's state colors.
func NewPresenter(app *gtk.Application, cfg *config.Config, loader *theme.Loader, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	return &Presenter{
		app:     app,
		config:  cfg,
		loader:  loader,
		screens: newMonitors(logger),
		logger:  logger,
	}
}

// Start binds the presenter to the default display. Call it once the
// application has been activated.
func (p *Presenter) Start() error {
	p.screens.Refresh()
	if p.screens.display == nil {
		return &DisplayError{Message: "no display available"}
	}

	applyColorScheme(p.config.Theme.ColorScheme)
	p.logger.Info("display presenter started", "monitor", p.config.Display.Monitor)
	return nil
}

// SetQueue connects the coordinator that the dismiss and clear mouse
// actions act on. The coordinator is built around the presenter, so it
// cannot be passed to NewPresenter.
func (p *Presenter) SetQueue(q Queue) {
	p.queue = q
}

// UpdateConfig applies a reloaded configuration. The visible popup keeps
// its placement; the next one uses the new values.
func (p *Presenter) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	p.config = cfg
	applyColorScheme(cfg.Theme.ColorScheme)
	p.logger.Debug("display presenter config updated")
}

// HasHost reports whether a request for host can be presented. The empty
// host is the configured monitor and always exists; any other host names a
// monitor connector.
func (p *Presenter) HasHost(host model.HostID) bool {
	if host == "" {
		return true
	}
	return p.screens.ByConnector(string(host)) != nil
}

// ScreenWidth returns the width layout resolves screen ratios against on
// the configured monitor.
func (p *Presenter) ScreenWidth() float64 {
	return p.screenWidth(p.monitorFor(""))
}

func (p *Presenter) screenWidth(mon *gdk.Monitor) float64 {
	width := float64(p.config.Display.ScreenWidth)
	if width <= 0 && mon != nil {
		width = float64(mon.Geometry().Width())
	}
	if width <= 0 {
		width = p.screens.ScreenWidth(p.config.Display.Monitor)
	}
	return usableWidth(width, p.config.Display.OffsetX)
}

// monitorFor returns the monitor for host, or the configured one.
func (p *Presenter) monitorFor(host model.HostID) *gdk.Monitor {
	if mon := p.screens.ByConnector(string(host)); mon != nil {
		return mon
	}
	return p.screens.Get(p.config.Display.Monitor)
}

// Present shows req and reports its gestures to sink.
func (p *Presenter) Present(req *model.Request, sink toast.Sink) {
	if p.current != nil {
		p.logger.Warn("presenting over an existing popup", "previous", p.current.req.ID, "id", req.ID)
		p.current.done = true
		p.current.window.Destroy()
		p.current = nil
	}

	mon := p.monitorFor(req.Host)
	screenWidth := p.screenWidth(mon)
	if _, ok := req.State.(model.CustomState); ok && p.loader != nil {
		p.loader.SetCustomCSS(theme.CustomCSS(layout.Resolve(req, screenWidth, nil)))
	}

	pp := newPopup(p.app, req, sink, p.logger)
	geom := layout.Resolve(req, screenWidth, pp.measurer())
	pp.arrange(geom)
	pp.connectSignals(func(button uint) { p.handleClick(pp, button) })
	setMonitor(pp.window, mon)

	pp.window.ConnectCloseRequest(func() bool {
		if pp.done {
			return false
		}
		// The compositor closed the surface under us.
		p.logger.Debug("popup closed externally", "id", pp.req.ID)
		pp.done = true
		if p.current == pp {
			p.current = nil
		}
		glib.IdleAdd(func() { pp.sink.TeardownComplete() })
		return false
	})

	p.current = pp
	pp.apply(p.frame(pp, pp.req.PresentingDirection, 0))
	pp.window.Present()

	p.logger.Debug("showed popup",
		"id", req.ID,
		"width", geom.Width,
		"height", geom.Height,
		"location", geom.Anchor.String(),
		"elements", len(geom.Elements),
	)

	if p.animationMillis() == 0 {
		pp.apply(p.frame(pp, pp.req.PresentingDirection, 1))
		return
	}
	pp.anim = p.animate(pp, 0, 1, pp.req.PresentingDirection, nil)
}

// Teardown removes the visible popup. The animated path reports
// completion when the slide-out finishes.
func (p *Presenter) Teardown(animated bool) {
	pp := p.current
	if pp == nil || pp.closing {
		return
	}
	pp.closing = true
	pp.stopAnimation()

	if !animated || p.animationMillis() == 0 {
		p.finish(pp)
		return
	}
	pp.anim = p.animate(pp, 1, 0, pp.req.DismissingDirection, func() { p.finish(pp) })
}

// finish destroys the window and reports completion. The sink may
// present the next request before this returns.
func (p *Presenter) finish(pp *popup) {
	if pp.done {
		return
	}
	pp.done = true
	if p.current == pp {
		p.current = nil
	}
	pp.window.Destroy()
	pp.sink.TeardownComplete()
}

func (p *Presenter) handleClick(pp *popup, button uint) {
	if pp.closing {
		return
	}

	action := p.config.Mouse.ForButton(button)
	if ev, ok := action.Event(); ok {
		pp.sink.Trigger(ev)
		return
	}

	switch action {
	case config.MouseActionDismiss:
		p.dismissActive(false)
	case config.MouseActionClear:
		p.dismissActive(true)
	case config.MouseActionNone:
		// Do nothing
	}
}

func (p *Presenter) dismissActive(clear bool) {
	if p.queue == nil {
		p.logger.Warn("mouse action needs a queue, none set")
		return
	}
	if clear {
		n := p.queue.Clear()
		p.logger.Debug("cleared queued toasts", "count", n)
	}
	p.queue.DismissActive(true)
}

func (p *Presenter) frame(pp *popup, dir model.Direction, progress float64) frame {
	offsetY := p.config.Display.OffsetY
	return slideFrame(dir, offsetY, slideDistance(dir, pp.geom, offsetY), p.config.Display.Opacity, progress)
}

func (p *Presenter) animationMillis() uint {
	return uint(p.config.Display.Animation.Duration().Milliseconds())
}

// animate slides pp from one progress value to another. done runs when
// the animation ends, including when it is skipped.
func (p *Presenter) animate(pp *popup, from, to float64, dir model.Direction, done func()) *adw.TimedAnimation {
	target := adw.NewCallbackAnimationTarget(func(value float64) {
		pp.apply(p.frame(pp, dir, value))
	})

	anim := adw.NewTimedAnimation(pp.window, from, to, p.animationMillis(), target)
	anim.SetEasing(adw.EaseOutCubic)
	if done != nil {
		anim.ConnectDone(done)
	}
	anim.Play()
	return anim
}

// applyColorScheme forces the libadwaita color scheme, or follows the
// system for "system".
func applyColorScheme(scheme string) {
	sm := adw.StyleManagerGetDefault()
	switch config.ColorScheme(scheme) {
	case config.ColorSchemeLight:
		sm.SetColorScheme(adw.ColorSchemeForceLight)
	case config.ColorSchemeDark:
		sm.SetColorScheme(adw.ColorSchemeForceDark)
	default:
		sm.SetColorScheme(adw.ColorSchemeDefault)
	}
}
