package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// monitors picks the output popups appear on.
type monitors struct {
	display *gdk.Display
	logger  *slog.Logger
}

func newMonitors(logger *slog.Logger) *monitors {
	return &monitors{
		display: gdk.DisplayGetDefault(),
		logger:  logger,
	}
}

// Get returns the monitor to display popups on.
// Config values:
// - 0: compositor choice (returns nil)
// - 1+: specific monitor (1-indexed)
//
// A monitor that is not connected falls back to the first one.
func (m *monitors) Get(monitorNum int) *gdk.Monitor {
	if m.display == nil || monitorNum == 0 {
		return nil
	}

	list := m.display.Monitors()
	if list == nil {
		m.logger.Warn("no monitors list available")
		return nil
	}

	index := uint(monitorNum - 1)
	if index >= list.NItems() {
		m.logger.Warn("configured monitor not available, using first",
			"configured", monitorNum,
			"available", list.NItems(),
		)
		return m.first()
	}

	return wrapMonitor(list.Item(index))
}

// ScreenWidth returns the logical width of the monitor popups appear on,
// or 0 when it cannot be determined.
func (m *monitors) ScreenWidth(monitorNum int) float64 {
	mon := m.Get(monitorNum)
	if mon == nil {
		mon = m.first()
	}
	if mon == nil {
		return 0
	}
	return float64(mon.Geometry().Width())
}

// ByConnector returns the monitor whose connector name (e.g. "DP-1")
// matches, or nil.
func (m *monitors) ByConnector(name string) *gdk.Monitor {
	if m.display == nil || name == "" {
		return nil
	}
	list := m.display.Monitors()
	if list == nil {
		return nil
	}
	for i := uint(0); i < list.NItems(); i++ {
		mon := wrapMonitor(list.Item(i))
		if mon != nil && mon.Connector() == name {
			return mon
		}
	}
	return nil
}

func (m *monitors) first() *gdk.Monitor {
	if m.display == nil {
		return nil
	}
	list := m.display.Monitors()
	if list == nil || list.NItems() == 0 {
		return nil
	}
	return wrapMonitor(list.Item(0))
}

// Refresh re-reads the default display after an output change.
func (m *monitors) Refresh() {
	m.display = gdk.DisplayGetDefault()
	if m.display == nil {
		m.logger.Warn("no display available after monitor change")
		return
	}
	if list := m.display.Monitors(); list != nil {
		m.logger.Info("monitor configuration changed", "count", list.NItems())
	}
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor.
// gotk4 does not export its own wrapper, so the cast mirrors the struct
// layout of gdk.Monitor.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	return (*gdk.Monitor)(unsafe.Pointer(&monitor{Object: obj}))
}

func setMonitor(window *gtk.Window, monitor *gdk.Monitor) {
	if monitor == nil {
		return
	}
	layershell.SetMonitor(window, monitor)
}
