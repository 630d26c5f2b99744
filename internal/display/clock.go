package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"

	"github.com/jmylchreest/toasty/internal/toast"
)

// Clock schedules callbacks on the GLib main loop.
type Clock struct{}

// NewClock returns a main-loop clock.
func NewClock() Clock {
	return Clock{}
}

// AfterFunc runs f on the main loop after d.
func (Clock) AfterFunc(d time.Duration, f func()) toast.Timer {
	t := &timer{}
	t.source = glib.TimeoutAdd(uint(d.Milliseconds()), func() bool {
		t.fired = true
		f()
		return false
	})
	return t
}

// timer is only touched on the main loop.
type timer struct {
	source  glib.SourceHandle
	fired   bool
	stopped bool
}

func (t *timer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	glib.SourceRemove(t.source)
	return true
}
