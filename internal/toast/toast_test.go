package toast

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/jmylchreest/toasty/internal/model"
)

// fakePresenter records presentations. With sync set, Teardown completes
// immediately; otherwise the test calls finish.
type fakePresenter struct {
	sync      bool
	presented []*model.Request
	sinks     []Sink
	teardowns []bool
	visible   int
	maxShown  int
}

func (p *fakePresenter) Present(req *model.Request, sink Sink) {
	p.presented = append(p.presented, req)
	p.sinks = append(p.sinks, sink)
	p.visible++
	if p.visible > p.maxShown {
		p.maxShown = p.visible
	}
}

func (p *fakePresenter) Teardown(animated bool) {
	p.teardowns = append(p.teardowns, animated)
	if p.sync {
		p.finish()
	}
}

// finish completes the pending teardown of the latest presentation.
func (p *fakePresenter) finish() {
	p.visible--
	p.sinks[len(p.sinks)-1].TeardownComplete()
}

func (p *fakePresenter) sink() Sink {
	return p.sinks[len(p.sinks)-1]
}

// manualClock fires timers only when advanced.
type manualClock struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs due timers in deadline order.
func (c *manualClock) Advance(d time.Duration) {
	c.now += d
	for {
		due := make([]*manualTimer, 0)
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= c.now {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			return
		}
		sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
		due[0].fired = true
		due[0].f()
	}
}

func (c *manualClock) pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type reasonLog struct {
	calls []model.DismissalReason
}

func (l *reasonLog) record(r model.DismissalReason) {
	l.calls = append(l.calls, r)
}

func testContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithCancel(context.Background())
}
