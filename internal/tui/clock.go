package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/toasty/internal/toast"
)

// timerMsg tells Update that a clock timer is due.
type timerMsg struct {
	id uint64
}

// Clock schedules callbacks that re-enter the program through Update.
// AfterFunc and fire must both be called from Update; only send crosses
// goroutines.
type Clock struct {
	send   func(tea.Msg)
	nextID uint64
	timers map[uint64]*clockTimer
}

var _ toast.Clock = (*Clock)(nil)

// NewClock creates a clock that delivers due timers with send, normally
// (*tea.Program).Send.
func NewClock(send func(tea.Msg)) *Clock {
	return &Clock{
		send:   send,
		timers: make(map[uint64]*clockTimer),
	}
}

// AfterFunc runs f from Update once d has passed.
func (c *Clock) AfterFunc(d time.Duration, f func()) toast.Timer {
	c.nextID++
	id := c.nextID

	t := &clockTimer{clock: c, id: id, f: f}
	c.timers[id] = t
	t.timer = time.AfterFunc(d, func() { c.send(timerMsg{id: id}) })
	return t
}

// fire runs the timer's callback unless it was stopped in the meantime.
func (c *Clock) fire(id uint64) {
	t, ok := c.timers[id]
	if !ok {
		return
	}
	delete(c.timers, id)
	t.f()
}

// Pending returns the number of timers that have not fired or stopped.
func (c *Clock) Pending() int {
	return len(c.timers)
}

type clockTimer struct {
	clock *Clock
	id    uint64
	f     func()
	timer *time.Timer
}

func (t *clockTimer) Stop() bool {
	t.timer.Stop()
	if _, ok := t.clock.timers[t.id]; !ok {
		return false
	}
	delete(t.clock.timers, t.id)
	return true
}
