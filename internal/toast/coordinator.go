package toast

import (
	"container/list"
	"log/slog"

	"github.com/jmylchreest/toasty/internal/model"
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHostCheck drops queued requests whose host is gone instead of
// presenting them. alive is called just before a request would be shown.
func WithHostCheck(alive func(model.HostID) bool) Option {
	return func(c *Coordinator) { c.hostAlive = alive }
}

// WithIdleHandler registers fn to run whenever the last toast is dismissed
// and nothing is queued.
func WithIdleHandler(fn func()) Option {
	return func(c *Coordinator) { c.onIdle = fn }
}

// Coordinator shows queued requests one at a time, oldest first.
// Construct one per screen root and pass it to the code that shows toasts.
type Coordinator struct {
	presenter Presenter
	clock     Clock
	logger    *slog.Logger

	// Requests waiting for display, oldest at the front.
	queue *list.List

	presenting bool
	active     *Controller

	hostAlive func(model.HostID) bool
	onIdle    func()
}

// NewCoordinator creates a coordinator that presents through p and
// schedules timeouts on clock. A nil clock disables timeouts.
func NewCoordinator(p Presenter, clock Clock, opts ...Option) *Coordinator {
	c := &Coordinator{
		presenter: p,
		clock:     clock,
		logger:    slog.Default(),
		queue:     list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enqueue appends req to the queue and presents it if nothing is showing.
func (c *Coordinator) Enqueue(req *model.Request) {
	if req == nil {
		return
	}
	if req.State == nil {
		req.State = model.StateInfo
	}
	c.queue.PushBack(req)

	c.logger.Debug("queued toast",
		"id", req.ID,
		"state", req.State.Name(),
		"queue_size", c.queue.Len(),
		"presenting", c.presenting,
	)

	c.presentNext()
}

// presentNext is the only transition from idle to presenting.
func (c *Coordinator) presentNext() {
	for !c.presenting {
		elem := c.queue.Front()
		if elem == nil {
			return
		}
		req := c.queue.Remove(elem).(*model.Request)

		if c.hostAlive != nil && req.Host != "" && !c.hostAlive(req.Host) {
			c.logger.Debug("dropping toast for missing host", "id", req.ID, "host", req.Host)
			continue
		}

		c.presenting = true
		ctl := newController(req, c)
		c.active = ctl

		c.logger.Debug("presenting toast",
			"id", req.ID,
			"mode", req.Mode.String(),
			"duration", req.Duration.String(),
			"queued", c.queue.Len(),
		)

		c.presenter.Present(req, ctl)
		ctl.activate()
		return
	}
}

// requestDismissed is called by the active controller exactly once, when
// its presentation has concluded.
func (c *Coordinator) requestDismissed(ctl *Controller) {
	if ctl != c.active {
		c.logger.Warn("stale dismissal ignored", "id", ctl.req.ID)
		return
	}
	c.active = nil
	c.presenting = false

	c.presentNext()

	if !c.presenting && c.onIdle != nil {
		c.onIdle()
	}
}

// DismissActive tears down the visible toast without invoking its
// callback. It does nothing when idle.
func (c *Coordinator) DismissActive(animated bool) {
	if !c.presenting || c.active == nil {
		return
	}
	c.logger.Debug("dismissing active toast", "id", c.active.req.ID, "animated", animated)
	c.active.dismiss(animated)
}

// Cancel removes a queued request by ID. The visible toast is not affected.
func (c *Coordinator) Cancel(id string) bool {
	for e := c.queue.Front(); e != nil; e = e.Next() {
		if e.Value.(*model.Request).ID == id {
			c.queue.Remove(e)
			c.logger.Debug("cancelled queued toast", "id", id)
			return true
		}
	}
	return false
}

// Clear drops every queued request. The visible toast keeps running.
func (c *Coordinator) Clear() int {
	n := c.queue.Len()
	c.queue.Init()
	return n
}

// IsPresenting reports whether a toast is showing.
func (c *Coordinator) IsPresenting() bool {
	return c.presenting
}

// Active returns the visible request, or nil.
func (c *Coordinator) Active() *model.Request {
	if c.active == nil {
		return nil
	}
	return c.active.req
}

// QueuedCount returns the number of requests waiting.
func (c *Coordinator) QueuedCount() int {
	return c.queue.Len()
}

// Queued returns the waiting requests, oldest first.
func (c *Coordinator) Queued() []*model.Request {
	out := make([]*model.Request, 0, c.queue.Len())
	for e := c.queue.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*model.Request))
	}
	return out
}
