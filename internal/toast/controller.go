package toast

import (
	"log/slog"

	"github.com/jmylchreest/toasty/internal/model"
)

// ControllerState is the lifecycle stage of a Controller.
type ControllerState int

const (
	// ControllerIdle means the request is handed to the presenter but not yet live.
	ControllerIdle ControllerState = iota
	// ControllerActive means the toast is visible and listening for triggers.
	ControllerActive
	// ControllerDismissing means teardown was requested and triggers are ignored.
	ControllerDismissing
	// ControllerDone is terminal.
	ControllerDone
)

// String returns the string representation of the state.
func (s ControllerState) String() string {
	switch s {
	case ControllerIdle:
		return "idle"
	case ControllerActive:
		return "active"
	case ControllerDismissing:
		return "dismissing"
	case ControllerDone:
		return "done"
	default:
		return "unknown"
	}
}

// Controller is the dismissal state machine for one presented request.
// It implements Sink.
type Controller struct {
	req    *model.Request
	coord  *Coordinator
	logger *slog.Logger

	state     ControllerState
	timer     Timer
	event     model.Event
	reason    model.DismissalReason
	hasReason bool
}

func newController(req *model.Request, coord *Coordinator) *Controller {
	return &Controller{
		req:    req,
		coord:  coord,
		logger: coord.logger,
		state:  ControllerIdle,
	}
}

// Request returns the request the controller is bound to.
func (c *Controller) Request() *model.Request {
	return c.req
}

// State returns the current lifecycle stage.
func (c *Controller) State() ControllerState {
	return c.state
}

// activate moves Idle to Active and schedules the timeout.
func (c *Controller) activate() {
	if c.state != ControllerIdle {
		return
	}
	c.state = ControllerActive

	length := c.req.Duration.Length()
	if length > 0 && c.coord.clock != nil {
		c.timer = c.coord.clock.AfterFunc(length, func() {
			c.Trigger(model.EventTimeout)
		})
	}
}

// Trigger handles a gesture or timeout. Only the first trigger while Active
// has an effect.
func (c *Controller) Trigger(ev model.Event) {
	if c.state != ControllerActive {
		c.logger.Debug("ignoring dismissal trigger",
			"id", c.req.ID,
			"event", ev.String(),
			"state", c.state.String(),
		)
		return
	}

	c.event = ev
	c.reason, c.hasReason = Resolve(c.req.Mode, ev)
	c.beginTeardown(true)
}

// dismiss tears down without reporting a reason.
func (c *Controller) dismiss(animated bool) {
	if c.state != ControllerActive && c.state != ControllerIdle {
		return
	}
	c.hasReason = false
	c.beginTeardown(animated)
}

func (c *Controller) beginTeardown(animated bool) {
	c.state = ControllerDismissing
	c.stopTimer()
	// The presenter may complete teardown synchronously; nothing may
	// touch controller state after this call.
	c.coord.presenter.Teardown(animated)
}

// TeardownComplete finishes the presentation. A completion while still
// Active means the surface went away on its own; it finishes without a
// reason.
func (c *Controller) TeardownComplete() {
	switch c.state {
	case ControllerDismissing:
	case ControllerActive, ControllerIdle:
		c.stopTimer()
		c.hasReason = false
	default:
		return
	}
	c.state = ControllerDone

	if c.hasReason && c.req.OnDismiss != nil {
		c.logger.Debug("toast dismissed",
			"id", c.req.ID,
			"event", c.event.String(),
			"reason", c.reason.String(),
		)
		c.req.OnDismiss(c.reason)
	} else {
		c.logger.Debug("toast dismissed silently", "id", c.req.ID)
	}

	c.coord.requestDismissed(c)
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Resolve maps a trigger to the reason reported for mode. The second result
// is false when the dismissal is silent.
func Resolve(mode model.DismissalMode, ev model.Event) (model.DismissalReason, bool) {
	switch mode {
	case model.DismissInteractive:
		if ev == model.EventTap {
			return model.ReasonInteractive, true
		}
		return 0, false
	default:
		return model.ReasonAll, true
	}
}
