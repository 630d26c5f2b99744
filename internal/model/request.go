// Package model defines toast requests and their presentation options.
package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// HostID names the screen root a request should be presented on. It is a
// plain identifier so a queued request never keeps its host alive.
type HostID string

// Enqueuer accepts requests for presentation.
type Enqueuer interface {
	Enqueue(r *Request)
}

// Request describes one toast. Apart from Show, which records the duration
// and callback, it is not modified once enqueued.
type Request struct {
	ID                  string
	Host                HostID
	Message             string
	Mode                DismissalMode
	State               VisualState
	Location            Location
	PresentingDirection Direction
	DismissingDirection Direction
	Duration            Duration
	OnDismiss           func(DismissalReason)
	CreatedAt           time.Time
}

// Option configures a Request built by NewRequest.
type Option func(*Request)

// WithMode sets the dismissal mode.
func WithMode(m DismissalMode) Option { return func(r *Request) { r.Mode = m } }

// WithState sets the visual state.
func WithState(s VisualState) Option { return func(r *Request) { r.State = s } }

// WithLocation sets the anchoring edge.
func WithLocation(l Location) Option { return func(r *Request) { r.Location = l } }

// WithPresentingDirection sets the edge the toast slides in from.
func WithPresentingDirection(d Direction) Option {
	return func(r *Request) { r.PresentingDirection = d }
}

// WithDismissingDirection sets the edge the toast slides out to.
func WithDismissingDirection(d Direction) Option {
	return func(r *Request) { r.DismissingDirection = d }
}

// WithHost sets the screen root the request belongs to.
func WithHost(h HostID) Option { return func(r *Request) { r.Host = h } }

// NewRequest builds a request with the defaults: DismissAll, StateInfo,
// LocationBottom, vertical directions and DurationAverage.
func NewRequest(message string, opts ...Option) *Request {
	now := time.Now()
	r := &Request{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Message:   message,
		Mode:      DismissAll,
		State:     StateInfo,
		Location:  LocationBottom,
		Duration:  DurationAverage,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.State == nil {
		r.State = StateInfo
	}
	return r
}

// Show records the duration and dismissal callback, overriding any earlier
// values, and hands the request to q.
func (r *Request) Show(q Enqueuer, d Duration, onDismiss func(DismissalReason)) {
	r.Duration = d
	r.OnDismiss = onDismiss
	q.Enqueue(r)
}

// ShowsCancelControl reports whether the presenter should draw the "X"
// control.
func (r *Request) ShowsCancelControl() bool {
	if r.Mode == DismissInteractive {
		return true
	}
	s, ok := r.State.(State)
	return ok && s == StateWithCancelButton
}

// Style returns the resolved style of the request's visual state.
func (r *Request) Style() Style {
	if r.State == nil {
		return StateInfo.Style()
	}
	return r.State.Style()
}
