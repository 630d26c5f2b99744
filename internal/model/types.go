package model

import (
	"fmt"
	"strings"
)

// DismissalMode selects which gestures dismiss a toast and which of them
// report back through the request's OnDismiss callback.
type DismissalMode int

const (
	// DismissAll dismisses on tap, swipe-up and timeout, always reporting ReasonAll.
	DismissAll DismissalMode = iota
	// DismissInteractive dismisses on tap, swipe-up, the cancel control and
	// timeout, but only a tap reports back (with ReasonInteractive).
	DismissInteractive
)

// String returns the config/CLI name of the mode.
func (m DismissalMode) String() string {
	switch m {
	case DismissAll:
		return "all"
	case DismissInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// ParseMode parses a dismissal mode name.
func ParseMode(s string) (DismissalMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return DismissAll, nil
	case "interactive":
		return DismissInteractive, nil
	default:
		return DismissAll, fmt.Errorf("invalid dismissal mode %q, must be one of: all, interactive", s)
	}
}

// DismissalReason is delivered to OnDismiss when a toast is dismissed.
type DismissalReason int

const (
	// ReasonAll reports a tap, swipe-up or timeout dismissal in DismissAll mode.
	ReasonAll DismissalReason = iota
	// ReasonInteractive reports a tap dismissal in DismissInteractive mode.
	ReasonInteractive
)

// String returns the string representation of the reason.
func (r DismissalReason) String() string {
	switch r {
	case ReasonAll:
		return "all"
	case ReasonInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// Event is a dismissal trigger surfaced by a presenter or a timer.
type Event int

const (
	EventTap Event = iota
	EventSwipeUp
	EventCancelButton
	EventTimeout
)

// String returns the string representation of the event.
func (e Event) String() string {
	switch e {
	case EventTap:
		return "tap"
	case EventSwipeUp:
		return "swipe-up"
	case EventCancelButton:
		return "cancel-button"
	case EventTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Location is the screen edge a toast is anchored to.
type Location int

const (
	LocationBottom Location = iota
	LocationTop
)

// String returns the config/CLI name of the location.
func (l Location) String() string {
	if l == LocationTop {
		return "top"
	}
	return "bottom"
}

// ParseLocation parses a location name.
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bottom":
		return LocationBottom, nil
	case "top":
		return LocationTop, nil
	default:
		return LocationBottom, fmt.Errorf("invalid location %q, must be one of: top, bottom", s)
	}
}

// Direction is the edge a toast slides in from or out to. Vertical means the
// edge the toast is anchored to.
type Direction int

const (
	DirectionVertical Direction = iota
	DirectionLeft
	DirectionRight
)

// String returns the config/CLI name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "vertical"
	}
}

// ParseDirection parses a direction name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical":
		return DirectionVertical, nil
	case "left":
		return DirectionLeft, nil
	case "right":
		return DirectionRight, nil
	default:
		return DirectionVertical, fmt.Errorf("invalid direction %q, must be one of: left, right, vertical", s)
	}
}
