package model

import (
	"fmt"
	"strings"
)

// Icon names for the built-in states. They are freedesktop icon names so
// the GTK presenter can resolve them from the icon theme.
const (
	IconSuccess = "emblem-ok-symbolic"
	IconError   = "dialog-error-symbolic"
	IconWarning = "dialog-warning-symbolic"
	IconInfo    = "dialog-information-symbolic"
	IconClose   = "window-close-symbolic"
)

// VisualState is the cosmetic state of a toast: one of the fixed States or
// a Custom style.
type VisualState interface {
	// Name returns the CSS class / config name of the state.
	Name() string
	// Style returns the resolved style for the state.
	Style() Style
	visualState()
}

// State is a fixed visual state.
type State int

const (
	StateInfo State = iota
	StateSuccess
	StateError
	StateWarning
	StateWithCancelButton
)

func (State) visualState() {}

// Name returns the config name of the state.
func (s State) Name() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	case StateWarning:
		return "warning"
	case StateWithCancelButton:
		return "cancel"
	default:
		return "info"
	}
}

// String implements fmt.Stringer.
func (s State) String() string {
	return s.Name()
}

// Style returns the built-in look for the state. Every built-in state uses
// the same neutral background; only the icon differs.
func (s State) Style() Style {
	st := DefaultStyle(DefaultBackground)
	switch s {
	case StateSuccess:
		st.Icon = IconSuccess
	case StateError:
		st.Icon = IconError
	case StateWarning:
		st.Icon = IconWarning
	case StateWithCancelButton:
		st.Icon = IconClose
		st.IconAlignment = IconRight
	default:
		st.Icon = IconInfo
	}
	return st
}

// CustomState carries a caller-defined Style.
type CustomState struct {
	Preset string // Optional preset name the style was loaded from
	style  Style
}

// Custom wraps a style as a visual state.
func Custom(style Style) CustomState {
	return CustomState{style: style}
}

// NamedCustom wraps a preset style, remembering its name for theming.
func NamedCustom(name string, style Style) CustomState {
	return CustomState{Preset: name, style: style}
}

func (CustomState) visualState() {}

// Name returns "custom".
func (c CustomState) Name() string {
	return "custom"
}

// Style returns the wrapped style.
func (c CustomState) Style() Style {
	return c.style
}

// ParseState parses a built-in state name. Preset names are resolved by the
// caller.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return StateInfo, nil
	case "success":
		return StateSuccess, nil
	case "error":
		return StateError, nil
	case "warning":
		return StateWarning, nil
	case "cancel", "with-cancel-button":
		return StateWithCancelButton, nil
	default:
		return StateInfo, fmt.Errorf("invalid state %q, must be one of: success, error, warning, info, cancel", s)
	}
}
