package input

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/model"
)

// Entry is one request in the JSON line format. Empty fields take the
// configured defaults.
type Entry struct {
	ID         string `json:"id,omitempty"`
	Message    string `json:"message"`
	State      string `json:"state,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Location   string `json:"location,omitempty"`
	Presenting string `json:"presenting,omitempty"`
	Dismissing string `json:"dismissing,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Host       string `json:"host,omitempty"`
}

// Builder turns input into requests using the configured defaults. It is
// safe for concurrent use so a reader goroutine can build requests while
// the host reloads the configuration.
type Builder struct {
	mu       sync.RWMutex
	defaults config.RequestDefaults
	presets  config.Styles
}

// NewBuilder creates a Builder. State names are resolved against presets
// after the built-in states.
func NewBuilder(defaults config.RequestDefaults, presets config.Styles) *Builder {
	return &Builder{defaults: defaults, presets: presets}
}

// Update replaces the defaults and presets used for later requests.
func (b *Builder) Update(defaults config.RequestDefaults, presets config.Styles) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.defaults = defaults
	b.presets = presets
}

// Plain builds a request for a bare message.
func (b *Builder) Plain(message string) *model.Request {
	b.mu.RLock()
	defaults := b.defaults
	b.mu.RUnlock()

	r := model.NewRequest(sanitizeString(message), defaults.Options()...)
	r.Duration = defaults.Duration
	return r
}

// Entry builds a request from a decoded JSON entry.
func (b *Builder) Entry(e Entry) (*model.Request, error) {
	message := sanitizeString(e.Message)
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	r := b.Plain(message)
	if e.ID != "" {
		r.ID = strings.TrimSpace(e.ID)
	}
	if e.Host != "" {
		r.Host = model.HostID(strings.TrimSpace(e.Host))
	}

	var err error
	if e.State != "" {
		b.mu.RLock()
		presets := b.presets
		b.mu.RUnlock()
		if r.State, err = presets.State(e.State); err != nil {
			return nil, err
		}
	}
	if e.Mode != "" {
		if r.Mode, err = model.ParseMode(e.Mode); err != nil {
			return nil, err
		}
	}
	if e.Location != "" {
		if r.Location, err = model.ParseLocation(e.Location); err != nil {
			return nil, err
		}
	}
	if e.Presenting != "" {
		if r.PresentingDirection, err = model.ParseDirection(e.Presenting); err != nil {
			return nil, err
		}
	}
	if e.Dismissing != "" {
		if r.DismissingDirection, err = model.ParseDirection(e.Dismissing); err != nil {
			return nil, err
		}
	}
	if e.Duration != "" {
		if r.Duration, err = model.ParseDuration(e.Duration); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// sanitizeString replaces control characters other than newline and tab
// with spaces and trims the result.
func sanitizeString(s string) string {
	var result strings.Builder
	for _, r := range s {
		if r < 32 && r != '\n' && r != '\t' {
			result.WriteRune(' ')
		} else {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
