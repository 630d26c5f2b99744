// Package input provides request sources for the toast hosts.
package input

import (
	"context"
	"strconv"

	"github.com/jmylchreest/toasty/internal/model"
)

// InputAdapter produces toast requests from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "stdin", "args").
	Name() string

	// Import reads the whole source and returns its requests in order.
	Import(ctx context.Context) ([]*model.Request, error)

	// Stream calls fn for each request as soon as it is read, until the
	// source ends or ctx is cancelled.
	Stream(ctx context.Context, fn func(*model.Request)) error
}

// NewAdapter creates an InputAdapter for the specified source. args are
// only used by the "args" source.
func NewAdapter(source string, b *Builder, args []string) (InputAdapter, error) {
	switch source {
	case "", "stdin":
		return NewStdinAdapter(b), nil
	case "args":
		return NewArgsAdapter(b, args), nil
	default:
		return nil, &AdapterError{
			Source:  source,
			Message: "unknown adapter",
		}
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Line    int // 1-based input line, 0 when not tied to one
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = e.Source + " line " + strconv.Itoa(e.Line) + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
