package input

import (
	"context"
	"strings"

	"github.com/jmylchreest/toasty/internal/model"
)

// ArgsAdapter turns command-line arguments into a single request.
type ArgsAdapter struct {
	args    []string
	builder *Builder
}

// NewArgsAdapter creates an adapter whose message is args joined by spaces.
func NewArgsAdapter(b *Builder, args []string) *ArgsAdapter {
	return &ArgsAdapter{args: args, builder: b}
}

// Name returns the adapter identifier.
func (a *ArgsAdapter) Name() string {
	return "args"
}

// Import returns the request, or nothing when the arguments are blank.
func (a *ArgsAdapter) Import(ctx context.Context) ([]*model.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	message := strings.Join(a.args, " ")
	if sanitizeString(message) == "" {
		return nil, nil
	}
	return []*model.Request{a.builder.Plain(message)}, nil
}

// Stream calls fn with the single request, if any.
func (a *ArgsAdapter) Stream(ctx context.Context, fn func(*model.Request)) error {
	requests, err := a.Import(ctx)
	if err != nil {
		return err
	}
	for _, r := range requests {
		fn(r)
	}
	return nil
}
