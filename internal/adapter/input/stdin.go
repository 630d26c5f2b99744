package input

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/jmylchreest/toasty/internal/model"
)

const maxLineSize = 1024 * 1024

// StdinAdapter reads one request per line. A line starting with '{' is a
// JSON Entry, anything else is a plain message. Blank lines are skipped.
type StdinAdapter struct {
	reader  io.Reader
	builder *Builder
	logger  *slog.Logger
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter(b *Builder) *StdinAdapter {
	return NewStdinAdapterWithReader(os.Stdin, b)
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader, b *Builder) *StdinAdapter {
	return &StdinAdapter{reader: r, builder: b, logger: slog.Default()}
}

// SetLogger sets the logger used for skipped lines while streaming.
func (a *StdinAdapter) SetLogger(logger *slog.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads every line and fails on the first invalid one.
func (a *StdinAdapter) Import(ctx context.Context) ([]*model.Request, error) {
	var requests []*model.Request
	err := a.scan(ctx, func(line int, r *model.Request, err error) error {
		if err != nil {
			return err
		}
		requests = append(requests, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Stream delivers requests as they arrive. Invalid lines are logged and
// skipped so a long-running producer is not cut off by one bad line.
// Cancellation is noticed between lines; a blocked read is not interrupted.
func (a *StdinAdapter) Stream(ctx context.Context, fn func(*model.Request)) error {
	return a.scan(ctx, func(line int, r *model.Request, err error) error {
		if err != nil {
			a.logger.Warn("skipping invalid input line", "line", line, "error", err)
			return nil
		}
		fn(r)
		return nil
	})
}

func (a *StdinAdapter) scan(ctx context.Context, handle func(int, *model.Request, error) error) error {
	scanner := bufio.NewScanner(a.reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++

		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		r, err := a.parseLine(data)
		if err != nil {
			err = &AdapterError{Source: a.Name(), Line: line, Message: "invalid request", Err: err}
		}
		if err := handle(line, r, err); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return &AdapterError{
			Source:  a.Name(),
			Message: "failed to read input",
			Err:     err,
		}
	}
	return nil
}

func (a *StdinAdapter) parseLine(data []byte) (*model.Request, error) {
	if data[0] != '{' {
		return a.builder.Plain(string(data)), nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return a.builder.Entry(entry)
}
