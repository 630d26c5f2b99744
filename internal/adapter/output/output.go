// Package output formats dismissal records for scripts reading toasty's
// standard output.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jmylchreest/toasty/internal/model"
)

// Record is one reported dismissal.
type Record struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	State       string    `json:"state"`
	Mode        string    `json:"mode"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
	DismissedAt time.Time `json:"dismissed_at"`
}

// NewRecord builds the record for req dismissed with reason at the given time.
func NewRecord(req *model.Request, reason model.DismissalReason, at time.Time) Record {
	state := model.StateInfo.Name()
	switch s := req.State.(type) {
	case model.CustomState:
		state = s.Name()
		if s.Preset != "" {
			state = s.Preset
		}
	case model.VisualState:
		state = s.Name()
	}
	return Record{
		ID:          req.ID,
		Message:     req.Message,
		State:       state,
		Mode:        req.Mode.String(),
		Reason:      reason.String(),
		CreatedAt:   req.CreatedAt,
		DismissedAt: at,
	}
}

// Formatter formats dismissal records for output.
type Formatter interface {
	// Format writes formatted records to the writer.
	Format(w io.Writer, records []Record) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatJSON  FormatType = "json"
	FormatPlain FormatType = "plain"
	FormatIDs   FormatType = "ids"
)

// ValidFormats returns the accepted format names.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatIDs}
}

// NewFormatter creates a formatter for the specified format type. An empty
// format selects plain output.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatIDs:
		return NewIDsFormatter(), nil
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	default:
		return nil, fmt.Errorf("unknown output format %q, must be one of: %v", format, ValidFormats())
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template      string // Custom template for plain format
	ShowTime      bool   // Show relative dismissal time
	MessageMaxLen int    // Maximum message length (0 = unlimited)
	Pretty        bool   // Indent JSON output
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		MessageMaxLen: 80,
	}
}
