package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes one JSON object per record, one per line, so the
// stream can be consumed while the host keeps running.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes records as JSON lines.
func (f *JSONFormatter) Format(w io.Writer, records []Record) error {
	encoder := json.NewEncoder(w)
	if f.opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	for _, r := range records {
		if err := encoder.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
