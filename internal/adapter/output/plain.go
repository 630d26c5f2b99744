package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// PlainFormatter formats records as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter. The custom
// template, if any, is executed once per record.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid output template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes records as plain text.
func (f *PlainFormatter) Format(w io.Writer, records []Record) error {
	for i := range records {
		if err := f.formatRecord(w, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

// formatRecord writes "reason<TAB>state<TAB>message" with an optional time.
func (f *PlainFormatter) formatRecord(w io.Writer, r *Record) error {
	if f.template != nil {
		return f.template.Execute(w, r)
	}

	var sb strings.Builder
	sb.WriteString(r.Reason)
	sb.WriteString("\t")
	sb.WriteString(r.State)
	sb.WriteString("\t")
	sb.WriteString(singleLine(r.Message, f.opts.MessageMaxLen))

	if f.opts.ShowTime {
		sb.WriteString(fmt.Sprintf(" (%s)", relativeTime(r.DismissedAt)))
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// templateFuncs returns the functions available to custom templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": truncate,
		"reltime":  relativeTime,
		"oneline": func(s string) string {
			return singleLine(s, 0)
		},
		"upper": strings.ToUpper,
	}
}

// relativeTime returns a human-readable relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}

// truncate shortens s to maxLen runes, ending with "..." when cut.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// singleLine joins lines with spaces and truncates the result.
func singleLine(s string, maxLen int) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
	return truncate(s, maxLen)
}
