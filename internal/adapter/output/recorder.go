package output

import (
	"io"
	"log/slog"
	"time"

	"github.com/jmylchreest/toasty/internal/model"
)

// Recorder turns dismissal callbacks into records. With a writer it
// streams each record as it happens and keeps nothing; without one it
// collects them for Records. Callbacks run on the host's control thread,
// so it is not locked.
type Recorder struct {
	w         io.Writer
	formatter Formatter
	logger    *slog.Logger
	records   []Record
	now       func() time.Time
}

// NewRecorder creates a Recorder. A nil w or formatter collects instead of
// streaming.
func NewRecorder(w io.Writer, formatter Formatter, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		w:         w,
		formatter: formatter,
		logger:    logger,
		now:       time.Now,
	}
}

// Track sets req's dismissal callback to record the dismissal before
// calling any callback it already had.
func (r *Recorder) Track(req *model.Request) {
	next := req.OnDismiss
	req.OnDismiss = func(reason model.DismissalReason) {
		r.record(NewRecord(req, reason, r.now()))
		if next != nil {
			next(reason)
		}
	}
}

func (r *Recorder) record(rec Record) {
	if r.w == nil || r.formatter == nil {
		r.records = append(r.records, rec)
		return
	}
	if err := r.formatter.Format(r.w, []Record{rec}); err != nil {
		r.logger.Error("failed to write dismissal", "id", rec.ID, "error", err)
	}
}

// Records returns the dismissals collected so far, oldest first. It is
// always empty for a streaming Recorder.
func (r *Recorder) Records() []Record {
	return r.records
}
