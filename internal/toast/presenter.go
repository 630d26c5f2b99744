package toast

import "github.com/jmylchreest/toasty/internal/model"

// Sink receives dismissal triggers and teardown completion for the request
// it was handed with.
type Sink interface {
	// Trigger reports a gesture or timeout. Only the first trigger counts.
	Trigger(ev model.Event)
	// TeardownComplete reports that the surface is gone.
	TeardownComplete()
}

// Presenter draws toasts. Calls arrive on the control goroutine, and the
// presenter must call back into the Sink on that same goroutine.
type Presenter interface {
	// Present shows req and reports gestures to sink.
	Present(req *model.Request, sink Sink)
	// Teardown removes the active toast and eventually calls
	// TeardownComplete on its sink, possibly before returning.
	Teardown(animated bool)
}
