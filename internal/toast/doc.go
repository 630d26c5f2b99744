// Package toast serializes toast presentation for one screen root.
// A Coordinator owns a FIFO queue and shows at most one request at a time
// through a Presenter. Each shown request gets a Controller that turns
// gestures and the timeout into a single dismissal.
//
// Nothing in this package locks. All calls into a Coordinator, and all
// Sink and timer callbacks, must happen on one control goroutine (the GTK
// main loop, a Bubble Tea Update, or a Loop).
package toast
