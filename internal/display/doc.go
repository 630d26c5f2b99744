// Package display presents toasts as GTK4 layer-shell popups.
// It builds one popup window per visible request, maps clicks, swipes and
// the close button to dismissal triggers, and slides the popup in and out
// with libadwaita timed animations. Everything here runs on the GTK main
// thread; Clock schedules timeouts on the GLib main loop.
package display
