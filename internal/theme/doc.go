// Package theme handles CSS theme loading and hot-reload for the GTK toast
// presenter. Themes are read from ~/.config/toasty/themes/ with the bundled
// themes as fallback. Custom visual states are rendered through generated
// CSS scoped to the toast-custom class.
package theme
