// Package layout resolves where and how large a toast is drawn.
//
// It holds no rendering code. Presenters call Resolve with the screen width
// and a Measurer for their medium, then build their surface from the
// returned Geometry.
package layout
