package theme

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/toasty/internal/layout"
	"github.com/jmylchreest/toasty/internal/model"
)

// CSS class names applied by the GTK presenter.
const (
	ClassWindow      = "toast-window"
	ClassToast       = "toast"
	ClassMessage     = "toast-message"
	ClassIcon        = "toast-icon"
	ClassClose       = "toast-close"
	ClassCustom      = "toast-custom"
	ClassInteractive = "toast-interactive"
)

var fontWeights = map[string]int{
	"thin":     100,
	"light":    300,
	"regular":  400,
	"medium":   500,
	"semibold": 600,
	"bold":     700,
	"heavy":    900,
}

// StateClasses returns the classes for a visual state, such as "toast-success".
// Named presets also get "toast-preset-<name>" so themes can target them.
func StateClasses(s model.VisualState) []string {
	classes := []string{"toast-" + s.Name()}
	if c, ok := s.(model.CustomState); ok && c.Preset != "" {
		classes = append(classes, "toast-preset-"+sanitizeClass(c.Preset))
	}
	return classes
}

// Classes returns every class the toast container should carry for req.
func Classes(req *model.Request) []string {
	classes := []string{ClassToast, "toast-" + req.Location.String()}
	classes = append(classes, StateClasses(req.State)...)
	if req.Mode == model.DismissInteractive {
		classes = append(classes, ClassInteractive)
	}
	return classes
}

// CustomCSS renders the rules for a custom style. The rules target the
// toast-custom class; only one toast is visible at a time, so a single
// provider holding the current rules is enough.
func CustomCSS(g layout.Geometry) string {
	s := g.Style
	sel := "." + ClassToast + "." + ClassCustom

	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n  background-color: %s;\n  color: %s;\n  min-width: %dpx;\n}\n",
		sel, s.Background, s.Text, int(g.Width))

	fmt.Fprintf(&b, "%s .%s {\n", sel, ClassMessage)
	if s.Font.Family != "" {
		fmt.Fprintf(&b, "  font-family: %q;\n", s.Font.Family)
	}
	fmt.Fprintf(&b, "  font-size: %gpx;\n", s.Font.Size)
	if w, ok := fontWeights[s.Font.Weight]; ok {
		fmt.Fprintf(&b, "  font-weight: %d;\n", w)
	}
	b.WriteString("}\n")

	fmt.Fprintf(&b, "%s .%s,\n%s .%s {\n  color: %s;\n}\n", sel, ClassIcon, sel, ClassClose, s.Tint)
	return b.String()
}

func sanitizeClass(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
