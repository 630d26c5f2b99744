package theme

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed themes/*.css
var bundledFS embed.FS

// DefaultThemeName is the name of the built-in default theme.
const DefaultThemeName = "default"

// BundledCSS returns the raw CSS of a bundled theme, or of a bundled
// partial when name starts with "_". Imports are not processed.
func BundledCSS(name string) (string, bool) {
	name = strings.TrimSuffix(name, ".css")
	if name == "" || name == "_" || strings.ContainsAny(name, "/\\") {
		return "", false
	}
	data, err := bundledFS.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// BundledNames returns the bundled theme names in lexical order. Partials
// are not themes and are left out.
func BundledNames() []string {
	matches, err := fs.Glob(bundledFS, "themes/[!_]*.css")
	if err != nil {
		return []string{DefaultThemeName}
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".css"))
	}
	return names
}

// IsBundled reports whether name is a bundled theme.
func IsBundled(name string) bool {
	if strings.HasPrefix(name, "_") {
		return false
	}
	_, ok := BundledCSS(name)
	return ok
}
