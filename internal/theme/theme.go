package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jmylchreest/toasty/internal/config"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a CSS theme with its imports inlined.
type Theme struct {
	Name      string    // Theme name (without .css extension)
	Path      string    // Full path to the CSS file (empty when bundled)
	CSS       string    // The processed CSS content
	ModTime   time.Time // Last modification time
	IsBundled bool      // True for embedded themes, which are never reloaded
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() string {
	return filepath.Join(config.Dir(), "themes")
}

// NewTheme loads a theme from a CSS file, inlining @import statements.
func NewTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// NewBundledTheme returns an embedded theme with its imports inlined.
func NewBundledTheme(name string) (*Theme, bool) {
	if !IsBundled(name) {
		return nil, false
	}
	css, _ := BundledCSS(name)
	return &Theme{
		Name:      name,
		CSS:       ProcessImports(css, "", nil),
		IsBundled: true,
	}, true
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir, falling back to the bundled
// partials and themes. The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		importedCSS, err := os.ReadFile(fullPath)
		if err != nil {
			baseName := filepath.Base(importPath)
			if embeddedCSS, found := BundledCSS(baseName); found {
				if strings.HasPrefix(baseName, "_") {
					return "/* imported (embedded): " + importPath + " */\n" + embeddedCSS
				}
				return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(embeddedCSS, "", seen)
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		processed := ProcessImports(string(importedCSS), filepath.Dir(fullPath), seen)
		return "/* imported: " + importPath + " */\n" + processed
	})
}

// Reload re-reads the theme and its imports from disk. Returns true if the
// processed CSS changed, which may be due to an imported file alone.
func (t *Theme) Reload() (bool, error) {
	if t.IsBundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	oldCSS := t.CSS
	t.CSS = ProcessImports(string(css), filepath.Dir(t.Path), nil)
	t.ModTime = info.ModTime()

	return oldCSS != t.CSS, nil
}

// Resolve finds a theme by name: the user themes directory first, so users
// can override bundled themes, then the bundled themes, then the default.
// The second result is false when the default was substituted.
func Resolve(name, themesDir string) (*Theme, bool, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if themesDir != "" {
		path := filepath.Join(themesDir, name+".css")
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err != nil {
				return nil, false, err
			}
			return t, true, nil
		}
	}

	if t, ok := NewBundledTheme(name); ok {
		return t, true, nil
	}

	t, _ := NewBundledTheme(DefaultThemeName)
	return t, false, nil
}

// ListThemes returns bundled and user theme names, without duplicates.
func ListThemes(themesDir string) []string {
	seen := make(map[string]bool)
	var themes []string

	for _, name := range BundledNames() {
		if !seen[name] {
			seen[name] = true
			themes = append(themes, name)
		}
	}

	if themesDir == "" {
		return themes
	}
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return themes
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || filepath.Ext(name) != ".css" {
			continue
		}
		themeName := strings.TrimSuffix(name, ".css")
		if !seen[themeName] {
			seen[themeName] = true
			themes = append(themes, themeName)
		}
	}
	return themes
}
