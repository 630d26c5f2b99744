package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Style validation errors.
var (
	ErrInvalidScreenRatio = errors.New("screen ratio must be in (0, 1]")
	ErrInvalidWidth       = errors.New("fixed width must be finite and not negative")
	ErrInvalidColor       = errors.New("color must be a hex value like #8e8e8e")
	ErrInvalidFontSize    = errors.New("font size must be greater than 0")
)

// Default style values.
const (
	DefaultWidth      = 280.0
	DefaultBackground = "#8e8e8e"
	DefaultForeground = "#ffffff"
	DefaultFontSize   = 14.0
	DefaultFontWeight = "medium"
)

// TextAlignment aligns the message inside the toast.
type TextAlignment int

const (
	TextAlignLeft TextAlignment = iota
	TextAlignCenter
	TextAlignRight
	TextAlignJustify
)

// String returns the config name of the alignment.
func (a TextAlignment) String() string {
	switch a {
	case TextAlignCenter:
		return "center"
	case TextAlignRight:
		return "right"
	case TextAlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// ParseTextAlignment parses a text alignment name.
func ParseTextAlignment(s string) (TextAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return TextAlignLeft, nil
	case "center":
		return TextAlignCenter, nil
	case "right":
		return TextAlignRight, nil
	case "justify":
		return TextAlignJustify, nil
	default:
		return TextAlignLeft, fmt.Errorf("invalid text alignment %q", s)
	}
}

// IconAlignment places the icon on one side of the message.
type IconAlignment int

const (
	IconLeft IconAlignment = iota
	IconRight
)

// String returns the config name of the alignment.
func (a IconAlignment) String() string {
	if a == IconRight {
		return "right"
	}
	return "left"
}

// ParseIconAlignment parses an icon alignment name.
func ParseIconAlignment(s string) (IconAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return IconLeft, nil
	case "right":
		return IconRight, nil
	default:
		return IconLeft, fmt.Errorf("invalid icon alignment %q, must be left or right", s)
	}
}

// Width is either a fixed pixel width or a fraction of the screen width.
// The zero value resolves to DefaultWidth.
type Width struct {
	fixed float64
	ratio float64
}

// Fixed returns a width of px pixels.
func Fixed(px float64) Width {
	return Width{fixed: px}
}

// ScreenPercentage returns a width relative to the screen. The ratio must
// be in (0, 1].
func ScreenPercentage(ratio float64) (Width, error) {
	if !finite(ratio) || ratio <= 0 || ratio > 1 {
		return Width{}, fmt.Errorf("%w: got %g", ErrInvalidScreenRatio, ratio)
	}
	return Width{ratio: ratio}, nil
}

// MustScreenPercentage is like ScreenPercentage but panics on a bad ratio.
func MustScreenPercentage(ratio float64) Width {
	w, err := ScreenPercentage(ratio)
	if err != nil {
		panic(err)
	}
	return w
}

// IsScreenRelative reports whether the width is a screen ratio.
func (w Width) IsScreenRelative() bool {
	return w.ratio > 0
}

// Value returns the pixel value or the ratio, depending on the kind.
func (w Width) Value() float64 {
	if w.IsScreenRelative() {
		return w.ratio
	}
	if w.fixed == 0 {
		return DefaultWidth
	}
	return w.fixed
}

// Resolve returns the width in pixels for a screen of the given width.
func (w Width) Resolve(screenWidth float64) float64 {
	if w.IsScreenRelative() {
		return screenWidth * w.ratio
	}
	return w.Value()
}

// Validate reports a width that cannot be resolved.
func (w Width) Validate() error {
	if w.ratio != 0 && (!finite(w.ratio) || w.ratio < 0 || w.ratio > 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidScreenRatio, w.ratio)
	}
	if !finite(w.fixed) || w.fixed < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidWidth, w.fixed)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// String formats the width as "280px" or "50%".
func (w Width) String() string {
	if w.IsScreenRelative() {
		return fmt.Sprintf("%g%%", w.ratio*100)
	}
	return fmt.Sprintf("%gpx", w.Value())
}

// Font describes the message font.
type Font struct {
	Family string
	Size   float64
	Weight string // "regular", "medium", "semibold", "bold"
}

var validWeights = map[string]bool{
	"thin": true, "light": true, "regular": true, "medium": true, "semibold": true, "bold": true, "heavy": true,
}

// Style is the payload of the Custom visual state.
type Style struct {
	Background    string
	Text          string
	Tint          string
	Font          Font
	Icon          string // Icon name or path; empty hides the icon
	TextAlignment TextAlignment
	IconAlignment IconAlignment
	Width         Width
}

// StyleOption configures a Style built by NewStyle.
type StyleOption func(*Style)

// WithTextColor sets the message color.
func WithTextColor(c string) StyleOption { return func(s *Style) { s.Text = c } }

// WithTintColor sets the icon tint.
func WithTintColor(c string) StyleOption { return func(s *Style) { s.Tint = c } }

// WithFont sets the message font.
func WithFont(f Font) StyleOption { return func(s *Style) { s.Font = f } }

// WithIcon sets the icon; an empty name hides it.
func WithIcon(icon string) StyleOption { return func(s *Style) { s.Icon = icon } }

// WithTextAlignment sets the message alignment.
func WithTextAlignment(a TextAlignment) StyleOption { return func(s *Style) { s.TextAlignment = a } }

// WithIconAlignment sets the icon position.
func WithIconAlignment(a IconAlignment) StyleOption { return func(s *Style) { s.IconAlignment = a } }

// WithWidth sets the toast width.
func WithWidth(w Width) StyleOption { return func(s *Style) { s.Width = w } }

// DefaultStyle returns the style defaults with the given background.
func DefaultStyle(background string) Style {
	return Style{
		Background: background,
		Text:       DefaultForeground,
		Tint:       DefaultForeground,
		Font:       Font{Size: DefaultFontSize, Weight: DefaultFontWeight},
		Icon:       IconInfo,
		Width:      Fixed(DefaultWidth),
	}
}

// NewStyle builds and validates a custom style. Colors are normalized to
// lowercase #rrggbb.
func NewStyle(background string, opts ...StyleOption) (Style, error) {
	s := DefaultStyle(background)
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.normalize(); err != nil {
		return Style{}, err
	}
	return s, nil
}

// Validate checks colors, font size and width.
func (s Style) Validate() error {
	return s.normalize()
}

func (s *Style) normalize() error {
	for _, c := range []*string{&s.Background, &s.Text, &s.Tint} {
		hex, err := NormalizeColor(*c)
		if err != nil {
			return err
		}
		*c = hex
	}
	if !finite(s.Font.Size) || s.Font.Size <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidFontSize, s.Font.Size)
	}
	if s.Font.Weight == "" {
		s.Font.Weight = DefaultFontWeight
	}
	if !validWeights[s.Font.Weight] {
		return fmt.Errorf("invalid font weight %q", s.Font.Weight)
	}
	if s.Width.ratio == 0 && s.Width.fixed == 0 {
		s.Width = Fixed(DefaultWidth)
	}
	return s.Width.Validate()
}

// NormalizeColor validates a hex color and returns it as lowercase #rrggbb.
func NormalizeColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	col, err := colorful.Hex(c)
	if err != nil {
		return "", fmt.Errorf("%w: got %q", ErrInvalidColor, c)
	}
	return col.Hex(), nil
}
