package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toasty/internal/model"
)

// Styles maps preset names to validated custom styles.
type Styles map[string]model.Style

// stylesFile is the YAML document holding style presets.
type stylesFile struct {
	Styles map[string]stylePreset `yaml:"styles"`
}

type stylePreset struct {
	Background    string       `yaml:"background"`
	Text          string       `yaml:"text,omitempty"`
	Tint          string       `yaml:"tint,omitempty"`
	Font          *fontPreset  `yaml:"font,omitempty"`
	Icon          *string      `yaml:"icon,omitempty"` // Omitted = info icon, "" = none
	TextAlignment string       `yaml:"text_alignment,omitempty"`
	IconAlignment string       `yaml:"icon_alignment,omitempty"`
	Width         *widthPreset `yaml:"width,omitempty"`
}

type fontPreset struct {
	Family string  `yaml:"family,omitempty"`
	Size   float64 `yaml:"size,omitempty"`
	Weight string  `yaml:"weight,omitempty"`
}

type widthPreset struct {
	Fixed  float64 `yaml:"fixed,omitempty"`
	Screen float64 `yaml:"screen,omitempty"`
}

// LoadStyles reads style presets from path. A missing file yields no
// presets.
func LoadStyles(path string) (Styles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Styles{}, nil
		}
		return nil, fmt.Errorf("failed to read styles file: %w", err)
	}
	return ParseStyles(data)
}

// ParseStyles decodes and validates a YAML preset document.
func ParseStyles(data []byte) (Styles, error) {
	var doc stylesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	styles := make(Styles, len(doc.Styles))
	for name, p := range doc.Styles {
		if _, err := model.ParseState(name); err == nil {
			return nil, fmt.Errorf("style %q: name is reserved for a built-in state", name)
		}
		st, err := p.toStyle()
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		styles[name] = st
	}
	return styles, nil
}

func (p stylePreset) toStyle() (model.Style, error) {
	if p.Background == "" {
		return model.Style{}, errors.New("background is required")
	}

	var opts []model.StyleOption
	if p.Text != "" {
		opts = append(opts, model.WithTextColor(p.Text))
	}
	if p.Tint != "" {
		opts = append(opts, model.WithTintColor(p.Tint))
	}
	if p.Font != nil {
		font := model.Font{Family: p.Font.Family, Size: p.Font.Size, Weight: p.Font.Weight}
		if font.Size == 0 {
			font.Size = model.DefaultFontSize
		}
		opts = append(opts, model.WithFont(font))
	}
	if p.Icon != nil {
		opts = append(opts, model.WithIcon(*p.Icon))
	}
	if p.TextAlignment != "" {
		a, err := model.ParseTextAlignment(p.TextAlignment)
		if err != nil {
			return model.Style{}, err
		}
		opts = append(opts, model.WithTextAlignment(a))
	}
	if p.IconAlignment != "" {
		a, err := model.ParseIconAlignment(p.IconAlignment)
		if err != nil {
			return model.Style{}, err
		}
		opts = append(opts, model.WithIconAlignment(a))
	}
	if p.Width != nil {
		w, err := p.Width.toWidth()
		if err != nil {
			return model.Style{}, err
		}
		opts = append(opts, model.WithWidth(w))
	}

	return model.NewStyle(p.Background, opts...)
}

func (w widthPreset) toWidth() (model.Width, error) {
	switch {
	case w.Fixed != 0 && w.Screen != 0:
		return model.Width{}, errors.New("width: set either fixed or screen, not both")
	case w.Screen != 0:
		return model.ScreenPercentage(w.Screen)
	case math.IsNaN(w.Fixed) || math.IsInf(w.Fixed, 0) || w.Fixed < 0:
		return model.Width{}, fmt.Errorf("%w: got %g", model.ErrInvalidWidth, w.Fixed)
	default:
		return model.Fixed(w.Fixed), nil
	}
}

// Names returns the preset names in sorted order.
func (s Styles) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// State resolves a state name: a built-in state first, then a preset.
func (s Styles) State(name string) (model.VisualState, error) {
	if st, err := model.ParseState(name); err == nil {
		return st, nil
	}
	key := strings.TrimSpace(name)
	if style, ok := s[key]; ok {
		return model.NamedCustom(key, style), nil
	}
	return nil, fmt.Errorf("unknown state %q, must be success, error, warning, info, cancel or a style preset", name)
}

// Marshal encodes the presets as a YAML document accepted by ParseStyles.
func (s Styles) Marshal() ([]byte, error) {
	doc := stylesFile{Styles: make(map[string]stylePreset, len(s))}
	for name, st := range s {
		icon := st.Icon
		p := stylePreset{
			Background:    st.Background,
			Text:          st.Text,
			Tint:          st.Tint,
			Font:          &fontPreset{Family: st.Font.Family, Size: st.Font.Size, Weight: st.Font.Weight},
			Icon:          &icon,
			TextAlignment: st.TextAlignment.String(),
			IconAlignment: st.IconAlignment.String(),
		}
		if st.Width.IsScreenRelative() {
			p.Width = &widthPreset{Screen: st.Width.Value()}
		} else {
			p.Width = &widthPreset{Fixed: st.Width.Value()}
		}
		doc.Styles[name] = p
	}
	return yaml.Marshal(doc)
}
