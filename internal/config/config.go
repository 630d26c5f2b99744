// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/toasty/internal/model"
)

// Default configuration values.
const (
	DefaultOffsetY   = 24
	DefaultVolume    = 80
	DefaultAnimation = 250 * time.Millisecond
	DefaultTheme     = "default"
)

// Config is the toasty configuration.
// Loaded from ~/.config/toasty/toasty.toml
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Display  DisplayConfig  `toml:"display"`
	Audio    AudioConfig    `toml:"audio"`
	Theme    ThemeConfig    `toml:"theme"`
	Mouse    MouseConfig    `toml:"mouse"`
	Styles   StylesConfig   `toml:"styles"`
}

// DefaultsConfig holds the options applied to every new request.
type DefaultsConfig struct {
	Mode       string `toml:"mode"`       // all, interactive
	State      string `toml:"state"`      // success, error, warning, info, cancel or a style preset
	Location   string `toml:"location"`   // top, bottom
	Presenting string `toml:"presenting"` // left, right, vertical
	Dismissing string `toml:"dismissing"` // left, right, vertical
	Duration   string `toml:"duration"`   // short, average, long or a duration like "5s"
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	OffsetX     int      `toml:"offset_x"`     // Pixels from the horizontal screen edge
	OffsetY     int      `toml:"offset_y"`     // Pixels from the anchored edge
	Monitor     int      `toml:"monitor"`      // 0 = compositor choice, 1+ = specific monitor
	Opacity     float64  `toml:"opacity"`      // 0.0-1.0
	Animation   Duration `toml:"animation"`    // Present and dismiss animation length
	ScreenWidth int      `toml:"screen_width"` // 0 = ask the presenter
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig contains per-state sound file paths.
type SoundConfig struct {
	Success string `toml:"success"`
	Error   string `toml:"error"`
	Warning string `toml:"warning"`
	Info    string `toml:"info"`
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .css extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// MouseConfig maps mouse buttons to toast actions.
type MouseConfig struct {
	Left   string `toml:"left"`
	Middle string `toml:"middle"`
	Right  string `toml:"right"`
}

// MouseAction is what a click on a toast does.
type MouseAction string

const (
	MouseActionTap     MouseAction = "tap"     // Dismiss with a tap
	MouseActionCancel  MouseAction = "cancel"  // Same as the cancel control
	MouseActionDismiss MouseAction = "dismiss" // Dismiss without a callback
	MouseActionClear   MouseAction = "clear"   // Dismiss and drop everything queued
	MouseActionNone    MouseAction = "none"
)

// ValidMouseActions returns all valid mouse action values.
func ValidMouseActions() []MouseAction {
	return []MouseAction{MouseActionTap, MouseActionCancel, MouseActionDismiss, MouseActionClear, MouseActionNone}
}

// Event returns the dismissal trigger the action reports. Actions that
// act on the queue instead return false.
func (a MouseAction) Event() (model.Event, bool) {
	switch a {
	case MouseActionTap:
		return model.EventTap, true
	case MouseActionCancel:
		return model.EventCancelButton, true
	default:
		return 0, false
	}
}

// ForButton returns the action bound to a GDK button number (1 left,
// 2 middle, 3 right). Unknown buttons do nothing.
func (m MouseConfig) ForButton(button uint) MouseAction {
	switch button {
	case 1:
		return MouseAction(m.Left)
	case 2:
		return MouseAction(m.Middle)
	case 3:
		return MouseAction(m.Right)
	default:
		return MouseActionNone
	}
}

// StylesConfig points at the style preset file.
type StylesConfig struct {
	File string `toml:"file"` // Empty = ~/.config/toasty/styles.yaml
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Mode:       model.DismissAll.String(),
			State:      model.StateInfo.Name(),
			Location:   model.LocationBottom.String(),
			Presenting: model.DirectionVertical.String(),
			Dismissing: model.DirectionVertical.String(),
			Duration:   model.DurationAverage.String(),
		},
		Display: DisplayConfig{
			OffsetY:   DefaultOffsetY,
			Opacity:   1.0,
			Animation: Duration(DefaultAnimation),
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  DefaultVolume,
		},
		Theme: ThemeConfig{
			Name:        DefaultTheme,
			ColorScheme: string(ColorSchemeSystem),
		},
		Mouse: MouseConfig{
			Left:   string(MouseActionTap),
			Middle: string(MouseActionNone),
			Right:  string(MouseActionDismiss),
		},
	}
}

// Dir returns the toasty config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toasty")
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(Dir(), "toasty.toml")
}

// StylesPath returns the style preset file named by the config, or the
// default location.
func (c *Config) StylesPath() string {
	if c.Styles.File != "" {
		return ExpandPath(c.Styles.File)
	}
	return filepath.Join(Dir(), "styles.yaml")
}

// Load loads configuration from path, or from Path() if path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, or to Path() if path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid. The default state is not
// checked here because it may name a style preset; RequestDefaults
// resolves it.
func (c *Config) Validate() error {
	if _, err := model.ParseMode(c.Defaults.Mode); err != nil {
		return fmt.Errorf("defaults.mode: %w", err)
	}
	if _, err := model.ParseLocation(c.Defaults.Location); err != nil {
		return fmt.Errorf("defaults.location: %w", err)
	}
	if _, err := model.ParseDirection(c.Defaults.Presenting); err != nil {
		return fmt.Errorf("defaults.presenting: %w", err)
	}
	if _, err := model.ParseDirection(c.Defaults.Dismissing); err != nil {
		return fmt.Errorf("defaults.dismissing: %w", err)
	}
	if _, err := model.ParseDuration(c.Defaults.Duration); err != nil {
		return fmt.Errorf("defaults.duration: %w", err)
	}

	if c.Display.Opacity < 0 || c.Display.Opacity > 1 {
		return fmt.Errorf("opacity must be between 0 and 1, got %g", c.Display.Opacity)
	}
	if c.Display.Animation < 0 {
		return fmt.Errorf("animation must not be negative, got %s", c.Display.Animation.Duration())
	}
	if c.Display.Monitor < 0 {
		return fmt.Errorf("monitor must not be negative, got %d", c.Display.Monitor)
	}
	if c.Display.ScreenWidth < 0 {
		return fmt.Errorf("screen_width must not be negative, got %d", c.Display.ScreenWidth)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Theme.ColorScheme == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	validActions := make(map[string]bool)
	for _, a := range ValidMouseActions() {
		validActions[string(a)] = true
	}
	for _, action := range []string{c.Mouse.Left, c.Mouse.Middle, c.Mouse.Right} {
		if !validActions[action] {
			return fmt.Errorf("invalid mouse action %q, must be one of: %v", action, ValidMouseActions())
		}
	}

	return nil
}

// RequestDefaults is the parsed [defaults] section.
type RequestDefaults struct {
	Mode       model.DismissalMode
	State      model.VisualState
	Location   model.Location
	Presenting model.Direction
	Dismissing model.Direction
	Duration   model.Duration
}

// Options returns the defaults as request options.
func (d RequestDefaults) Options() []model.Option {
	return []model.Option{
		model.WithMode(d.Mode),
		model.WithState(d.State),
		model.WithLocation(d.Location),
		model.WithPresentingDirection(d.Presenting),
		model.WithDismissingDirection(d.Dismissing),
	}
}

// RequestDefaults parses the [defaults] section. The state may name one of
// presets.
func (c *Config) RequestDefaults(presets Styles) (RequestDefaults, error) {
	var d RequestDefaults
	var err error

	if d.Mode, err = model.ParseMode(c.Defaults.Mode); err != nil {
		return d, err
	}
	if d.State, err = presets.State(c.Defaults.State); err != nil {
		return d, err
	}
	if d.Location, err = model.ParseLocation(c.Defaults.Location); err != nil {
		return d, err
	}
	if d.Presenting, err = model.ParseDirection(c.Defaults.Presenting); err != nil {
		return d, err
	}
	if d.Dismissing, err = model.ParseDirection(c.Defaults.Dismissing); err != nil {
		return d, err
	}
	if d.Duration, err = model.ParseDuration(c.Defaults.Duration); err != nil {
		return d, err
	}
	return d, nil
}

// RequestOptions converts the [defaults] section to request options.
func (c *Config) RequestOptions(presets Styles) ([]model.Option, error) {
	d, err := c.RequestDefaults(presets)
	if err != nil {
		return nil, err
	}
	return d.Options(), nil
}

// SoundForState returns the sound file for a visual state, with ~ expanded.
// Custom states and the cancel-button state use the info sound.
func (c *Config) SoundForState(s model.VisualState) string {
	var path string
	switch s {
	case model.StateSuccess:
		path = c.Audio.Sounds.Success
	case model.StateError:
		path = c.Audio.Sounds.Error
	case model.StateWarning:
		path = c.Audio.Sounds.Warning
	default:
		path = c.Audio.Sounds.Info
	}
	return ExpandPath(path)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
