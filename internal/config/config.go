package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/quadmux/internal/input/charclass"
	"github.com/dshills/quadmux/internal/input/key"
	"github.com/dshills/quadmux/internal/logging"
	"github.com/dshills/quadmux/internal/mux"
	"github.com/dshills/quadmux/internal/renderer/core"
	"github.com/dshills/quadmux/internal/window"
)

// Config is the complete quadmux configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid" yaml:"grid"`
	Input   InputConfig   `toml:"input" yaml:"input"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme"`
	App     AppConfig     `toml:"app" yaml:"app"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Script  ScriptConfig  `toml:"script" yaml:"script"`
}

// GridConfig configures window buffers.
type GridConfig struct {
	// Filler is the single-character placeholder for unused cells.
	Filler string `toml:"filler" yaml:"filler"`
}

// InputConfig configures keyboard routing.
type InputConfig struct {
	// FocusKeys names the key that focuses each window, in window order.
	FocusKeys []string `toml:"focus_keys" yaml:"focus_keys"`
	// Charset selects the drawability classifier: "unicode" or "ascii".
	Charset string `toml:"charset" yaml:"charset"`
}

// ColorPairConfig is a foreground/background pair of color names.
type ColorPairConfig struct {
	Fg string `toml:"fg" yaml:"fg"`
	Bg string `toml:"bg" yaml:"bg"`
}

// ThemeConfig holds the color pairs used for drawing.
type ThemeConfig struct {
	Muted        ColorPairConfig `toml:"muted" yaml:"muted"`
	Border       ColorPairConfig `toml:"border" yaml:"border"`
	ActiveBorder ColorPairConfig `toml:"active_border" yaml:"active_border"`
	Content      ColorPairConfig `toml:"content" yaml:"content"`
}

// AppConfig configures the host loop.
type AppConfig struct {
	// FPS is the number of ticks per second.
	FPS int `toml:"fps" yaml:"fps"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty discards logs in interactive mode,
	// since the terminal belongs to the grid.
	File string `toml:"file" yaml:"file"`
}

// ScriptConfig configures the startup input script.
type ScriptConfig struct {
	// Path is a Lua file replayed before interactive input starts.
	Path string `toml:"path" yaml:"path"`
}

// Limits for AppConfig.FPS.
const (
	MinFPS = 1
	MaxFPS = 240
)

// Default returns the built-in configuration.
func Default() *Config {
	names := make([]string, 0, window.Count)
	for _, code := range mux.DefaultFocusKeys {
		names = append(names, code.String())
	}
	return &Config{
		Grid: GridConfig{Filler: string(window.DefaultFiller)},
		Input: InputConfig{
			FocusKeys: names,
			Charset:   charclass.CharsetUnicode,
		},
		Theme: themeConfigFrom(core.DefaultTheme()),
		App:   AppConfig{FPS: 30},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func pairConfigFrom(p core.ColorPair) ColorPairConfig {
	return ColorPairConfig{Fg: p.Foreground.String(), Bg: p.Background.String()}
}

func themeConfigFrom(t core.Theme) ThemeConfig {
	return ThemeConfig{
		Muted:        pairConfigFrom(t.Muted),
		Border:       pairConfigFrom(t.Border),
		ActiveBorder: pairConfigFrom(t.ActiveBorder),
		Content:      pairConfigFrom(t.Content),
	}
}

// Build resolves color names into a color pair.
func (p ColorPairConfig) Build(path string) (core.ColorPair, error) {
	fg, err := core.ParseColor(p.Fg)
	if err != nil {
		return core.ColorPair{}, &ValidationError{Path: path + ".fg", Message: err.Error(), Value: p.Fg}
	}
	bg, err := core.ParseColor(p.Bg)
	if err != nil {
		return core.ColorPair{}, &ValidationError{Path: path + ".bg", Message: err.Error(), Value: p.Bg}
	}
	return core.NewColorPair(fg, bg), nil
}

// Build resolves the theme.
func (t ThemeConfig) Build() (core.Theme, error) {
	var theme core.Theme
	pairs := []struct {
		path string
		cfg  ColorPairConfig
		dst  *core.ColorPair
	}{
		{"theme.muted", t.Muted, &theme.Muted},
		{"theme.border", t.Border, &theme.Border},
		{"theme.active_border", t.ActiveBorder, &theme.ActiveBorder},
		{"theme.content", t.Content, &theme.Content},
	}
	for _, p := range pairs {
		pair, err := p.cfg.Build(p.path)
		if err != nil {
			return core.Theme{}, err
		}
		*p.dst = pair
	}
	return theme, nil
}

// FocusKeyCodes resolves the focus key names. Exactly one key per window
// is required and keys may not repeat.
func (c InputConfig) FocusKeyCodes() ([window.Count]key.Code, error) {
	var codes [window.Count]key.Code
	if len(c.FocusKeys) != window.Count {
		return codes, &ValidationError{
			Path:    "input.focus_keys",
			Message: fmt.Sprintf("need exactly %d keys", window.Count),
			Value:   c.FocusKeys,
		}
	}
	seen := make(map[key.Code]bool, window.Count)
	for i, name := range c.FocusKeys {
		code, err := key.ParseName(name)
		if err != nil {
			return codes, &ValidationError{Path: fmt.Sprintf("input.focus_keys[%d]", i), Message: err.Error(), Value: name}
		}
		if code == key.CtrlQ {
			return codes, &ValidationError{Path: fmt.Sprintf("input.focus_keys[%d]", i), Message: "reserved for quit", Value: name}
		}
		if seen[code] {
			return codes, &ValidationError{Path: fmt.Sprintf("input.focus_keys[%d]", i), Message: "duplicate key", Value: name}
		}
		seen[code] = true
		codes[i] = code
	}
	return codes, nil
}

// Classifier returns the drawability check for the configured charset.
func (c InputConfig) Classifier() (charclass.Classifier, error) {
	cls, err := charclass.ByName(c.Charset)
	if err != nil {
		return nil, &ValidationError{Path: "input.charset", Message: err.Error(), Value: c.Charset}
	}
	return cls, nil
}

// FillerRune returns the filler as a rune.
func (g GridConfig) FillerRune() (rune, error) {
	if utf8.RuneCountInString(g.Filler) != 1 {
		return 0, &ValidationError{Path: "grid.filler", Message: "must be a single character", Value: g.Filler}
	}
	r, _ := utf8.DecodeRuneInString(g.Filler)
	if !charclass.Drawable(r) {
		return 0, &ValidationError{Path: "grid.filler", Message: "must be drawable", Value: g.Filler}
	}
	return r, nil
}

// LogLevel parses the configured log level.
func (l LoggingConfig) LogLevel() (logging.Level, error) {
	lvl, err := logging.ParseLevel(l.Level)
	if err != nil {
		return lvl, &ValidationError{Path: "logging.level", Message: err.Error(), Value: l.Level}
	}
	return lvl, nil
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := c.Grid.FillerRune(); err != nil {
		return err
	}
	if _, err := c.Input.FocusKeyCodes(); err != nil {
		return err
	}
	if _, err := c.Input.Classifier(); err != nil {
		return err
	}
	if _, err := c.Theme.Build(); err != nil {
		return err
	}
	if c.App.FPS < MinFPS || c.App.FPS > MaxFPS {
		return &ValidationError{
			Path:    "app.fps",
			Message: fmt.Sprintf("must be between %d and %d", MinFPS, MaxFPS),
			Value:   c.App.FPS,
		}
	}
	if _, err := c.Logging.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Input.FocusKeys = append([]string(nil), c.Input.FocusKeys...)
	return &cp
}
