package config

import (
	"os"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUADMUX_"

// envMapping maps environment variables onto setters.
var envMapping = map[string]func(c *Config, val string) error{
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error { c.Logging.Level = v; return nil },
	EnvPrefix + "LOG_FILE":  func(c *Config, v string) error { c.Logging.File = v; return nil },
	EnvPrefix + "CHARSET":   func(c *Config, v string) error { c.Input.Charset = v; return nil },
	EnvPrefix + "FILLER":    func(c *Config, v string) error { c.Grid.Filler = v; return nil },
	EnvPrefix + "SCRIPT":    func(c *Config, v string) error { c.Script.Path = v; return nil },
	EnvPrefix + "FPS": func(c *Config, v string) error {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Path: "app.fps", Message: "not an integer", Value: v}
		}
		c.App.FPS = fps
		return nil
	},
}

// ApplyEnv overrides settings from QUADMUX_* environment variables. Empty
// values are treated as set. Only malformed values are rejected here; range
// checks are left to Validate.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for name, set := range envMapping {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, val); err != nil {
			return err
		}
	}
	return nil
}
