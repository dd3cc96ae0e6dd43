// Package config loads sqlbuilder configuration.
//
// Values are layered with koanf, highest precedence first:
// flags > SQLBUILDER_* environment variables > sqlbuilder.yaml > defaults.
// The options map is passed through untouched to extract.New.
package config

import (
	"fmt"
	"slices"
)

// Output formats accepted by the CLI.
const (
	OutputAuto     = "auto"
	OutputText     = "text"
	OutputJSON     = "json"
	OutputTable    = "table"
	OutputMarkdown = "markdown"
)

// OutputFormats lists the valid values of the output setting.
var OutputFormats = []string{OutputAuto, OutputText, OutputJSON, OutputTable, OutputMarkdown}

// Config holds all sqlbuilder configuration.
type Config struct {
	Output   string         `koanf:"output"`
	Verbose  bool           `koanf:"verbose"`
	LogLevel string         `koanf:"log_level"`
	Options  map[string]any `koanf:"options"`

	// ConfigFile is the file the configuration was read from, if any.
	ConfigFile string `koanf:"-"`
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Output) {
		return fmt.Errorf("invalid output format %q (valid: %v)", c.Output, OutputFormats)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}
