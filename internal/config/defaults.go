package config

// Default configuration values.
const (
	DefaultOutput   = OutputAuto
	DefaultLogLevel = "warn"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "sqlbuilder.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "sqlbuilder.yml"

// EnvPrefix prefixes environment variables read into the config.
const EnvPrefix = "SQLBUILDER_"

// Default returns a Config with default values applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset values.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Options == nil {
		c.Options = map[string]any{}
	}
}
