package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// OptionFlag is the repeatable key=value flag merged into Config.Options.
const OptionFlag = "option"

// flags that are not config keys
var skipFlags = map[string]bool{
	"config":   true,
	OptionFlag: true,
	"help":     true,
	"version":  true,
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load loads configuration for the current working directory.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return LoadFromDir(cwd, cfgFile, flags)
}

// LoadFromDir loads configuration, looking for sqlbuilder.yaml or
// sqlbuilder.yml in dir when cfgFile is empty. A missing config file is not
// an error; an explicit cfgFile that cannot be read is.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadFromDir(dir, cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output":    DefaultOutput,
		"verbose":   false,
		"log_level": DefaultLogLevel,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFile := cfgFile
	if configFile == "" {
		configFile = findConfigFile(dir)
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables
	// Transform: SQLBUILDER_LOG_LEVEL -> log_level, SQLBUILDER_OPTIONS_ESCAPE -> options.escape
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only explicitly set flags override lower layers
			if !f.Changed || skipFlags[f.Name] {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = configFile
	ApplyDefaults(&cfg)

	if flags != nil {
		if err := mergeOptionFlags(&cfg, flags); err != nil {
			return nil, err
		}
	}
	expandOptionEnvVars(cfg.Options)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the config file in dir, or "" if there is none.
func findConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "options_"); ok {
		return "options." + rest
	}
	return key
}

// mergeOptionFlags applies --option key=value pairs over the loaded options.
func mergeOptionFlags(cfg *Config, flags *pflag.FlagSet) error {
	if flags.Lookup(OptionFlag) == nil {
		return nil
	}
	pairs, err := flags.GetStringArray(OptionFlag)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid --%s %q: expected key=value", OptionFlag, pair)
		}
		cfg.Options[key] = ParseOptionValue(value)
	}
	return nil
}

// ParseOptionValue converts a command-line option value to an integer or bool
// when it reads as one, and keeps it as a string otherwise.
func ParseOptionValue(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// expandOptionEnvVars expands ${VAR} patterns in string option values.
func expandOptionEnvVars(opts map[string]any) {
	for k, v := range opts {
		switch val := v.(type) {
		case string:
			opts[k] = expandEnvVars(val)
		case map[string]any:
			expandOptionEnvVars(val)
		}
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}
