package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variable overrides
const EnvPrefix = "FILTERKIT_"

// Loader is a lightweight wrapper around koanf for loading configuration
// from files and environment variables
type Loader struct {
	k          *koanf.Koanf
	configPath string
}

// NewLoader creates a new configuration loader that reads from a file
// and overlays environment variable overrides with FILTERKIT_ prefix.
//
// The file format (YAML, JSON, or TOML) is auto-detected from the extension.
// Environment variables like FILTERKIT_OBSERVABILITY__LOG_LEVEL map to observability.log_level
// If configPath is empty, only environment variables and defaults will be loaded.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (FILTERKIT_*)
//  2. Configuration file (if provided)
//  3. Built-in defaults
func NewLoader(configPath string) (*Loader, error) {
	return newLoader(configPath, nil)
}

// NewLoaderWithFlags creates a new configuration loader with command-line flag support.
//
// Configuration precedence (highest to lowest):
//  1. Command-line flags
//  2. Environment variables (FILTERKIT_*)
//  3. Configuration file (if provided)
//  4. Built-in defaults
func NewLoaderWithFlags(configPath string, flags *pflag.FlagSet) (*Loader, error) {
	return newLoader(configPath, flags)
}

// getDefaults returns the default configuration values
func getDefaults() map[string]interface{} {
	return map[string]interface{}{
		"version":                  "dev",
		"default_order":            0,
		"observability.log_level":  "info",
		"observability.log_format": "json",
	}
}

func newLoader(configPath string, flags *pflag.FlagSet) (*Loader, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(getDefaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		parser, err := getParserForFile(configPath)
		if err != nil {
			return nil, err
		}

		if err := k.Load(file.Provider(configPath), parser); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Double underscore nests: FILTERKIT_OBSERVABILITY__LOG_LEVEL -> observability.log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if flags != nil {
		flagMapping := GetFlagMapping()

		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			configKey, ok := flagMapping[f.Name]
			if !ok {
				return "", nil
			}

			// Only override if the flag was explicitly set
			if !f.Changed {
				return "", nil
			}

			return configKey, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load command-line flags: %w", err)
		}
	}

	return &Loader{
		k:          k,
		configPath: configPath,
	}, nil
}

// Get unmarshals the configuration into a Config struct
func (l *Loader) Get() (*Config, error) {
	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ConfigPath returns the file the loader read, if any
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// getParserForFile returns the appropriate koanf parser based on file extension
func getParserForFile(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}
}

// envTransform transforms environment variable names to config keys
//
//	FILTERKIT_OBSERVABILITY__LOG_LEVEL -> observability.log_level
//	FILTERKIT_DEFAULT_ORDER -> default_order
func envTransform(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "__", ".")
	return s
}
