package config

import (
	"github.com/spf13/pflag"
)

// GetFlagMapping maps command-line flag names to config keys
func GetFlagMapping() map[string]string {
	return map[string]string{
		"log-level":     "observability.log_level",
		"log-format":    "observability.log_format",
		"default-order": "default_order",
		"version-label": "version",
	}
}

// RegisterFlags adds the config override flags to fs.
// Defaults are empty or zero; only flags that were set override the config.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-format", "", "log format (json, text)")
	fs.Int("default-order", 0, "order applied to filters that do not set one")
	fs.String("version-label", "", "version reported by the version_header filter")
}
