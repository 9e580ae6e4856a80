package config

// Config is the root configuration
type Config struct {
	// Version is reported by the version_header filter
	Version string `koanf:"version"`

	// DefaultOrder is applied to configured filters that do not set an order
	DefaultOrder int `koanf:"default_order"`

	// Variables are exposed to filter conditions as `vars`
	Variables map[string]any `koanf:"variables"`

	// Filters are added to the collection in the listed order
	Filters []FilterConfig `koanf:"filters"`

	Observability *ObservabilityConfig `koanf:"observability"`
}

// Filter kinds
const (
	KindType    = "type"
	KindFactory = "factory"
	KindService = "service"
)

// FilterConfig declares one collection entry
type FilterConfig struct {
	// Name is the registered filter type name
	Name string `koanf:"name"`

	// Kind selects type (activated, the default), factory (activated once and
	// shared) or service (resolved) registration
	Kind string `koanf:"kind"`

	// Order overrides DefaultOrder when set
	Order *int `koanf:"order"`

	// Reusable marks products of the descriptor as reusable across requests
	Reusable bool `koanf:"reusable"`

	// When is an optional CEL condition; the entry is skipped when it evaluates to false
	When string `koanf:"when"`
}

// ObservabilityConfig configures logging
type ObservabilityConfig struct {
	// LogLevel is one of debug, info, warn, error. Default: info
	LogLevel string `koanf:"log_level"`

	// LogFormat is json (default) or text
	LogFormat string `koanf:"log_format"`

	// Activation overrides logging of resolver activation events
	Activation *EventLoggingConfig `koanf:"activation"`

	// Resolution overrides logging of service resolution events
	Resolution *EventLoggingConfig `koanf:"resolution"`
}

// EventLoggingConfig configures logging for one event type
type EventLoggingConfig struct {
	// Enabled turns the event off when set to false
	Enabled *bool `koanf:"enabled"`

	// LogLevel is the minimum level logged for the event. Defaults to LogLevel.
	LogLevel string `koanf:"log_level"`
}
