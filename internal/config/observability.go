package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Event names logged by the resolver probe
const (
	EventActivation = "activation"
	EventResolution = "resolution"
)

// levelDisabled is above every level the probe logs at
const levelDisabled = slog.Level(1000)

// NewLogger creates a structured logger from the observability configuration.
// Returns slog.Default() if cfg is nil.
func NewLogger(cfg *ObservabilityConfig) *slog.Logger {
	return NewLoggerWithWriter(cfg, os.Stderr)
}

// NewLoggerWithWriter is NewLogger writing to w
func NewLoggerWithWriter(cfg *ObservabilityConfig, w io.Writer) *slog.Logger {
	if cfg == nil {
		return slog.Default()
	}
	return slog.New(createEventFilteringHandler(cfg, w))
}

// createEventFilteringHandler creates a handler that filters log events based on the event attribute
func createEventFilteringHandler(cfg *ObservabilityConfig, w io.Writer) slog.Handler {
	defaultLevel := parseLogLevel(cfg.LogLevel)

	eventLevels := make(map[string]slog.Level)
	addEventLevel(eventLevels, EventActivation, cfg.Activation)
	addEventLevel(eventLevels, EventResolution, cfg.Resolution)

	// The base handler has to let through the most verbose event level
	minLevel := defaultLevel
	for _, level := range eventLevels {
		minLevel = min(minLevel, level)
	}

	return &eventFilteringHandler{
		next:         createHandler(w, cfg.LogFormat, minLevel),
		eventLevels:  eventLevels,
		defaultLevel: defaultLevel,
		minLevel:     minLevel,
	}
}

func addEventLevel(levels map[string]slog.Level, event string, cfg *EventLoggingConfig) {
	switch {
	case cfg == nil:
	case cfg.Enabled != nil && !*cfg.Enabled:
		levels[event] = levelDisabled
	case cfg.LogLevel != "":
		levels[event] = parseLogLevel(cfg.LogLevel)
	}
}

// eventFilteringHandler wraps a handler and filters based on the event attribute
type eventFilteringHandler struct {
	next         slog.Handler
	eventLevels  map[string]slog.Level
	defaultLevel slog.Level
	minLevel     slog.Level
}

func (h *eventFilteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// The event is only known in Handle
	return level >= h.minLevel
}

func (h *eventFilteringHandler) Handle(ctx context.Context, record slog.Record) error {
	var eventName string
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "event" {
			eventName = attr.Value.String()
			return false
		}
		return true
	})

	threshold := h.defaultLevel
	if level, ok := h.eventLevels[eventName]; ok {
		threshold = level
	}
	if record.Level < threshold {
		return nil
	}

	return h.next.Handle(ctx, record)
}

func (h *eventFilteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &eventFilteringHandler{
		next:         h.next.WithAttrs(attrs),
		eventLevels:  h.eventLevels,
		defaultLevel: h.defaultLevel,
		minLevel:     h.minLevel,
	}
}

func (h *eventFilteringHandler) WithGroup(name string) slog.Handler {
	return &eventFilteringHandler{
		next:         h.next.WithGroup(name),
		eventLevels:  h.eventLevels,
		defaultLevel: h.defaultLevel,
		minLevel:     h.minLevel,
	}
}

// createHandler creates a slog handler based on format and level
func createHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(format) {
	case "text":
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// parseLogLevel parses a log level string
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
