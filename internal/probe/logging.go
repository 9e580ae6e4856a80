package probe

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"github.com/project-kessel/filterkit/internal/di"
)

// loggingResolver decorates a resolver with structured logging
type loggingResolver struct {
	next   di.Resolver
	logger *slog.Logger
	now    func() time.Time
}

// LoggingResolverConfig configures the logging resolver
type LoggingResolverConfig struct {
	// Next is the resolver doing the actual work. Required.
	Next di.Resolver

	// Logger is the base logger to use. If nil, uses slog.Default()
	Logger *slog.Logger

	// Now is the clock used to measure durations. If nil, uses time.Now
	Now func() time.Time
}

// NewLoggingResolver wraps next so every activation and resolution is logged
// using structured logging with slog.
func NewLoggingResolver(next di.Resolver, logger *slog.Logger) di.Resolver {
	return NewLoggingResolverWithConfig(LoggingResolverConfig{
		Next:   next,
		Logger: logger,
	})
}

// NewLoggingResolverWithConfig creates a logging resolver with custom configuration
func NewLoggingResolverWithConfig(cfg LoggingResolverConfig) di.Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &loggingResolver{
		next:   cfg.Next,
		logger: logger,
		now:    now,
	}
}

// Activate implements di.Resolver
func (r *loggingResolver) Activate(t reflect.Type, args ...any) (any, error) {
	start := r.now()
	v, err := r.next.Activate(t, args...)

	r.log("activation", t, start, err,
		slog.Int("explicit_args", len(args)),
	)
	return v, err
}

// Resolve implements di.Resolver
func (r *loggingResolver) Resolve(t reflect.Type) (any, error) {
	start := r.now()
	v, err := r.next.Resolve(t)

	r.log("resolution", t, start, err)
	return v, err
}

func (r *loggingResolver) log(event string, t reflect.Type, start time.Time, err error, extra ...slog.Attr) {
	attrs := []slog.Attr{
		slog.String("event", event),
		slog.String("type", typeString(t)),
		slog.Duration("duration", r.now().Sub(start)),
	}
	attrs = append(attrs, extra...)

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		r.logger.LogAttrs(context.Background(), slog.LevelError, "Filter dependency "+event+" failed", attrs...)
		return
	}

	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "Filter dependency "+event+" succeeded", attrs...)
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
