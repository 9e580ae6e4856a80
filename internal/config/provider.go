package config

import (
	"fmt"
	"log/slog"

	"github.com/project-kessel/filterkit/internal/builtin"
	"github.com/project-kessel/filterkit/internal/di"
	"github.com/project-kessel/filterkit/internal/filters"
	"github.com/project-kessel/filterkit/internal/probe"
	"github.com/project-kessel/filterkit/internal/registry"
)

// Provider constructs all application components from configuration
type Provider struct {
	config *Config

	// Lazily constructed components (cached after first call)
	logger         *slog.Logger
	types          *registry.Types
	container      *di.Container
	collection     *filters.Collection
	filterProvider *filters.Provider
}

// NewProvider creates a new provider from configuration
func NewProvider(config *Config) *Provider {
	return &Provider{
		config: config,
	}
}

// SetLogger sets the logger shared by all components built by this provider.
// Must be called before Resolver() or FilterProvider().
func (p *Provider) SetLogger(logger *slog.Logger) {
	p.logger = logger
}

// Logger returns the configured logger
func (p *Provider) Logger() *slog.Logger {
	if p.logger == nil {
		p.logger = NewLogger(p.config.Observability)
	}
	return p.logger
}

// Types returns the filter type registry with the builtin filters registered
func (p *Provider) Types() (*registry.Types, error) {
	if p.types != nil {
		return p.types, nil
	}

	types := registry.NewTypes()
	if err := builtin.RegisterTypes(types); err != nil {
		return nil, fmt.Errorf("failed to register builtin filters: %w", err)
	}

	p.types = types
	return types, nil
}

// Container returns the dependency container with the builtin services registered
func (p *Provider) Container() (*di.Container, error) {
	if p.container != nil {
		return p.container, nil
	}

	container := di.NewContainer()
	if err := builtin.Provide(container, builtin.BuildInfo{Version: p.config.Version}); err != nil {
		return nil, fmt.Errorf("failed to register builtin services: %w", err)
	}

	p.container = container
	return container, nil
}

// Resolver returns the container decorated with activation logging
func (p *Provider) Resolver() (di.Resolver, error) {
	container, err := p.Container()
	if err != nil {
		return nil, err
	}
	return probe.NewLoggingResolver(container, p.Logger()), nil
}

// Collection returns the configured filter collection
func (p *Provider) Collection() (*filters.Collection, error) {
	if p.collection != nil {
		return p.collection, nil
	}

	types, err := p.Types()
	if err != nil {
		return nil, err
	}

	collection, err := NewCollection(p.config, types)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter collection: %w", err)
	}

	p.collection = collection
	return collection, nil
}

// FilterProvider returns the provider materializing the configured collection
func (p *Provider) FilterProvider() (*filters.Provider, error) {
	if p.filterProvider != nil {
		return p.filterProvider, nil
	}

	collection, err := p.Collection()
	if err != nil {
		return nil, err
	}

	resolver, err := p.Resolver()
	if err != nil {
		return nil, err
	}

	filterProvider, err := filters.NewProvider(resolver, collection.Items())
	if err != nil {
		return nil, fmt.Errorf("failed to create filter provider: %w", err)
	}

	p.filterProvider = filterProvider
	return filterProvider, nil
}
