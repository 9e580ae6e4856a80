package filters

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/project-kessel/filterkit/internal/di"
)

// Provider turns a fixed set of filter items into concrete filters.
//
// Items are sorted once by order, keeping insertion order between equal
// orders. Factories are asked for an instance on every Filters call unless
// they are reusable, in which case their first non-nil product is kept.
type Provider struct {
	resolver di.Resolver
	items    []Metadata

	mu     sync.Mutex
	cached map[int]Metadata
}

// NewProvider creates a provider over items, typically Collection.Items()
func NewProvider(resolver di.Resolver, items []Metadata) (*Provider, error) {
	if resolver == nil {
		return nil, missingArgument("resolver")
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Metadata) int {
		return cmp.Compare(OrderOf(a), OrderOf(b))
	})

	return &Provider{
		resolver: resolver,
		items:    sorted,
		cached:   make(map[int]Metadata),
	}, nil
}

// Items returns the sorted items the provider was built from
func (p *Provider) Items() []Metadata {
	return slices.Clone(p.items)
}

// Filters returns the concrete filters in execution order.
// Factories producing nil are skipped.
func (p *Provider) Filters() ([]Metadata, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	filters := make([]Metadata, 0, len(p.items))
	for i, item := range p.items {
		factory, ok := item.(Factory)
		if !ok {
			filters = append(filters, item)
			continue
		}

		if cached, ok := p.cached[i]; ok {
			filters = append(filters, cached)
			continue
		}

		filter, err := factory.CreateInstance(p.resolver)
		if err != nil {
			return nil, fmt.Errorf("failed to create filter %d (%T): %w", i, item, err)
		}
		if filter == nil {
			continue
		}

		if factory.IsReusable() {
			p.cached[i] = filter
		}
		filters = append(filters, filter)
	}

	return filters, nil
}
