package config

import (
	"fmt"
	"reflect"

	"github.com/project-kessel/filterkit/internal/cel"
	"github.com/project-kessel/filterkit/internal/filters"
	"github.com/project-kessel/filterkit/internal/registry"
)

// NewCollection builds a filter collection from configuration.
// Entries whose condition evaluates to false are skipped; all others are
// added in the configured order.
func NewCollection(cfg *Config, types *registry.Types) (*filters.Collection, error) {
	collection := filters.NewCollection()
	if cfg == nil {
		return collection, nil
	}
	if types == nil {
		return nil, fmt.Errorf("filter type registry is required")
	}

	for i, filterCfg := range cfg.Filters {
		if filterCfg.Name == "" {
			return nil, fmt.Errorf("filter %d: name is required", i)
		}

		include, err := evalCondition(filterCfg.When, cfg.Variables, types)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, filterCfg.Name, err)
		}
		if !include {
			continue
		}

		filterType, err := types.Lookup(filterCfg.Name)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}

		added, err := addFilter(collection, filterType, filterCfg, cfg.DefaultOrder)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, filterCfg.Name, err)
		}

		if filterCfg.Reusable {
			filters.SetReusable(added, true)
		}
	}

	return collection, nil
}

func addFilter(c *filters.Collection, t reflect.Type, cfg FilterConfig, defaultOrder int) (filters.Metadata, error) {
	order, hasOrder := defaultOrder, defaultOrder != 0
	if cfg.Order != nil {
		order, hasOrder = *cfg.Order, true
	}

	switch cfg.Kind {
	case KindType, "":
		if hasOrder {
			return c.AddWithOrder(t, order)
		}
		return c.Add(t)
	case KindFactory:
		var (
			f   *filters.TypeFilterFactory
			err error
		)
		if hasOrder {
			f, err = c.AddFactoryWithOrder(t, order)
		} else {
			f, err = c.AddFactory(t)
		}
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindService:
		if hasOrder {
			return c.AddServiceWithOrder(t, order)
		}
		return c.AddService(t)
	default:
		return nil, fmt.Errorf("unknown filter kind: %s (supported: type, factory, service)", cfg.Kind)
	}
}

func evalCondition(script string, vars map[string]any, types *registry.Types) (bool, error) {
	if script == "" {
		return true, nil
	}

	cond, err := cel.NewCondition(script, types)
	if err != nil {
		return false, err
	}
	return cond.Eval(vars)
}
