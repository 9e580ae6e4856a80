// Package registry maps configuration names to filter types.
package registry

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Types is a name to type registry.
// Configuration and the CLI refer to filter types through it.
type Types struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewTypes creates an empty registry
func NewTypes() *Types {
	return &Types{
		types: make(map[string]reflect.Type),
	}
}

// Register adds t under name. Names are unique.
func (r *Types) Register(name string, t reflect.Type) error {
	if name == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	if t == nil {
		return fmt.Errorf("type %q cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.types == nil {
		r.types = make(map[string]reflect.Type)
	}
	if existing, ok := r.types[name]; ok {
		return fmt.Errorf("type %q already registered as %s", name, existing)
	}
	r.types[name] = t
	return nil
}

// Register adds T under name
func Register[T any](r *Types, name string) error {
	return r.Register(name, reflect.TypeFor[T]())
}

// Lookup returns the type registered under name
func (r *Types) Lookup(name string) (reflect.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown filter type: %s", name)
	}
	return t, nil
}

// Has reports whether name is registered
func (r *Types) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.types[name]
	return ok
}

// Names returns the registered names in sorted order
func (r *Types) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
