package filters

import (
	"fmt"
	"reflect"

	"github.com/project-kessel/filterkit/internal/di"
)

// TypeFilter is a descriptor that activates ImplementationType through the
// resolver every time an instance is requested. Arguments are passed to the
// activation as explicit dependencies.
//
// If the activated value is itself a Factory, its product is returned instead.
type TypeFilter struct {
	implementationType reflect.Type
	arguments          []any
	order              int
	reusable           bool
}

// NewTypeFilter creates a descriptor for t, which must implement Metadata
func NewTypeFilter(t reflect.Type, args ...any) (*TypeFilter, error) {
	if t == nil {
		return nil, missingArgument("type")
	}
	if !t.Implements(metadataType) {
		return nil, typeMismatch("type", t, metadataType)
	}

	return &TypeFilter{
		implementationType: t,
		arguments:          args,
	}, nil
}

// FilterMetadata implements Metadata
func (f *TypeFilter) FilterMetadata() {}

// ImplementationType returns the filter type this descriptor activates
func (f *TypeFilter) ImplementationType() reflect.Type {
	return f.implementationType
}

// Arguments returns the explicit activation arguments
func (f *TypeFilter) Arguments() []any {
	return f.arguments
}

// SetArguments replaces the explicit activation arguments
func (f *TypeFilter) SetArguments(args ...any) {
	f.arguments = args
}

// Order implements Ordered
func (f *TypeFilter) Order() int {
	return f.order
}

// SetOrder sets the execution order
func (f *TypeFilter) SetOrder(order int) {
	f.order = order
}

// IsReusable implements Factory
func (f *TypeFilter) IsReusable() bool {
	return f.reusable
}

// SetReusable sets whether produced filters may be reused
func (f *TypeFilter) SetReusable(reusable bool) {
	f.reusable = reusable
}

// CreateInstance implements Factory
func (f *TypeFilter) CreateInstance(r di.Resolver) (Metadata, error) {
	if r == nil {
		return nil, missingArgument("resolver")
	}

	v, err := r.Activate(f.implementationType, f.arguments...)
	if err != nil {
		return nil, err
	}

	return unwrap(r, f.implementationType, v)
}

// unwrap converts a resolved value into a filter, asking factories for their product
func unwrap(r di.Resolver, t reflect.Type, v any) (Metadata, error) {
	m, ok := v.(Metadata)
	if !ok {
		return nil, fmt.Errorf("resolving %s returned %T, which does not implement %s",
			TypeName(t), v, TypeName(metadataType))
	}

	if factory, ok := m.(Factory); ok {
		return factory.CreateInstance(r)
	}
	return m, nil
}
