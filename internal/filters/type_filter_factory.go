package filters

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/project-kessel/filterkit/internal/di"
)

// TypeFilterFactory defers construction of a Factory implementation until a
// resolver is available. The implementation is activated once, on the first
// successful CreateInstance call, and every later call delegates to that same
// instance.
type TypeFilterFactory struct {
	implementationType reflect.Type
	order              int
	reusable           bool

	mu      sync.Mutex
	factory Factory
}

// NewTypeFilterFactory creates a factory for t, which must implement Factory
func NewTypeFilterFactory(t reflect.Type) (*TypeFilterFactory, error) {
	if t == nil {
		return nil, missingArgument("type")
	}
	if !t.Implements(factoryType) {
		return nil, typeMismatch("type", t, factoryType)
	}

	return &TypeFilterFactory{
		implementationType: t,
	}, nil
}

// FilterMetadata implements Metadata
func (f *TypeFilterFactory) FilterMetadata() {}

// ImplementationType returns the Factory type this factory activates
func (f *TypeFilterFactory) ImplementationType() reflect.Type {
	return f.implementationType
}

// Order implements Ordered
func (f *TypeFilterFactory) Order() int {
	return f.order
}

// SetOrder sets the execution order
func (f *TypeFilterFactory) SetOrder(order int) {
	f.order = order
}

// IsReusable implements Factory
func (f *TypeFilterFactory) IsReusable() bool {
	return f.reusable
}

// SetReusable sets whether produced filters may be reused
func (f *TypeFilterFactory) SetReusable(reusable bool) {
	f.reusable = reusable
}

// CreateInstance implements Factory.
// Activation errors are returned as the resolver reported them and leave the
// factory uninitialized, so a later call retries.
func (f *TypeFilterFactory) CreateInstance(r di.Resolver) (Metadata, error) {
	if r == nil {
		return nil, missingArgument("resolver")
	}

	factory, err := f.instance(r)
	if err != nil {
		return nil, err
	}

	return factory.CreateInstance(r)
}

func (f *TypeFilterFactory) instance(r di.Resolver) (Factory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.factory != nil {
		return f.factory, nil
	}

	v, err := r.Activate(f.implementationType)
	if err != nil {
		return nil, err
	}

	factory, ok := v.(Factory)
	if !ok {
		return nil, fmt.Errorf("activating %s returned %T, which does not implement %s",
			TypeName(f.implementationType), v, TypeName(factoryType))
	}

	f.factory = factory
	return factory, nil
}
