package filters

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/project-kessel/filterkit/internal/di"
)

// fakeResolver builds zero values for Activate and serves registered values
// for Resolve, counting every call.
type fakeResolver struct {
	mu          sync.Mutex
	activations map[reflect.Type]int
	lastArgs    []any
	services    map[reflect.Type]any

	activateErr error
	activate    func(t reflect.Type) (any, error)
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		activations: make(map[reflect.Type]int),
		services:    make(map[reflect.Type]any),
	}
}

func (r *fakeResolver) Activate(t reflect.Type, args ...any) (any, error) {
	r.mu.Lock()
	r.activations[t]++
	r.lastArgs = args
	err, activate := r.activateErr, r.activate
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if activate != nil {
		return activate(t)
	}
	return di.New(t), nil
}

func (r *fakeResolver) Resolve(t reflect.Type) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.services[t]
	if !ok {
		return nil, fmt.Errorf("missing type: %s", t)
	}
	return v, nil
}

func (r *fakeResolver) activationCount(t reflect.Type) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activations[t]
}

type myFilter struct {
	Marker
	order int
}

func (f *myFilter) Order() int { return f.order }

type nonFilter struct{}

// ParameterlessFactory is exported and declares no dependencies
type ParameterlessFactory struct {
	Marker
}

func (f *ParameterlessFactory) Order() int { return 1000 }
func (f *ParameterlessFactory) IsReusable() bool { return true }
func (f *ParameterlessFactory) CreateInstance(di.Resolver) (Metadata, error) { return nil, nil }

type hiddenFactory struct {
	Marker
}

func (f *hiddenFactory) Order() int { return 1000 }
func (f *hiddenFactory) IsReusable() bool { return true }
func (f *hiddenFactory) CreateInstance(di.Resolver) (Metadata, error) { return nil, nil }

type dependency struct{}

// DependentFactory declares an injected dependency
type DependentFactory struct {
	Marker
	Dep *dependency `inject:""`
}

func (f *DependentFactory) Order() int { return 1000 }
func (f *DependentFactory) IsReusable() bool { return true }
func (f *DependentFactory) CreateInstance(di.Resolver) (Metadata, error) { return nil, nil }

// CountingFactory produces a new filter on every call, numbering them
type CountingFactory struct {
	Marker
	created  int
	resolver di.Resolver
	reusable bool
}

func (f *CountingFactory) IsReusable() bool { return f.reusable }

func (f *CountingFactory) CreateInstance(r di.Resolver) (Metadata, error) {
	f.created++
	f.resolver = r
	return &myFilter{order: f.created}, nil
}

// ValueFactory implements Factory with value receivers
type ValueFactory struct {
	Marker
}

func (ValueFactory) IsReusable() bool { return false }
func (ValueFactory) CreateInstance(di.Resolver) (Metadata, error) { return &myFilter{}, nil }

// SettableFactory is default constructible and accepts an order
type SettableFactory struct {
	Marker
	order int
}

func (f *SettableFactory) Order() int { return f.order }
func (f *SettableFactory) SetOrder(order int) { f.order = order }
func (f *SettableFactory) IsReusable() bool { return false }
func (f *SettableFactory) CreateInstance(di.Resolver) (Metadata, error) { return &myFilter{}, nil }

// IntFactory is a Factory whose underlying type is not a struct
type IntFactory int

func (IntFactory) FilterMetadata() {}
func (IntFactory) IsReusable() bool { return false }
func (IntFactory) CreateInstance(di.Resolver) (Metadata, error) { return &myFilter{}, nil }

type hiddenIntFactory int

func (hiddenIntFactory) FilterMetadata() {}
func (hiddenIntFactory) IsReusable() bool { return false }
func (hiddenIntFactory) CreateInstance(di.Resolver) (Metadata, error) { return &myFilter{}, nil }
