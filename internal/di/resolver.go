package di

import (
	"reflect"
)

// Resolver constructs values for the filter machinery.
//
// Activate builds an instance of t even when t itself was never registered:
// explicit args are matched to the type's injected fields first and every
// remaining dependency comes from the resolver's own registrations.
// Resolve returns a registered service.
type Resolver interface {
	Activate(t reflect.Type, args ...any) (any, error)
	Resolve(t reflect.Type) (any, error)
}

// ResolveAs resolves a service of type T from r.
func ResolveAs[T any](r Resolver) (T, error) {
	var zero T
	v, err := r.Resolve(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}
