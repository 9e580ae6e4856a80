package di

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/dig"
)

// Container is a Resolver backed by a dig container.
//
// Services are registered with Provide (constructor functions) or Instance
// (ready values). Types that were never registered can still be built with
// Activate; struct types declare their dependencies with `inject` field tags.
type Container struct {
	c *dig.Container
}

// NewContainer creates an empty container
func NewContainer(opts ...dig.Option) *Container {
	return &Container{
		c: dig.New(opts...),
	}
}

// Provide registers a constructor function.
// The function's parameters are resolved from the container when one of its
// results is first requested; results are cached for the container's lifetime.
func (c *Container) Provide(constructor any, opts ...dig.ProvideOption) error {
	return c.c.Provide(constructor, opts...)
}

// Instance registers v under its dynamic type
func (c *Container) Instance(v any) error {
	if v == nil {
		return errors.New("di: cannot register nil instance")
	}
	return c.provideValue(reflect.ValueOf(v), reflect.TypeOf(v))
}

// InstanceAs registers v under the type T, typically an interface v implements.
func InstanceAs[T any](c *Container, v T) error {
	return c.provideValue(reflect.ValueOf(&v).Elem(), reflect.TypeFor[T]())
}

func (c *Container) provideValue(v reflect.Value, t reflect.Type) error {
	ctor := reflect.MakeFunc(
		reflect.FuncOf(nil, []reflect.Type{t}, false),
		func([]reflect.Value) []reflect.Value {
			return []reflect.Value{v}
		},
	)
	if err := c.c.Provide(ctor.Interface()); err != nil {
		return fmt.Errorf("di: failed to register %s: %w", t, err)
	}
	return nil
}

// Resolve implements Resolver
func (c *Container) Resolve(t reflect.Type) (any, error) {
	if t == nil {
		return nil, errors.New("di: cannot resolve nil type")
	}

	var out reflect.Value
	fn := reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{t}, nil, false),
		func(args []reflect.Value) []reflect.Value {
			out = args[0]
			return nil
		},
	)
	if err := c.c.Invoke(fn.Interface()); err != nil {
		return nil, err
	}

	return out.Interface(), nil
}

// Activate implements Resolver.
//
// t must be a concrete type or a pointer to one. A fresh value is allocated on
// every call, its `inject` fields are filled (explicit args first, matched by
// assignability in order; the container otherwise) and the value is returned
// as t. Every explicit arg must be consumed, so non-struct types take none.
func (c *Container) Activate(t reflect.Type, args ...any) (any, error) {
	if t == nil {
		return nil, errors.New("di: cannot activate nil type")
	}

	base := valueType(t)
	if base.Kind() == reflect.Interface {
		return nil, fmt.Errorf("di: cannot activate %s: interface types have no zero value to build", t)
	}

	ptr := reflect.New(base)
	used := make([]bool, len(args))

	for _, dep := range Dependencies(t) {
		field := ptr.Elem().Field(dep.Index)
		if !field.CanSet() {
			return nil, fmt.Errorf("di: cannot activate %s: injected field %s is unexported", t, dep.Name)
		}

		if v, ok := matchArgument(dep.Type, args, used); ok {
			field.Set(v)
			continue
		}

		v, err := c.Resolve(dep.Type)
		if err != nil {
			return nil, fmt.Errorf("di: cannot activate %s: field %s: %w", t, dep.Name, err)
		}
		if v != nil {
			field.Set(reflect.ValueOf(v))
		}
	}

	for i, ok := range used {
		if !ok {
			return nil, fmt.Errorf("di: cannot activate %s: argument %d (%T) matches no injected field", t, i, args[i])
		}
	}

	if t.Kind() == reflect.Pointer {
		return ptr.Interface(), nil
	}
	return ptr.Elem().Interface(), nil
}

// matchArgument returns the first unused arg assignable to t.
// Nil args carry no type and never match.
func matchArgument(t reflect.Type, args []any, used []bool) (reflect.Value, bool) {
	for i, arg := range args {
		if used[i] || arg == nil {
			continue
		}
		if reflect.TypeOf(arg).AssignableTo(t) {
			used[i] = true
			return reflect.ValueOf(arg), true
		}
	}
	return reflect.Value{}, false
}
