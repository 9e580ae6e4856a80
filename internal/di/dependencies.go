package di

import (
	"go/token"
	"reflect"
)

// InjectTag is the struct tag that marks a field as a dependency
const InjectTag = "inject"

// Dependency describes one injected field of a struct
type Dependency struct {
	Name  string
	Index int
	Type  reflect.Type
}

// Dependencies lists the injected fields of t, which may be a struct or a
// pointer to one. Any other kind has no dependencies.
func Dependencies(t reflect.Type) []Dependency {
	st := structType(t)
	if st == nil {
		return nil
	}

	var deps []Dependency
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if _, ok := f.Tag.Lookup(InjectTag); !ok {
			continue
		}
		deps = append(deps, Dependency{
			Name:  f.Name,
			Index: i,
			Type:  f.Type,
		})
	}
	return deps
}

// IsDefaultConstructible reports whether t can be built without a resolver:
// an exported, named non-interface type (or pointer to one) that declares no
// injected fields.
func IsDefaultConstructible(t reflect.Type) bool {
	base := valueType(t)
	if base == nil || base.Kind() == reflect.Interface || !token.IsExported(base.Name()) {
		return false
	}
	return len(Dependencies(base)) == 0
}

// New returns the zero value of t, allocating the value when t is a pointer.
// Callers check IsDefaultConstructible first.
func New(t reflect.Type) any {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.New(t).Elem().Interface()
}

// valueType is t, or the element type when t is a pointer
func valueType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func structType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	switch {
	case t.Kind() == reflect.Struct:
		return t
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return t.Elem()
	default:
		return nil
	}
}
