package filters

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrMissingArgument is returned when a required type or resolver is nil
	ErrMissingArgument = errors.New("argument cannot be nil")

	// ErrTypeMismatch is returned when a type does not implement the required interface
	ErrTypeMismatch = errors.New("type does not implement required interface")
)

// ArgumentError reports an invalid argument passed to a constructor or method.
// Error returns Message alone; Param names the offending argument.
type ArgumentError struct {
	Param   string
	Message string
	Err     error
}

func (e *ArgumentError) Error() string {
	return e.Message
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func missingArgument(param string) error {
	return &ArgumentError{
		Param:   param,
		Message: fmt.Sprintf("value cannot be nil (parameter '%s')", param),
		Err:     ErrMissingArgument,
	}
}

func typeMismatch(param string, t, required reflect.Type) error {
	return &ArgumentError{
		Param:   param,
		Message: fmt.Sprintf("The type '%s' must derive from '%s'.", TypeName(t), TypeName(required)),
		Err:     ErrTypeMismatch,
	}
}

// TypeName returns the fully qualified name of t: import path and type name,
// with a leading * for each pointer level. Unnamed types use their Go syntax.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer {
		return "*" + TypeName(t.Elem())
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
