// Package cel evaluates the `when` conditions attached to configured filters.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// TypeLookup reports whether a filter type name is registered.
// registry.Types satisfies it.
type TypeLookup interface {
	Has(name string) bool
}

// ConditionLibrary creates a CEL library for filter conditions.
//
// This provides compile-time declarations for:
//   - vars - the configured variables as a map
//   - registered(name) - whether a filter type name is registered
//
// Pass nil for lookup to compile without a registry; registered() is then always false.
//
// Example expressions:
//   - vars.env == "prod"
//   - has(vars.tracing) && vars.tracing
//   - registered("request_id") && vars.region in ["eu", "us"]
func ConditionLibrary(lookup TypeLookup) cel.EnvOption {
	return cel.Lib(&conditionLib{types: lookup})
}

type conditionLib struct {
	types TypeLookup
}

func (lib *conditionLib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		cel.Variable("vars", cel.MapType(cel.StringType, cel.DynType)),
		cel.Function("registered",
			cel.Overload("registered_string",
				[]*cel.Type{cel.StringType},
				cel.BoolType,
				cel.UnaryBinding(lib.registered),
			),
		),
	}
}

func (lib *conditionLib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

func (lib *conditionLib) registered(arg ref.Val) ref.Val {
	name, ok := arg.Value().(string)
	if !ok {
		return types.NewErr("registered argument must be a string")
	}
	if lib.types == nil {
		return types.False
	}
	return types.Bool(lib.types.Has(name))
}

// Condition is a compiled boolean CEL expression
type Condition struct {
	program cel.Program
	script  string
}

// NewCondition compiles script, which must evaluate to a bool
func NewCondition(script string, typeLookup TypeLookup) (*Condition, error) {
	if script == "" {
		return nil, fmt.Errorf("CEL condition cannot be empty")
	}

	env, err := cel.NewEnv(ConditionLibrary(typeLookup))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(script)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile CEL condition %q: %w", script, issues.Err())
	}

	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("CEL condition %q must evaluate to bool, got %s", script, out)
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &Condition{
		program: program,
		script:  script,
	}, nil
}

// Eval evaluates the condition against vars
func (c *Condition) Eval(vars map[string]any) (bool, error) {
	if vars == nil {
		vars = map[string]any{}
	}

	result, _, err := c.program.Eval(map[string]any{
		"vars": vars,
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate CEL condition %q: %w", c.script, err)
	}

	if result.Type() != types.BoolType {
		return false, fmt.Errorf("CEL condition %q evaluated to %s, not bool", c.script, result.Type())
	}
	return result.Value().(bool), nil
}

// Script returns the source of the condition
func (c *Condition) Script() string {
	return c.script
}
