package content

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Match evaluates the CEL condition cond against store.
// An empty condition always matches.
func Match(cond string, store map[string]any) (bool, error) {
	if cond == "" {
		return true, nil
	}
	env, err := createCELEnv(store)
	if err != nil {
		return false, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(cond)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("condition compilation error for '%s': %w", cond, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("condition program creation error for '%s': %w", cond, err)
	}
	out, _, err := prg.Eval(store)
	if err != nil {
		return false, fmt.Errorf("condition evaluation error for '%s': %w", cond, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("condition '%s' does not evaluate to bool: %v", cond, out.Value())
	}
	return b, nil
}

// createCELEnv creates a CEL environment with all variables from the store.
func createCELEnv(store map[string]any) (*cel.Env, error) {
	var options []cel.EnvOption
	for key, value := range store {
		options = append(options, cel.Variable(key, inferCELType(value)))
	}
	return cel.NewEnv(options...)
}

// inferCELType infers the CEL type from a Go value.
func inferCELType(value any) *cel.Type {
	switch value.(type) {
	case string:
		return cel.StringType
	case int, int32, int64:
		return cel.IntType
	case float32, float64:
		return cel.DoubleType
	case bool:
		return cel.BoolType
	case []string:
		return cel.ListType(cel.StringType)
	case []any:
		return cel.ListType(cel.AnyType)
	default:
		return cel.AnyType
	}
}
