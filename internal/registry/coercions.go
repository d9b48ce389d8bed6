package registry

import (
	"fmt"
	"strconv"

	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

// coercion builds a lambda(T, Value) definition: T is bound by the
// checker from the call's expected result type, and eval converts the
// runtime Value argument to that primitive, or raises TypeAssertion.
func coercion(name string, convert func(v runtime.Value) (runtime.Value, error)) *Definition {
	return &Definition{
		Name: name,
		Type: types.Lambda{
			Result: types.NewTypeName("T"),
			Params: []types.Type{types.ValueType},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			arg := args[0]
			return CompileOutput{
				Eval: func(ctx *runtime.Context) (runtime.Value, error) {
					v, err := arg(ctx)
					if err != nil {
						return nil, err
					}
					return convert(v)
				},
			}
		},
	}
}

func registerCoercions(r *Registry) {
	r.register(coercion("string", func(v runtime.Value) (runtime.Value, error) {
		return stringify(v), nil
	}))
	r.register(coercion("number", coerceToNumber))
	r.register(coercion("boolean", func(v runtime.Value) (runtime.Value, error) {
		return isTruthy(v), nil
	}))
	r.register(coercion("object", func(v runtime.Value) (runtime.Value, error) {
		if o, ok := v.(runtime.Object); ok {
			return o, nil
		}
		if m, ok := v.(map[string]runtime.Value); ok {
			return runtime.Object{Fields: m}, nil
		}
		return nil, runtime.NewError(runtime.TypeAssertion, "Expected value to be of type Object, but found %s instead.", runtime.TypeOf(v))
	}))
	r.register(coercion("json_array", func(v runtime.Value) (runtime.Value, error) {
		if c, ok := v.(runtime.Container); ok {
			return c, nil
		}
		return nil, runtime.NewError(runtime.TypeAssertion, "Expected value to be an array, but found %s instead.", runtime.TypeOf(v))
	}))
}

func coerceToNumber(v runtime.Value) (runtime.Value, error) {
	switch vv := v.(type) {
	case float64:
		return vv, nil
	case string:
		f, err := strconv.ParseFloat(vv, 64)
		if err != nil {
			return nil, runtime.NewError(runtime.TypeAssertion, "Could not convert %q to number.", vv)
		}
		return f, nil
	case bool:
		if vv {
			return 1.0, nil
		}
		return 0.0, nil
	default:
		return nil, runtime.NewError(runtime.TypeAssertion, "Expected value to be convertible to number, but found %s instead.", runtime.TypeOf(v))
	}
}

// isTruthy implements the same coercion a map style engine's
// to-boolean uses: 0, "", false and null are false; everything else,
// including non-empty containers, is true.
func isTruthy(v runtime.Value) bool {
	switch vv := v.(type) {
	case nil:
		return false
	case bool:
		return vv
	case float64:
		return vv != 0
	case string:
		return vv != ""
	default:
		return true
	}
}

func stringify(v runtime.Value) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case bool:
		if vv {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(vv, 'g', -1, 64)
	case string:
		return vv
	case runtime.Color:
		return fmt.Sprintf("rgba(%g,%g,%g,%g)", vv.RGBA[0], vv.RGBA[1], vv.RGBA[2], vv.RGBA[3])
	case runtime.Object:
		return fmt.Sprintf("%v", vv.Fields)
	case runtime.Container:
		return fmt.Sprintf("%v", vv.Items)
	default:
		return fmt.Sprintf("%v", vv)
	}
}
