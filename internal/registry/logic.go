package registry

import (
	"reflect"

	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

func equality(r *Registry, name string, want bool) {
	r.register(&Definition{
		Name: name,
		Type: types.Lambda{Result: types.Boolean, Params: []types.Type{types.NewTypeName("T"), types.NewTypeName("T")}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				a, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				b, err := args[1](ctx)
				if err != nil {
					return nil, err
				}
				eq := reflect.DeepEqual(a, b)
				return eq == want, nil
			}}
		},
	})
}

func comparison(r *Registry, name string, cmp func(c int) bool) {
	r.register(&Definition{
		Name: name,
		Type: types.Lambda{Result: types.Boolean, Params: []types.Type{types.NewTypeName("T"), types.NewTypeName("T")}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				a, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				b, err := args[1](ctx)
				if err != nil {
					return nil, err
				}
				c, err := orderCompare(a, b)
				if err != nil {
					return nil, err
				}
				return cmp(c), nil
			}}
		},
	})
}

// orderCompare returns -1/0/1 for ordered operands (both numbers or
// both strings); anything else is a TypeAssertion failure, since
// ordering colors, objects, or arrays is not defined by this language.
func orderCompare(a, b runtime.Value) (int, error) {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, runtime.NewError(runtime.TypeAssertion, "cannot compare number with %s", runtime.TypeOf(b))
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, runtime.NewError(runtime.TypeAssertion, "cannot compare string with %s", runtime.TypeOf(b))
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, runtime.NewError(runtime.TypeAssertion, "%s is not orderable", runtime.TypeOf(a))
	}
}

func registerLogic(r *Registry) {
	equality(r, "==", true)
	equality(r, "!=", false)
	comparison(r, ">", func(c int) bool { return c > 0 })
	comparison(r, "<", func(c int) bool { return c < 0 })
	comparison(r, ">=", func(c int) bool { return c >= 0 })
	comparison(r, "<=", func(c int) bool { return c <= 0 })

	r.register(&Definition{
		Name: "!",
		Type: types.Lambda{Result: types.Boolean, Params: []types.Type{types.Boolean}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				return !v.(bool), nil
			}}
		},
	})

	registerVariadicBoolean(r, "&&", true, false)
	registerVariadicBoolean(r, "||", false, true)
}

// registerVariadicBoolean registers && (shortCircuitOn=false,
// identity=true) and || (shortCircuitOn=true, identity=false): the
// operands are evaluated left to right and short-circuit as soon as one
// equals shortCircuitOn.
func registerVariadicBoolean(r *Registry, name string, identity, shortCircuitOn bool) {
	r.register(&Definition{
		Name: name,
		Type: types.Lambda{Result: types.Boolean, Params: []types.Type{types.NArgs{Types: []types.Type{types.Boolean}, N: types.Unbounded}}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				result := identity
				for _, th := range args {
					v, err := th(ctx)
					if err != nil {
						return nil, err
					}
					b := v.(bool)
					if b == shortCircuitOn {
						return shortCircuitOn, nil
					}
					result = b
				}
				return result, nil
			}}
		},
	})
}
