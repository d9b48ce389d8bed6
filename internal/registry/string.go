package registry

import (
	"strings"

	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

func stringArgs(ctx *runtime.Context, thunks []runtime.Thunk) ([]string, error) {
	out := make([]string, len(thunks))
	for i, th := range thunks {
		v, err := th(ctx)
		if err != nil {
			return nil, err
		}
		s, ok := v.(string)
		if !ok {
			return nil, runtime.NewError(runtime.TypeAssertion, "Expected a string, but found %s instead.", runtime.TypeOf(v))
		}
		out[i] = s
	}
	return out, nil
}

func registerStringOps(r *Registry) {
	r.register(&Definition{
		Name: "upcase",
		Type: types.Lambda{Result: types.String, Params: []types.Type{types.String}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				ss, err := stringArgs(ctx, args)
				if err != nil {
					return nil, err
				}
				return strings.ToUpper(ss[0]), nil
			}}
		},
	})

	r.register(&Definition{
		Name: "downcase",
		Type: types.Lambda{Result: types.String, Params: []types.Type{types.String}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				ss, err := stringArgs(ctx, args)
				if err != nil {
					return nil, err
				}
				return strings.ToLower(ss[0]), nil
			}}
		},
	})

	r.register(&Definition{
		Name: "concat",
		Type: types.Lambda{
			Result: types.String,
			Params: []types.Type{types.ValueType, types.ValueType, types.NArgs{Types: []types.Type{types.ValueType}, N: types.Unbounded}},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				var b strings.Builder
				for _, th := range args {
					v, err := th(ctx)
					if err != nil {
						return nil, err
					}
					b.WriteString(stringify(v))
				}
				return b.String(), nil
			}}
		},
	})
}
