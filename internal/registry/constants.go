package registry

import (
	"math"

	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

func constant(name string, value float64) *Definition {
	return &Definition{
		Name: name,
		Type: types.Lambda{Result: types.Number, Params: nil},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{
				Eval: func(ctx *runtime.Context) (runtime.Value, error) {
					return value, nil
				},
			}
		},
	}
}

func registerConstants(r *Registry) {
	r.register(constant("ln2", math.Ln2))
	r.register(constant("pi", math.Pi))
	r.register(constant("e", math.E))
}
