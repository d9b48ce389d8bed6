package registry

import (
	"math"

	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

func numArgs(ctx *runtime.Context, thunks []runtime.Thunk) ([]float64, error) {
	out := make([]float64, len(thunks))
	for i, th := range thunks {
		v, err := th(ctx)
		if err != nil {
			return nil, err
		}
		f, ok := v.(float64)
		if !ok {
			return nil, runtime.NewError(runtime.TypeAssertion, "Expected a number, but found %s instead.", runtime.TypeOf(v))
		}
		out[i] = f
	}
	return out, nil
}

// variadicMath registers a reducing numeric operator (+ or *) that
// takes at least two Number arguments and any number more, per spec
// §4.4's "+ and * are variadic via NArgs".
func variadicMath(r *Registry, name string, identity float64, reduce func(acc, x float64) float64) {
	r.register(&Definition{
		Name: name,
		Type: types.Lambda{
			Result: types.Number,
			Params: []types.Type{types.Number, types.Number, types.NArgs{Types: []types.Type{types.Number}, N: types.Unbounded}},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				nums, err := numArgs(ctx, args)
				if err != nil {
					return nil, err
				}
				acc := identity
				for _, n := range nums {
					acc = reduce(acc, n)
				}
				return acc, nil
			}}
		},
	})
}

// binaryMath registers a fixed two-argument Number operator.
func binaryMath(r *Registry, name string, apply func(a, b float64) (float64, error)) {
	r.register(&Definition{
		Name: name,
		Type: types.Lambda{Result: types.Number, Params: []types.Type{types.Number, types.Number}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				nums, err := numArgs(ctx, args)
				if err != nil {
					return nil, err
				}
				return apply(nums[0], nums[1])
			}}
		},
	})
}

// unaryMath registers a fixed one-argument Number function.
func unaryMath(r *Registry, name string, apply func(a float64) float64) {
	r.register(&Definition{
		Name: name,
		Type: types.Lambda{Result: types.Number, Params: []types.Type{types.Number}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				nums, err := numArgs(ctx, args)
				if err != nil {
					return nil, err
				}
				return apply(nums[0]), nil
			}}
		},
	})
}

func registerMath(r *Registry) {
	variadicMath(r, "+", 0, func(acc, x float64) float64 { return acc + x })
	variadicMath(r, "*", 1, func(acc, x float64) float64 { return acc * x })

	binaryMath(r, "-", func(a, b float64) (float64, error) { return a - b, nil })
	binaryMath(r, "/", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, runtime.NewError(runtime.TypeAssertion, "division by zero")
		}
		return a / b, nil
	})
	binaryMath(r, "%", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, runtime.NewError(runtime.TypeAssertion, "division by zero")
		}
		return math.Mod(a, b), nil
	})
	binaryMath(r, "^", func(a, b float64) (float64, error) { return math.Pow(a, b), nil })

	unaryMath(r, "log10", math.Log10)
	unaryMath(r, "ln", math.Log)
	unaryMath(r, "log2", math.Log2)
	unaryMath(r, "sin", math.Sin)
	unaryMath(r, "cos", math.Cos)
	unaryMath(r, "tan", math.Tan)
	unaryMath(r, "asin", math.Asin)
	unaryMath(r, "acos", math.Acos)
	unaryMath(r, "atan", math.Atan)
}
