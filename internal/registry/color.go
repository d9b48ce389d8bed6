package registry

import (
	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

// registerColor wires the color() parsing entry point and the rgb/rgba
// constructors against the caller-supplied ParseColor collaborator;
// spec §1 keeps the actual CSS color grammar out of this module's
// scope, so an unset deps.ParseColor degrades to a ColorParse error
// rather than a panic.
func registerColor(r *Registry, deps Dependencies) {
	r.register(&Definition{
		Name: "color",
		Type: types.Lambda{Result: types.Color, Params: []types.Type{types.String}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				s := v.(string)
				if deps.ParseColor == nil {
					return nil, runtime.NewError(runtime.ColorParse, "no color parser configured")
				}
				red, g, b, a, ok := deps.ParseColor(s)
				if !ok {
					return nil, runtime.NewError(runtime.ColorParse, "Could not parse color from value %q", s)
				}
				return runtime.Color{RGBA: [4]float64{red, g, b, a}}, nil
			}}
		},
	})

	r.register(&Definition{
		Name: "rgb",
		Type: types.Lambda{Result: types.Color, Params: []types.Type{types.Number, types.Number, types.Number}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				nums, err := numArgs(ctx, args)
				if err != nil {
					return nil, err
				}
				return runtime.Color{RGBA: [4]float64{nums[0], nums[1], nums[2], 1}}, nil
			}}
		},
	})

	r.register(&Definition{
		Name: "rgba",
		Type: types.Lambda{Result: types.Color, Params: []types.Type{types.Number, types.Number, types.Number, types.Number}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				nums, err := numArgs(ctx, args)
				if err != nil {
					return nil, err
				}
				return runtime.Color{RGBA: [4]float64{nums[0], nums[1], nums[2], nums[3]}}, nil
			}}
		},
	})

	r.register(&Definition{
		Name: "color_to_array",
		Type: types.Lambda{Result: types.Array{Item: types.Number, N: 4}, Params: []types.Type{types.Color}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				c, ok := v.(runtime.Color)
				if !ok {
					return nil, runtime.NewError(runtime.TypeAssertion, "Expected a color, but found %s instead.", runtime.TypeOf(v))
				}
				items := make([]runtime.Value, 4)
				for i, comp := range c.RGBA {
					items[i] = comp
				}
				return runtime.Container{Kind: runtime.ArrayKind, ItemTypeName: "Number", N: 4, Items: items}, nil
			}}
		},
	})
}
