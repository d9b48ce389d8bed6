package registry

import (
	"fmt"

	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/config"
	"github.com/tilepaint/exprlang/internal/curve"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

func registerControl(r *Registry, deps Dependencies) {
	registerCase(r)
	registerMatch(r)
	registerCurve(r, deps)
	registerInterpolationMarkers(r)
}

// registerCase wires the short-circuit cond?val:cond?val:...:default
// chain. The trailing NArgs(Boolean, T) plus a final mandatory T keeps
// the total argument count odd, per spec §9's open question: the
// signature rejects even-argument forms at check time rather than
// relying on a runtime assertion.
func registerCase(r *Registry) {
	r.register(&Definition{
		Name: "case",
		Type: types.Lambda{
			Result: types.NewTypeName("T"),
			Params: []types.Type{
				types.Boolean, types.NewTypeName("T"),
				types.NArgs{Types: []types.Type{types.Boolean, types.NewTypeName("T")}, N: types.Unbounded},
				types.NewTypeName("T"),
			},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			fallback := args[len(args)-1]
			pairs := args[:len(args)-1]
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				for i := 0; i+1 < len(pairs); i += 2 {
					cv, err := pairs[i](ctx)
					if err != nil {
						return nil, err
					}
					if cv.(bool) {
						return pairs[i+1](ctx)
					}
				}
				return fallback(ctx)
			}}
		},
	})
}

// registerMatch builds the "<TypeName>-<literalValue>" lookup table
// match() uses, from the label groups the parser stashed in
// call.MatchInputs — see spec §4.4.
func registerMatch(r *Registry) {
	r.register(&Definition{
		Name: "match",
		Type: types.Lambda{
			Result: types.NewTypeName("T"),
			Params: []types.Type{
				types.ValueType,
				types.NewTypeName("T"),
				types.NArgs{Types: []types.Type{types.NewTypeName("T")}, N: types.Unbounded},
				types.NewTypeName("T"),
			},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			input := args[0]
			otherwise := args[len(args)-1]
			outputs := args[1 : len(args)-1]

			lookup := make(map[string]int, len(call.MatchInputs))
			for outputIdx, group := range call.MatchInputs {
				for _, lit := range group {
					key := matchKey(runtime.TypeOf(lit.Value), lit.Value)
					lookup[key] = outputIdx
				}
			}

			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := input(ctx)
				if err != nil {
					return nil, err
				}
				key := matchKey(runtime.TypeOf(v), v)
				if idx, ok := lookup[key]; ok && idx < len(outputs) {
					return outputs[idx](ctx)
				}
				return otherwise(ctx)
			}}
		},
	})
}

func matchKey(typeName string, value interface{}) string {
	return fmt.Sprintf("%s-%v", typeName, value)
}

func registerInterpolationMarkers(r *Registry) {
	r.register(&Definition{
		Name: config.StepInterpolation,
		Type: types.Lambda{Result: types.InterpolationType, Params: nil},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				return config.StepInterpolation, nil
			}}
		},
	})
	r.register(&Definition{
		Name: config.LinearInterpolation,
		Type: types.Lambda{Result: types.InterpolationType, Params: nil},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				return config.LinearInterpolation, nil
			}}
		},
	})
	r.register(&Definition{
		Name: config.ExponentialInterpolation,
		Type: types.Lambda{Result: types.InterpolationType, Params: []types.Type{types.Number}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				base, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				return fmt.Sprintf("%s:%g", config.ExponentialInterpolation, base.(float64)), nil
			}}
		},
	})
}

// registerCurve validates its stop literals and interpolation marker at
// compile time (spec §4.6), then closes over the curve package for
// per-evaluation binary search + interpolation.
func registerCurve(r *Registry, deps Dependencies) {
	r.register(&Definition{
		Name: "curve",
		Type: types.Lambda{
			Result: types.NewTypeName("T"),
			Params: []types.Type{
				types.InterpolationType,
				types.Number,
				types.NArgs{Types: []types.Type{types.Number, types.NewTypeName("T")}, N: types.Unbounded},
			},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			interpArg := call.Arguments[0]
			mode, base, err := parseInterpolationLiteral(interpArg)
			if err != nil {
				return CompileOutput{Errors: []error{err}}
			}

			stopArgs := call.Arguments[2:]
			var stopInputs []float64
			var stopErrs []error
			for i := 0; i < len(stopArgs); i += 2 {
				lit, ok := stopArgs[i].(*ast.Literal)
				var f float64
				var numOK bool
				if ok {
					f, numOK = lit.Value.(float64)
				}
				if !ok || !numOK {
					stopErrs = append(stopErrs, fmt.Errorf("Input/output pairs for \"curve\" expressions must be defined using literal numeric values (not computed expressions) for the input values."))
					continue
				}
				if len(stopInputs) > 0 && f <= stopInputs[len(stopInputs)-1] {
					stopErrs = append(stopErrs, fmt.Errorf("Input/output pairs for \"curve\" expressions must be arranged with input values in strictly ascending order."))
				}
				stopInputs = append(stopInputs, f)
			}
			if mode != curve.Step {
				if !interpolatableResult(call.Type.Result) {
					stopErrs = append(stopErrs, fmt.Errorf("The output type of \"curve\" must be interpolatable when the interpolation is not \"step\"."))
				}
			}
			if len(stopErrs) > 0 {
				return CompileOutput{Errors: stopErrs}
			}

			thunkStops := args[2:]
			return CompileOutput{
				Eval: func(ctx *runtime.Context) (runtime.Value, error) {
					x, err := args[1](ctx)
					if err != nil {
						return nil, err
					}
					xf := x.(float64)
					lo, t, exact := curve.Index(mode, base, stopInputs, xf)
					outIdx := 1 + 2*lo
					outV, err := thunkStops[outIdx](ctx)
					if err != nil {
						return nil, err
					}
					if exact || mode == curve.Step {
						return outV, nil
					}
					hiV, err := thunkStops[outIdx+2](ctx)
					if err != nil {
						return nil, err
					}
					return interpolateValue(outV, hiV, t, deps)
				},
			}
		},
	})
}

func parseInterpolationLiteral(e ast.Expression) (curve.Interpolation, float64, error) {
	call, ok := e.(*ast.Call)
	if !ok {
		return "", 0, fmt.Errorf("curve's interpolation argument must be step(), linear(), or exponential(base)")
	}
	switch call.Name {
	case config.StepInterpolation:
		return curve.Step, 1, nil
	case config.LinearInterpolation:
		return curve.Linear, 1, nil
	case config.ExponentialInterpolation:
		lit, ok := call.Arguments[0].(*ast.Literal)
		var f float64
		var numOK bool
		if ok {
			f, numOK = lit.Value.(float64)
		}
		if !ok || !numOK {
			return "", 0, fmt.Errorf("\"exponential\"'s base must be a literal number.")
		}
		return curve.Exponential, f, nil
	default:
		return "", 0, fmt.Errorf("unknown curve interpolation %q", call.Name)
	}
}

func interpolatableResult(t types.Type) bool {
	switch tt := t.(type) {
	case types.Primitive:
		return tt == types.Number || tt == types.Color
	case types.Array:
		return tt.Item == types.Number
	default:
		return false
	}
}

func interpolateValue(a, b runtime.Value, t float64, deps Dependencies) (runtime.Value, error) {
	switch av := a.(type) {
	case float64:
		if deps.InterpolateNumber == nil {
			return av + t*(b.(float64)-av), nil
		}
		return deps.InterpolateNumber(av, b.(float64), t), nil
	case runtime.Color:
		bv := b.(runtime.Color)
		if deps.InterpolateColor == nil {
			var out runtime.Color
			for i := range av.RGBA {
				out.RGBA[i] = av.RGBA[i] + t*(bv.RGBA[i]-av.RGBA[i])
			}
			return out, nil
		}
		return deps.InterpolateColor(av, bv, t), nil
	case runtime.Container:
		bv := b.(runtime.Container)
		af := toFloats(av.Items)
		bf := toFloats(bv.Items)
		var out []float64
		if deps.InterpolateArray == nil {
			out = make([]float64, len(af))
			for i := range af {
				out[i] = af[i] + t*(bf[i]-af[i])
			}
		} else {
			out = deps.InterpolateArray(af, bf, t)
		}
		items := make([]runtime.Value, len(out))
		for i, f := range out {
			items[i] = f
		}
		return runtime.Container{Kind: runtime.ArrayKind, ItemTypeName: "Number", N: len(items), Items: items}, nil
	default:
		return nil, runtime.NewError(runtime.TypeAssertion, "curve output type %s is not interpolatable", runtime.TypeOf(a))
	}
}

func toFloats(vs []runtime.Value) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.(float64)
	}
	return out
}
