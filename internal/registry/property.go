package registry

import (
	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

func boolPtr(b bool) *bool { return &b }

// optionalObjectGroup lets get/has accept either (key) or (key, obj):
// NArgs repeats the single-element tuple [Object] zero or one time
// after the mandatory leading String, per spec §4.3 step 2's
// parameter-expansion arithmetic.
func optionalObjectGroup() types.Type {
	return types.NArgs{Types: []types.Type{types.Object}, N: 1}
}

func registerProperty(r *Registry) {
	r.register(&Definition{
		Name: "get",
		// Result is a bare generic T, not the fixed Value variant: get()
		// must type-check directly against whatever concrete type the
		// call site expects (spec §8 scenario 2 checks this), the same
		// as the coercion functions in coercions.go. Only when nothing
		// pins T down does it resolve to Value via match()'s own fixed
		// ValueType input parameter.
		Type: types.Lambda{Result: types.NewTypeName("T"), Params: []types.Type{types.String, optionalObjectGroup()}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			explicitObj := len(args) == 2
			out := CompileOutput{
				Eval: func(ctx *runtime.Context) (runtime.Value, error) {
					key, err := args[0](ctx)
					if err != nil {
						return nil, err
					}
					fields, err := resolveFields(ctx, args, explicitObj)
					if err != nil {
						return nil, err
					}
					v, ok := fields[key.(string)]
					if !ok {
						return nil, runtime.NewError(runtime.PropertyNotFound, "Property %q not found in feature.properties", key)
					}
					return v, nil
				},
			}
			if !explicitObj {
				out.FeatureConstant = boolPtr(false)
			}
			return out
		},
	})

	r.register(&Definition{
		Name: "has",
		Type: types.Lambda{Result: types.Boolean, Params: []types.Type{types.String, optionalObjectGroup()}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			explicitObj := len(args) == 2
			out := CompileOutput{
				Eval: func(ctx *runtime.Context) (runtime.Value, error) {
					key, err := args[0](ctx)
					if err != nil {
						return nil, err
					}
					fields, err := resolveFields(ctx, args, explicitObj)
					if err != nil {
						return nil, err
					}
					_, ok := fields[key.(string)]
					return ok, nil
				},
			}
			if !explicitObj {
				out.FeatureConstant = boolPtr(false)
			}
			return out
		},
	})

	r.register(&Definition{
		Name: "at",
		Type: types.Lambda{
			Result: types.NewTypeName("T"),
			Params: []types.Type{
				types.Number,
				types.NewVariant(types.Vector{Item: types.NewTypeName("T")}, types.AnyArray{Item: types.NewTypeName("T")}),
			},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				idxV, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				containerV, err := args[1](ctx)
				if err != nil {
					return nil, err
				}
				container, ok := containerV.(runtime.Container)
				if !ok {
					return nil, runtime.NewError(runtime.TypeAssertion, "Expected an array, but found %s instead.", runtime.TypeOf(containerV))
				}
				idx := int(idxV.(float64))
				if idx < 0 || idx >= len(container.Items) {
					return nil, runtime.NewError(runtime.IndexOutOfBounds, "Array index %d is out of bounds (length %d).", idx, len(container.Items))
				}
				return container.Items[idx], nil
			}}
		},
	})

	r.register(&Definition{
		Name: "length",
		Type: types.Lambda{
			Result: types.Number,
			Params: []types.Type{types.NewVariant(types.Vector{Item: types.NewTypeName("T")}, types.String)},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				switch vv := v.(type) {
				case string:
					return float64(len([]rune(vv))), nil
				case runtime.Container:
					return float64(len(vv.Items)), nil
				default:
					return nil, runtime.NewError(runtime.TypeAssertion, "Expected a string or array, but found %s instead.", runtime.TypeOf(v))
				}
			}}
		},
	})

	r.register(&Definition{
		Name: "typeof",
		Type: types.Lambda{Result: types.String, Params: []types.Type{types.ValueType}},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				return runtime.TypeOf(v), nil
			}}
		},
	})

	r.register(&Definition{
		Name: "properties",
		Type: types.Lambda{Result: types.Object, Params: nil},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{
				Eval: func(ctx *runtime.Context) (runtime.Value, error) {
					return runtime.Object{Fields: ctx.Feature.Properties}, nil
				},
				FeatureConstant: boolPtr(false),
			}
		},
	})

	r.register(&Definition{
		Name: "geometry_type",
		Type: types.Lambda{Result: types.String, Params: nil},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{
				Eval: func(ctx *runtime.Context) (runtime.Value, error) {
					if !ctx.Feature.HasGeometry {
						return nil, nil
					}
					return ctx.Feature.GeometryType, nil
				},
				FeatureConstant: boolPtr(false),
			}
		},
	})

	r.register(&Definition{
		Name: "id",
		Type: types.Lambda{Result: types.NewTypeName("T"), Params: nil},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{
				Eval: func(ctx *runtime.Context) (runtime.Value, error) {
					if !ctx.Feature.HasID {
						return nil, nil
					}
					return ctx.Feature.ID, nil
				},
				FeatureConstant: boolPtr(false),
			}
		},
	})

	r.register(&Definition{
		Name: "zoom",
		Type: types.Lambda{Result: types.Number, Params: nil},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{
				Eval: func(ctx *runtime.Context) (runtime.Value, error) {
					return ctx.Zoom, nil
				},
				ZoomConstant: boolPtr(false),
			}
		},
	})
}

// resolveFields returns the property map get/has should read from: the
// explicit second argument when present, else the feature's own
// properties. A non-Object explicit argument, or an absent feature
// object, is a PropertyNotFound per spec §7's null-receiver rule.
func resolveFields(ctx *runtime.Context, args []runtime.Thunk, explicitObj bool) (map[string]runtime.Value, error) {
	if !explicitObj {
		if ctx.Feature.Properties == nil {
			return nil, runtime.NewError(runtime.PropertyNotFound, "feature has no properties")
		}
		return ctx.Feature.Properties, nil
	}
	objV, err := args[1](ctx)
	if err != nil {
		return nil, err
	}
	obj, ok := objV.(runtime.Object)
	if !ok {
		return nil, runtime.NewError(runtime.PropertyNotFound, "cannot read property of %s", runtime.TypeOf(objV))
	}
	return obj.Fields, nil
}
