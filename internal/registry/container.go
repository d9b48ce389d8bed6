package registry

import (
	"strings"

	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/config"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

// registerContainer wires array, vector, and coalesce. array's declared
// signature here is a placeholder: the parser overrides it per call
// site to lambda(Array(T, n), NArgs(T, n)) so the declared output
// length matches the literal element count, per spec §4.2 — this
// Definition only supplies the evaluation rule.
func registerContainer(r *Registry) {
	r.register(&Definition{
		Name: "array",
		Type: types.Lambda{
			Result: types.Array{Item: types.NewTypeName("T"), N: 0},
			Params: []types.Type{types.NArgs{Types: []types.Type{types.NewTypeName("T")}, N: types.Unbounded}},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			itemName := itemTypeName(call.Type.Result)
			n := len(args)
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				items := make([]runtime.Value, n)
				for i, th := range args {
					v, err := th(ctx)
					if err != nil {
						return nil, err
					}
					items[i] = v
				}
				return runtime.Container{Kind: runtime.ArrayKind, ItemTypeName: itemName, N: n, Items: items}, nil
			}}
		},
	})

	r.register(&Definition{
		Name: "vector",
		Type: types.Lambda{
			Result: types.Vector{Item: types.NewTypeName("T")},
			Params: []types.Type{types.NArgs{Types: []types.Type{types.NewTypeName("T")}, N: types.Unbounded}},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			itemName := itemTypeName(call.Type.Result)
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				items := make([]runtime.Value, len(args))
				for i, th := range args {
					v, err := th(ctx)
					if err != nil {
						return nil, err
					}
					items[i] = v
				}
				return runtime.Container{Kind: runtime.VectorKind, ItemTypeName: itemName, Items: items}, nil
			}}
		},
	})

	r.register(&Definition{
		Name: "coalesce",
		Type: types.Lambda{
			Result: types.NewTypeName("T"),
			Params: []types.Type{types.NewTypeName("T"), types.NArgs{Types: []types.Type{types.NewTypeName("T")}, N: types.Unbounded}},
		},
		Compile: func(args []runtime.Thunk, call *ast.Call) CompileOutput {
			return CompileOutput{Eval: func(ctx *runtime.Context) (runtime.Value, error) {
				for i, th := range args {
					v, err := th(ctx)
					last := i == len(args)-1
					if err != nil {
						if last {
							return nil, err
						}
						continue
					}
					if !runtime.IsNull(v) || last {
						return v, nil
					}
				}
				return nil, nil
			}}
		},
	})
}

// itemTypeName extracts the element type's display name from a
// Vector/Array result type, for tagging the runtime Container that
// array/vector build: the titlecased primitive name ("Number",
// "String"), or "Value" for any non-primitive element type.
func itemTypeName(t types.Type) string {
	var item types.Type
	switch tt := t.(type) {
	case types.Vector:
		item = tt.Item
	case types.Array:
		item = tt.Item
	}
	if p, ok := item.(types.Primitive); ok && p != "" {
		name := p.Name()
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return config.ValueTypeName
}
