// Package evaluator walks a fully type-checked AST and produces a
// Callable: a (zoom, feature) -> value function. It recursively
// compiles each Call's arguments into runtime.Thunks, invokes the
// registry's Compile rule to build that node's own evaluation step, and
// conjoins the feature-constant/zoom-constant purity flags bottom-up,
// per spec §4.5.
package evaluator

import (
	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/registry"
	"github.com/tilepaint/exprlang/internal/runtime"
)

// Callable is the compiled form of a type-checked expression: given a
// zoom and a feature, it returns the expression's unwrapped value. A
// null runtime result surfaces as a Go nil, matching spec §6's
// "undefined" top-level convention.
type Callable func(zoom float64, feature runtime.Feature) (interface{}, error)

// Compiled bundles a Callable with the purity flags spec §6's compile()
// result exposes.
type Compiled struct {
	Call             Callable
	IsFeatureConstant bool
	IsZoomConstant    bool
}

// node is the evaluator's internal compiled-node representation: an
// Eval step plus this subtree's own purity flags, already conjoined
// with its children.
type node struct {
	eval            runtime.Thunk
	featureConstant bool
	zoomConstant    bool
}

// Compile walks e (already type-checked) and produces a Compiled
// evaluator. reg resolves each Call's name to its compile rule; e is
// assumed well-formed (the output of a successful checker.Check).
func Compile(e ast.Expression, reg *registry.Registry) (*Compiled, error) {
	n, err := compileNode(e, reg)
	if err != nil {
		return nil, err
	}
	return &Compiled{
		Call: func(zoom float64, feature runtime.Feature) (interface{}, error) {
			ctx := &runtime.Context{Zoom: zoom, Feature: feature}
			v, err := n.eval(ctx)
			if err != nil {
				return nil, err
			}
			return runtime.Unwrap(v), nil
		},
		IsFeatureConstant: n.featureConstant,
		IsZoomConstant:    n.zoomConstant,
	}, nil
}

func compileNode(e ast.Expression, reg *registry.Registry) (*node, error) {
	switch v := e.(type) {
	case *ast.Literal:
		value := v.Value
		return &node{
			eval:            func(ctx *runtime.Context) (runtime.Value, error) { return value, nil },
			featureConstant: true,
			zoomConstant:    true,
		}, nil
	case *ast.Call:
		return compileCall(v, reg)
	default:
		return nil, runtime.NewError(runtime.UnknownRuntimeType, "unknown expression node")
	}
}

func compileCall(call *ast.Call, reg *registry.Registry) (*node, error) {
	def, ok := reg.Lookup(call.Name)
	if !ok {
		return nil, runtime.NewError(runtime.UnknownRuntimeType, "unknown function %s", call.Name)
	}

	childNodes := make([]*node, len(call.Arguments))
	thunks := make([]runtime.Thunk, len(call.Arguments))
	featureConstant := true
	zoomConstant := true
	for i, arg := range call.Arguments {
		child, err := compileNode(arg, reg)
		if err != nil {
			return nil, err
		}
		childNodes[i] = child
		thunks[i] = child.eval
		featureConstant = featureConstant && child.featureConstant
		zoomConstant = zoomConstant && child.zoomConstant
	}

	out := def.Compile(thunks, call)
	if len(out.Errors) > 0 {
		return nil, out.Errors[0]
	}
	if out.FeatureConstant != nil {
		featureConstant = featureConstant && *out.FeatureConstant
	}
	if out.ZoomConstant != nil {
		zoomConstant = zoomConstant && *out.ZoomConstant
	}

	return &node{eval: out.Eval, featureConstant: featureConstant, zoomConstant: zoomConstant}, nil
}
