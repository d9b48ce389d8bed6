// Package style is the embeddable public surface of the expression
// engine: Compile turns a JSON-decoded style expression into a callable
// (zoom, feature) -> value function, per spec §6's top-level API.
package style

import (
	"encoding/json"

	"github.com/tilepaint/exprlang/internal/checker"
	"github.com/tilepaint/exprlang/internal/evaluator"
	"github.com/tilepaint/exprlang/internal/parser"
	"github.com/tilepaint/exprlang/internal/registry"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

// Callable is the compiled evaluator produced by Compile: call it with
// a zoom level and a feature to get the expression's value.
type Callable = evaluator.Callable

// Feature is the per-call feature argument.
type Feature = runtime.Feature

// Type re-exports the type algebra so callers can name an expected
// result type (types.Number, types.String, ...) without importing an
// internal package directly.
type Type = types.Type

// Error is one located compile failure: Key is the expression's
// dot-joined JSON path, Message is human-readable.
type Error struct {
	Key     string
	Message string
}

// Result is Compile's return value. On success Errors is empty and
// Value/IsFeatureConstant/IsZoomConstant/ResultType are populated; on
// failure only Errors is populated.
type Result struct {
	Value             Callable
	IsFeatureConstant bool
	IsZoomConstant    bool
	ResultType        Type
	Errors            []Error
}

// Engine owns one Registry built from a fixed set of Dependencies.
// Callers construct one Engine per process (or per worker) and reuse it
// across every Compile call, since building the registry is pure setup
// work spec §4.4 expects to happen once.
type Engine struct {
	registry *registry.Registry
}

// Primitive result types, re-exported for callers that want to name an
// expected type without importing internal/types directly.
var (
	Null    Type = types.Null
	Number  Type = types.Number
	String  Type = types.String
	Boolean Type = types.Boolean
	Color   Type = types.Color
	Object  Type = types.Object
)

// AnyValue is the recursive Null|Number|String|Boolean|Color|Object|
// Vector<Value> variant: pass it as Compile's expectedType when the
// caller doesn't know (or care about) an expression's result type ahead
// of time.
func AnyValue() Type { return types.ValueType }

// Dependencies are the external collaborators spec §1 leaves out of
// this core: color parsing and the three interpolate.* routines. A
// zero Dependencies still builds a usable Engine; color() and
// non-step curve() interpolation fall back to an identity linear blend
// or a ColorParse runtime error rather than panicking.
type Dependencies = registry.Dependencies

func NewEngine(deps Dependencies) *Engine {
	return &Engine{registry: registry.New(deps)}
}

// Compile parses, type-checks, and compiles jsonExpr (already decoded
// by encoding/json, e.g. via json.Unmarshal into `interface{}`) against
// expectedType.
func (e *Engine) Compile(jsonExpr interface{}, expectedType Type) Result {
	tree, parseErrs := parser.New(e.registry).Parse(jsonExpr, nil)
	if len(parseErrs) > 0 {
		return Result{Errors: convertParseErrors(parseErrs)}
	}

	checked, checkErrs := checker.Check(expectedType, tree)
	if len(checkErrs) > 0 {
		return Result{Errors: convertCheckErrors(checkErrs)}
	}

	compiled, err := evaluator.Compile(checked, e.registry)
	if err != nil {
		return Result{Errors: []Error{{Key: checked.ExprKey(), Message: err.Error()}}}
	}

	return Result{
		Value:             compiled.Call,
		IsFeatureConstant: compiled.IsFeatureConstant,
		IsZoomConstant:    compiled.IsZoomConstant,
		ResultType:        checked.ExprType(),
	}
}

// CompileJSON is a convenience wrapper that decodes raw JSON text
// before compiling, for callers holding a style document's expression
// as bytes rather than an already-decoded interface{}.
func (e *Engine) CompileJSON(raw []byte, expectedType Type) Result {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return Result{Errors: []Error{{Key: "root", Message: err.Error()}}}
	}
	return e.Compile(v, expectedType)
}

func convertParseErrors(errs []*parser.ParseError) []Error {
	out := make([]Error, len(errs))
	for i, e := range errs {
		out[i] = Error{Key: e.Key, Message: e.Error}
	}
	return out
}

func convertCheckErrors(errs []*checker.Error) []Error {
	out := make([]Error, len(errs))
	for i, e := range errs {
		out[i] = Error{Key: e.Key, Message: e.Message}
	}
	return out
}
