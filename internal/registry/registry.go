// Package registry is the static table of built-in operators and
// functions: for each, a (possibly generic) Lambda signature and a
// compile rule that turns already-thunked arguments into an evaluator
// closure. It plays the role the teacher's evaluator/builtins.go
// Builtins map plays for the scripting language, narrowed to the
// closed, non-extensible set spec §4.4 names — there is no user-defined
// function registration here, by design (spec §1's Non-goals).
package registry

import (
	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

// CompileOutput is what a Definition's Compile rule hands back to the
// evaluator for one Call node.
type CompileOutput struct {
	// Eval is the produced evaluation step. Required unless Errors is
	// non-empty.
	Eval func(ctx *runtime.Context) (runtime.Value, error)

	// Errors aborts compilation of this node. The evaluator stops at the
	// first node whose Compile rule returns Errors and reports only the
	// first entry; errors of other nodes are not gathered.
	Errors []error

	// FeatureConstant/ZoomConstant override the purity flag the
	// evaluator would otherwise compute as the AND of this call's
	// argument subtrees. Leave nil to inherit that default.
	FeatureConstant *bool
	ZoomConstant    *bool
}

// CompileFunc builds one Call node's evaluation step. args has already
// been wrapped as lazy Thunks in argument order (after NArgs expansion,
// so len(args) == len(call.Arguments)); call is the fully resolved AST
// node, given mainly so compile rules can inspect MatchInputs or
// literal argument values (e.g. curve's stop validation).
type CompileFunc func(args []runtime.Thunk, call *ast.Call) CompileOutput

// Definition is one entry of the registry: a name, its declared
// (possibly generic) signature, and its compile rule.
type Definition struct {
	Name    string
	Type    types.Lambda
	Compile CompileFunc
}

// Registry is the closed table of definitions consulted by the parser
// (to attach declaration-site types), the checker (to resolve generics
// against call sites), and the evaluator (to compile calls).
type Registry struct {
	defs map[string]*Definition
}

// New builds the registry's closed table, wiring in the external
// collaborators spec §1 leaves out of this core: color parsing and the
// three interpolate.* routines.
func New(deps Dependencies) *Registry {
	r := &Registry{defs: make(map[string]*Definition)}
	registerConstants(r)
	registerCoercions(r)
	registerProperty(r)
	registerMath(r)
	registerLogic(r)
	registerStringOps(r)
	registerColor(r, deps)
	registerContainer(r)
	registerControl(r, deps)
	return r
}

// Dependencies are the interfaces spec §1 names as external
// collaborators. A nil-safe zero Dependencies still builds a usable
// registry; color() raises a runtime ColorParse error and non-step
// curve() falls back to a plain linear blend rather than panicking.
type Dependencies struct {
	ParseColor         func(s string) (r, g, b, a float64, ok bool)
	InterpolateNumber  func(a, b, t float64) float64
	InterpolateColor   func(a, b runtime.Color, t float64) runtime.Color
	InterpolateArray   func(a, b []float64, t float64) []float64
}

func (r *Registry) register(d *Definition) {
	r.defs[d.Name] = d
}

// Lookup returns the named definition, or ok=false if op is not a
// registered function (spec §4.2's "Unknown function <op>" case).
func (r *Registry) Lookup(name string) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}
