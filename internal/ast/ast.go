// Package ast defines the two-node expression tree produced by the
// parser, rewritten wholesale by the type checker, and walked by the
// evaluator. It mirrors the teacher's node-per-file-group convention
// (internal/ast/ast_core.go, ast_expressions.go) scaled down to the two
// node kinds a JSON expression tree can ever produce: Literal and Call.
package ast

import "github.com/tilepaint/exprlang/internal/types"

// Expression is a node of the style DSL AST.
type Expression interface {
	// ExprKey is the dot-joined JSON path this node was parsed from,
	// e.g. "2.1.0". Purely diagnostic — never consulted for semantics.
	ExprKey() string
	// ExprType is this node's current type. Before checking it is the
	// declaration-site signature the parser attached verbatim; after
	// checking it is fully resolved and non-generic.
	ExprType() types.Type
}

// Literal is a bare JSON scalar: null, a number, a string, or a
// boolean. Its Type is the primitive matching Value's runtime kind.
type Literal struct {
	Value interface{} // nil, float64, string, or bool
	Type  types.Type
	Key   string
}

func (l *Literal) ExprKey() string      { return l.Key }
func (l *Literal) ExprType() types.Type { return l.Type }

// Call references a definition in the registry by Name. Type is always
// a types.Lambda. MatchInputs, when non-nil, holds the literal input
// groups of a "match" expression — parsed separately from Arguments per
// spec §4.2, never positional arguments themselves.
type Call struct {
	Name        string
	Type        types.Lambda
	Arguments   []Expression
	Key         string
	MatchInputs [][]*Literal
}

func (c *Call) ExprKey() string      { return c.Key }
func (c *Call) ExprType() types.Type { return c.Type }
