// Package types implements the small algebraic type system used to
// describe style expression signatures: primitives, generic type names,
// variant (sum) types, vectors and fixed-length arrays, the NArgs
// parameter-list macro, and lambda signatures.
//
// The shapes mirror the teacher's typesystem package (TCon/TVar/TApp/
// TUnion/TFunc in internal/typesystem/types.go) but are pared down to
// exactly what the style expression language needs: there is no kind
// system, no row polymorphism, and no rank-N quantification, because
// every generic here is scoped to a single lambda signature.
package types

import (
	"fmt"
	"strings"

	"github.com/tilepaint/exprlang/internal/config"
)

// Type is the interface implemented by every member of the algebra.
type Type interface {
	// Name returns the stable, human-readable form used in error
	// messages and in printed resolved result types.
	Name() string
}

// Primitive is a named atom from the closed base-type set.
type Primitive string

const (
	Null              Primitive = config.NullTypeName
	Number            Primitive = config.NumberTypeName
	String            Primitive = config.StringTypeName
	Boolean           Primitive = config.BooleanTypeName
	Color             Primitive = config.ColorTypeName
	Object            Primitive = config.ObjectTypeName
	InterpolationType Primitive = config.InterpolationTypeName
)

func (p Primitive) Name() string { return string(p) }

// TypeName is a generic placeholder (e.g. T, U) scoped to the enclosing
// lambda signature.
type TypeName struct {
	Name_ string
}

func NewTypeName(name string) TypeName { return TypeName{Name_: name} }

func (t TypeName) Name() string { return t.Name_ }

// Variant is a disjoint union. It is always constructed through NewVariant
// so that each call site gets its own identity: two separately constructed
// variants with structurally equal members are not the same type, per
// spec §3.1. Members may reference the enclosing variant (via
// NewRecursiveVariant) to express recursive types like the built-in Value
// type.
type Variant struct {
	members []Type
}

// NewVariant constructs a variant from a fixed member list.
func NewVariant(members ...Type) *Variant {
	return &Variant{members: append([]Type{}, members...)}
}

// NewRecursiveVariant builds a variant whose member list can refer back
// to the variant itself. build receives the partially constructed
// *Variant (its Members are not yet set) and returns the member list;
// this is the two-phase construction spec §9 calls for ("a constructor
// that receives a function from the forming variant to its last
// member").
func NewRecursiveVariant(build func(self *Variant) []Type) *Variant {
	v := &Variant{}
	v.members = build(v)
	return v
}

// PatchMembers replaces a variant's member list in place, keeping the
// variant's identity.
func (v *Variant) PatchMembers(members []Type) { v.members = members }

func (v *Variant) Members() []Type { return v.members }

func (v *Variant) Name() string {
	return printVariant(v, map[*Variant]bool{})
}

func printVariant(v *Variant, visited map[*Variant]bool) string {
	if visited[v] {
		return "..."
	}
	visited[v] = true
	parts := make([]string, 0, len(v.members))
	for _, m := range v.members {
		parts = append(parts, printType(m, visited))
	}
	return strings.Join(parts, " | ")
}

// Vector is an ordered sequence of elements of unbounded length.
type Vector struct {
	Item Type
}

func (v Vector) Name() string { return fmt.Sprintf("Vector<%s>", printType(v.Item, nil)) }

// Array is an ordered sequence of exactly N elements.
type Array struct {
	Item Type
	N    int
}

func (a Array) Name() string { return fmt.Sprintf("Array<%s, %d>", printType(a.Item, nil), a.N) }

// AnyArray matches any Array regardless of N. It appears only in
// parameter positions (it is not a valid result or literal type).
type AnyArray struct {
	Item Type
}

func (a AnyArray) Name() string { return fmt.Sprintf("Array<%s>", printType(a.Item, nil)) }

// Unbounded marks an NArgs repetition count with no upper limit.
const Unbounded = -1

// NArgs is a parameter-list macro: "repeat this tuple of parameter types
// up to N times". It is eliminated during parameter expansion (§4.3 step
// 2) and never appears in a resolved node's type.
type NArgs struct {
	Types []Type
	N     int // Unbounded for unlimited repetition
}

func (n NArgs) Name() string {
	parts := make([]string, len(n.Types))
	for i, t := range n.Types {
		parts[i] = printType(t, nil)
	}
	bound := "∞"
	if n.N != Unbounded {
		bound = fmt.Sprintf("%d", n.N)
	}
	return fmt.Sprintf("(%s)x%s", strings.Join(parts, ", "), bound)
}

// Lambda is the signature of a callable expression.
type Lambda struct {
	Result Type
	Params []Type
}

func (l Lambda) Name() string {
	parts := make([]string, len(l.Params))
	for i, p := range l.Params {
		parts[i] = printType(p, nil)
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), printType(l.Result, nil))
}

// printType dispatches to Variant's cycle-safe printer when needed, and
// carries the same visited set through Vector/Array/AnyArray items so a
// variant that contains itself through one of them (the built-in Value
// type) prints as "..." at the point of recursion. Every other type is
// self-contained and safe to call Name() on directly.
func printType(t Type, visited map[*Variant]bool) string {
	if t == nil {
		return "<nil>"
	}
	if visited == nil {
		visited = map[*Variant]bool{}
	}
	switch v := t.(type) {
	case *Variant:
		return printVariant(v, visited)
	case Vector:
		return fmt.Sprintf("Vector<%s>", printType(v.Item, visited))
	case Array:
		return fmt.Sprintf("Array<%s, %d>", printType(v.Item, visited), v.N)
	case AnyArray:
		return fmt.Sprintf("Array<%s>", printType(v.Item, visited))
	}
	return t.Name()
}
