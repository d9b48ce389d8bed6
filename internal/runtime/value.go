// Package runtime defines the tagged value representation the
// evaluator and the registry's builtin definitions operate on, plus the
// (zoom, feature) evaluation context and the thunk type used for lazy
// branches.
//
// The tagging scheme follows spec §4.5's design note: primitive Go
// values (nil, float64, string, bool) pass through untagged, exactly
// like the teacher's evaluator which leaves INTEGER_OBJ/STRING_OBJ
// payloads as plain Go scalars inside its Object wrappers; only the
// non-primitive shapes (Color, Object, Vector, Array) need an explicit
// tag so TypeOf is O(1) instead of a type switch over nested structure.
package runtime

import (
	"fmt"

	"github.com/tilepaint/exprlang/internal/config"
)

// Value is any runtime value flowing through the evaluator: a bare Go
// nil/float64/string/bool, or one of Color/Object/Container below.
type Value = any

// Color is a tagged [r, g, b, a] value, the runtime form of the color
// primitive type. Components are whatever range parse_color produced
// (spec leaves color parsing to an external collaborator); this package
// only carries the four numbers through.
type Color struct {
	RGBA [4]float64
}

// Object is a tagged string-keyed map, the runtime form of the object
// primitive type.
type Object struct {
	Fields map[string]Value
}

// ContainerKind distinguishes a Vector (unbounded length) from an Array
// (statically known length) at runtime, purely for TypeOf's display
// string — both carry their elements the same way.
type ContainerKind string

const (
	VectorKind ContainerKind = config.VectorTypeName
	ArrayKind  ContainerKind = config.ArrayTypeName
)

// Container is the tagged runtime form of Vector<T> and Array<T, N>.
type Container struct {
	Kind         ContainerKind
	ItemTypeName string // for display, e.g. "Number", "Value"
	N            int    // only meaningful when Kind == ArrayKind
	Items        []Value
}

// TypeOf returns the tag used by typeof() and by match()'s lookup key:
// the tagged struct's display name, or the titlecased primitive name, or
// "Null".
func TypeOf(v Value) string {
	switch vv := v.(type) {
	case nil:
		return "Null"
	case float64:
		return "Number"
	case string:
		return "String"
	case bool:
		return "Boolean"
	case Color:
		return "Color"
	case Object:
		return "Object"
	case Container:
		if vv.Kind == ArrayKind {
			return fmt.Sprintf("Array<%s, %d>", vv.ItemTypeName, vv.N)
		}
		return fmt.Sprintf("Vector<%s>", vv.ItemTypeName)
	default:
		return "Unknown"
	}
}

// Unwrap strips the tag before a value crosses back out of the
// evaluator at the top level: Color becomes its [4]float64, Object
// becomes its map, Container becomes its slice. Primitives pass
// through unchanged.
func Unwrap(v Value) any {
	switch vv := v.(type) {
	case Color:
		return vv.RGBA
	case Object:
		return vv.Fields
	case Container:
		return vv.Items
	default:
		return v
	}
}

// IsNull reports whether v is the runtime null value.
func IsNull(v Value) bool { return v == nil }
