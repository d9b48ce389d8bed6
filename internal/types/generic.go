package types

// IsGeneric reports whether t mentions a TypeName anywhere in its
// structure. Resolved ASTs must contain no generic types (spec §3.1's
// Genericity invariant). Recursion through variants (e.g. the built-in
// Value type, which contains itself via Vector<Value>) is guarded by an
// identity-visited set so this always terminates.
func IsGeneric(t Type) bool {
	return isGeneric(t, map[*Variant]bool{})
}

func isGeneric(t Type, visited map[*Variant]bool) bool {
	switch v := t.(type) {
	case nil:
		return false
	case TypeName:
		return true
	case *Variant:
		if visited[v] {
			return false
		}
		visited[v] = true
		for _, m := range v.members {
			if isGeneric(m, visited) {
				return true
			}
		}
		return false
	case Vector:
		return isGeneric(v.Item, visited)
	case Array:
		return isGeneric(v.Item, visited)
	case AnyArray:
		return isGeneric(v.Item, visited)
	case NArgs:
		for _, p := range v.Types {
			if isGeneric(p, visited) {
				return true
			}
		}
		return false
	case Lambda:
		if isGeneric(v.Result, visited) {
			return true
		}
		for _, p := range v.Params {
			if isGeneric(p, visited) {
				return true
			}
		}
		return false
	default:
		// Primitive and already-resolved leaves.
		return false
	}
}
