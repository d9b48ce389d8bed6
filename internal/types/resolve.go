package types

// Bindings maps a TypeName's Name to the concrete Type it was bound to
// during type checking (spec §4.3's "typenames" map).
type Bindings map[string]Type

// Resolve returns t with every TypeName substituted by its binding when
// present, recursing into Vector, Array, AnyArray, NArgs and Lambda. A
// Variant is always returned as the original node, unchanged: TypeNames
// inside a variant's members are not substituted. This keeps variant
// identity intact and makes resolving the recursive Value type
// terminate.
func Resolve(t Type, bindings Bindings) Type {
	return resolve(t, bindings, map[*Variant]bool{})
}

func resolve(t Type, bindings Bindings, visited map[*Variant]bool) Type {
	switch v := t.(type) {
	case nil:
		return nil
	case TypeName:
		if bound, ok := bindings[v.Name_]; ok {
			return bound
		}
		return v
	case *Variant:
		if visited[v] {
			return v
		}
		visited[v] = true
		return v
	case Vector:
		return Vector{Item: resolve(v.Item, bindings, visited)}
	case Array:
		return Array{Item: resolve(v.Item, bindings, visited), N: v.N}
	case AnyArray:
		return AnyArray{Item: resolve(v.Item, bindings, visited)}
	case NArgs:
		params := make([]Type, len(v.Types))
		for i, p := range v.Types {
			params[i] = resolve(p, bindings, visited)
		}
		return NArgs{Types: params, N: v.N}
	case Lambda:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = resolve(p, bindings, visited)
		}
		return Lambda{Result: resolve(v.Result, bindings, visited), Params: params}
	default:
		return t
	}
}
