package types

// ValueType is the recursive sum type backing the style expression
// language's dynamic value: Null | Number | String | Boolean | Color |
// Object | Vector<Value>. It is a package-level singleton because
// Variant equality in this language is by construction identity (spec
// §3.1) — every Call whose declared type mentions "the Value type" must
// share this exact node for the Variant-tie-break rule in the checker's
// match() algorithm to behave consistently across the whole registry.
var ValueType = NewRecursiveVariant(func(self *Variant) []Type {
	return []Type{
		Null,
		Number,
		String,
		Boolean,
		Color,
		Object,
		Vector{Item: self},
	}
})
