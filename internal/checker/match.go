package checker

import "github.com/tilepaint/exprlang/internal/types"

// Match implements spec §4.3.1: unification between a (possibly
// generic) expected type and an actual type t, recording TypeName
// bindings in both directions. It never looks past t's own shape — the
// caller is responsible for spec's "one level deep" restriction (see
// §9's Generic inference scope note): match only ever sees a node's own
// declared result type, never recurses into the node's subtree itself.
func Match(expected, t types.Type, expectedBindings, tBindings types.Bindings) error {
	if lam, ok := t.(types.Lambda); ok {
		t = lam.Result
	}

	if tn, ok := expected.(types.TypeName); ok {
		if _, bound := expectedBindings[tn.Name_]; !bound && isConcrete(t) && t != types.Null {
			expectedBindings[tn.Name_] = t
		}
		return nil
	}

	if tn, ok := t.(types.TypeName); ok {
		if isConcrete(expected) {
			if _, bound := tBindings[tn.Name_]; !bound {
				tBindings[tn.Name_] = expected
			}
			t = expected
		} else {
			return nil
		}
	}

	if t == types.Null {
		return nil
	}

	switch ex := expected.(type) {
	case types.Primitive:
		if tp, ok := t.(types.Primitive); ok && tp == ex {
			return nil
		}
		return typeMismatch("", ex.Name(), t.Name())

	case types.Vector:
		tv, ok := t.(types.Vector)
		if !ok {
			return typeMismatch("", ex.Name(), t.Name())
		}
		return Match(ex.Item, tv.Item, expectedBindings, tBindings)

	case types.Array:
		switch tv := t.(type) {
		case types.Array:
			if tv.N != ex.N {
				return typeMismatch("", ex.Name(), t.Name())
			}
			return Match(ex.Item, tv.Item, expectedBindings, tBindings)
		default:
			return typeMismatch("", ex.Name(), t.Name())
		}

	case types.AnyArray:
		switch tv := t.(type) {
		case types.Array:
			return Match(ex.Item, tv.Item, expectedBindings, tBindings)
		case types.AnyArray:
			return Match(ex.Item, tv.Item, expectedBindings, tBindings)
		default:
			return typeMismatch("", ex.Name(), t.Name())
		}

	case *types.Variant:
		if tVariant, ok := t.(*types.Variant); ok {
			// Variant identity is by construction (spec §3.1): the same
			// *Variant node matched against itself is trivially equal.
			// Without this short-circuit, a self-referential member (the
			// built-in Value type's Vector<Value> arm) would send this
			// member loop straight back into Match(ValueType, ValueType)
			// and recurse forever.
			if tVariant == ex {
				return nil
			}
			for _, member := range tVariant.Members() {
				if err := Match(expected, member, expectedBindings, tBindings); err != nil {
					return err
				}
			}
			return nil
		}
		for _, member := range ex.Members() {
			candidateExpected := copyBindings(expectedBindings)
			candidateT := copyBindings(tBindings)
			if err := Match(member, t, candidateExpected, candidateT); err == nil {
				mergeInto(expectedBindings, candidateExpected)
				mergeInto(tBindings, candidateT)
				return nil
			}
		}
		return typeMismatch("", ex.Name(), t.Name())

	default:
		return typeMismatch("", expected.Name(), t.Name())
	}
}

func isConcrete(t types.Type) bool {
	return t != nil && !types.IsGeneric(t)
}

func copyBindings(b types.Bindings) types.Bindings {
	out := make(types.Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func mergeInto(dst, src types.Bindings) {
	for k, v := range src {
		dst[k] = v
	}
}
