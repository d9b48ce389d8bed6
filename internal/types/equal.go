package types

// Equal reports structural equality for primitives, type names,
// vectors, arrays and lambdas. Variant equality is deliberately NOT
// structural (spec §3.1): two variants are only the same type if they
// are the same *Variant node, so Equal compares *Variant values by
// pointer identity.
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av == bv
	case TypeName:
		bv, ok := b.(TypeName)
		return ok && av.Name_ == bv.Name_
	case Vector:
		bv, ok := b.(Vector)
		return ok && Equal(av.Item, bv.Item)
	case Array:
		bv, ok := b.(Array)
		return ok && av.N == bv.N && Equal(av.Item, bv.Item)
	case AnyArray:
		bv, ok := b.(AnyArray)
		return ok && Equal(av.Item, bv.Item)
	case *Variant:
		bv, ok := b.(*Variant)
		return ok && av == bv
	case Lambda:
		bv, ok := b.(Lambda)
		if !ok || len(av.Params) != len(bv.Params) || !Equal(av.Result, bv.Result) {
			return false
		}
		for i := range av.Params {
			if !Equal(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
