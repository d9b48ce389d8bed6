package types

import "testing"

func TestPrimitiveName(t *testing.T) {
	if Number.Name() != "number" {
		t.Errorf("Number.Name() = %s, want number", Number.Name())
	}
}

func TestValueTypeIsRecursiveAndTerminates(t *testing.T) {
	members := ValueType.Members()
	if len(members) != 7 {
		t.Fatalf("ValueType has %d members, want 7", len(members))
	}
	last, ok := members[len(members)-1].(Vector)
	if !ok {
		t.Fatalf("last member = %T, want Vector", members[len(members)-1])
	}
	if last.Item != Type(ValueType) {
		t.Errorf("Vector item does not point back at ValueType")
	}

	// Must terminate and must not be generic.
	if IsGeneric(ValueType) {
		t.Errorf("ValueType should not be generic")
	}
	_ = ValueType.Name() // must terminate, not stack-overflow
}

func TestIsGeneric(t *testing.T) {
	cases := []struct {
		name string
		typ  Type
		want bool
	}{
		{"primitive", Number, false},
		{"typename", NewTypeName("T"), true},
		{"vector of typename", Vector{Item: NewTypeName("T")}, true},
		{"vector of primitive", Vector{Item: Number}, false},
		{"array of typename", Array{Item: NewTypeName("T"), N: 3}, true},
		{"lambda generic result", Lambda{Result: NewTypeName("T"), Params: []Type{Number}}, true},
		{"lambda generic param", Lambda{Result: Number, Params: []Type{NewTypeName("T")}}, true},
		{"lambda concrete", Lambda{Result: Number, Params: []Type{String}}, false},
		{"nargs generic", NArgs{Types: []Type{NewTypeName("T")}, N: Unbounded}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsGeneric(c.typ); got != c.want {
				t.Errorf("IsGeneric(%s) = %v, want %v", c.typ.Name(), got, c.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tv := NewTypeName("T")
	bindings := Bindings{"T": Number}

	got := Resolve(Vector{Item: tv}, bindings)
	want := Vector{Item: Number}
	if !Equal(got, want) {
		t.Errorf("Resolve(Vector<T>) = %s, want %s", got.Name(), want.Name())
	}

	// Unbound TypeName is left alone.
	got2 := Resolve(NewTypeName("U"), bindings)
	if !Equal(got2, NewTypeName("U")) {
		t.Errorf("Resolve should leave unbound TypeName untouched, got %s", got2.Name())
	}

	// Resolving the recursive Value type must not loop or mutate it.
	got3 := Resolve(ValueType, bindings)
	if got3 != Type(ValueType) {
		t.Errorf("Resolve(ValueType) should return the same node")
	}
}

func TestEqualArrayRequiresSameN(t *testing.T) {
	a := Array{Item: Number, N: 3}
	b := Array{Item: Number, N: 4}
	if Equal(a, b) {
		t.Errorf("arrays with different N should not be Equal")
	}
	c := Array{Item: Number, N: 3}
	if !Equal(a, c) {
		t.Errorf("arrays with same item and N should be Equal")
	}
}

func TestVariantIdentityNotStructural(t *testing.T) {
	v1 := NewVariant(Number, String)
	v2 := NewVariant(Number, String)
	if v1 == v2 {
		t.Fatalf("separately constructed variants must not share identity")
	}
	// Equal() on *Variant compares identity, not structure.
	if Equal(v1, v2) {
		t.Errorf("Equal(v1, v2) should be false: variants are identity-typed, not structural")
	}
	if !Equal(v1, v1) {
		t.Errorf("Equal(v1, v1) should be true")
	}
}
