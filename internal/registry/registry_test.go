package registry_test

import (
	"testing"

	"github.com/tilepaint/exprlang/internal/checker"
	"github.com/tilepaint/exprlang/internal/evaluator"
	"github.com/tilepaint/exprlang/internal/parser"
	"github.com/tilepaint/exprlang/internal/registry"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/internal/types"
)

func run(t *testing.T, deps registry.Dependencies, v interface{}, expected types.Type, zoom float64, feature runtime.Feature) (interface{}, error) {
	t.Helper()
	reg := registry.New(deps)
	parsed, errs := parser.New(reg).Parse(v, nil)
	if len(errs) > 0 {
		t.Fatalf("parse(%v): %v", v, errs)
	}
	checked, checkErrs := checker.Check(expected, parsed)
	if len(checkErrs) > 0 {
		t.Fatalf("check(%v): %v", v, checkErrs)
	}
	compiled, err := evaluator.Compile(checked, reg)
	if err != nil {
		t.Fatalf("compile(%v): %v", v, err)
	}
	return compiled.Call(zoom, feature)
}

func TestCoercionsConvertAcrossPrimitives(t *testing.T) {
	cases := []struct {
		expr     interface{}
		expected types.Type
		want     interface{}
	}{
		{[]interface{}{"string", 5.0}, types.String, "5"},
		{[]interface{}{"string", true}, types.String, "true"},
		{[]interface{}{"number", "3.5"}, types.Number, 3.5},
		{[]interface{}{"number", true}, types.Number, 1.0},
		{[]interface{}{"boolean", 0.0}, types.Boolean, false},
		{[]interface{}{"boolean", "x"}, types.Boolean, true},
	}
	for _, c := range cases {
		got, err := run(t, registry.Dependencies{}, c.expr, c.expected, 0, runtime.Feature{})
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", c.expr, err)
		}
		if got != c.want {
			t.Fatalf("%v: expected %v, got %v", c.expr, c.want, got)
		}
	}
}

func TestNumberCoercionRejectsUnparsableString(t *testing.T) {
	_, err := run(t, registry.Dependencies{}, []interface{}{"number", "abc"}, types.Number, 0, runtime.Feature{})
	if err == nil {
		t.Fatalf("expected a TypeAssertion error converting \"abc\" to number")
	}
}

func TestHasReportsPropertyPresence(t *testing.T) {
	feature := runtime.Feature{Properties: map[string]interface{}{"name": "x"}}
	got, err := run(t, registry.Dependencies{}, []interface{}{"has", "name"}, types.Boolean, 0, feature)
	if err != nil || got != true {
		t.Fatalf("expected true, got %v err=%v", got, err)
	}
	got, err = run(t, registry.Dependencies{}, []interface{}{"has", "missing"}, types.Boolean, 0, feature)
	if err != nil || got != false {
		t.Fatalf("expected false, got %v err=%v", got, err)
	}
}

func TestGetWithExplicitObjectArgument(t *testing.T) {
	expr := []interface{}{"get", "a", []interface{}{"object", []interface{}{"get", "obj"}}}
	feature := runtime.Feature{Properties: map[string]interface{}{
		"obj": map[string]interface{}{"a": "nested"},
	}}
	got, err := run(t, registry.Dependencies{}, expr, types.String, 0, feature)
	if err != nil || got != "nested" {
		t.Fatalf("expected nested, got %v err=%v", got, err)
	}
}

func TestIDReturnsNullWhenFeatureHasNone(t *testing.T) {
	got, err := run(t, registry.Dependencies{}, []interface{}{"id"}, types.ValueType, 0, runtime.Feature{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil id, got %v", got)
	}
}

func TestTypeofReportsRuntimeTag(t *testing.T) {
	got, err := run(t, registry.Dependencies{}, []interface{}{"typeof", 1.0}, types.String, 0, runtime.Feature{})
	if err != nil || got != "Number" {
		t.Fatalf("expected Number, got %v err=%v", got, err)
	}
}

func TestLogicOperatorsShortCircuit(t *testing.T) {
	// The right operand of && reads a missing property; short-circuiting
	// on the false left operand must keep it from ever evaluating.
	expr := []interface{}{"&&", false, []interface{}{"get", "missing"}}
	got, err := run(t, registry.Dependencies{}, expr, types.Boolean, 0, runtime.Feature{Properties: map[string]interface{}{}})
	if err != nil {
		t.Fatalf("unexpected error from short-circuited &&: %v", err)
	}
	if got != false {
		t.Fatalf("expected false, got %v", got)
	}
}

func TestComparisonOperators(t *testing.T) {
	cases := []struct {
		expr interface{}
		want bool
	}{
		{[]interface{}{">", 2.0, 1.0}, true},
		{[]interface{}{"<", 2.0, 1.0}, false},
		{[]interface{}{"==", "a", "a"}, true},
		{[]interface{}{"!=", "a", "b"}, true},
		{[]interface{}{">=", 1.0, 1.0}, true},
	}
	for _, c := range cases {
		got, err := run(t, registry.Dependencies{}, c.expr, types.Boolean, 0, runtime.Feature{})
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", c.expr, err)
		}
		if got != c.want {
			t.Fatalf("%v: expected %v, got %v", c.expr, c.want, got)
		}
	}
}

func TestArrayBuildsTaggedContainer(t *testing.T) {
	got, err := run(t, registry.Dependencies{}, []interface{}{"array", 1.0, 2.0, 3.0}, types.Array{Item: types.Number, N: 3}, 0, runtime.Feature{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, ok := got.([]interface{})
	if !ok || len(items) != 3 || items[1] != 2.0 {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
}

func TestAtIndexesIntoAnArray(t *testing.T) {
	expr := []interface{}{"at", 1.0, []interface{}{"array", 10.0, 20.0, 30.0}}
	got, err := run(t, registry.Dependencies{}, expr, types.Number, 0, runtime.Feature{})
	if err != nil || got != 20.0 {
		t.Fatalf("expected 20, got %v err=%v", got, err)
	}
}

func TestAtOutOfBoundsIndexRaisesError(t *testing.T) {
	expr := []interface{}{"at", 5.0, []interface{}{"array", 10.0, 20.0}}
	_, err := run(t, registry.Dependencies{}, expr, types.Number, 0, runtime.Feature{})
	if err == nil {
		t.Fatalf("expected an IndexOutOfBounds error")
	}
	re, ok := err.(*runtime.Error)
	if !ok || re.Kind != runtime.IndexOutOfBounds {
		t.Fatalf("expected IndexOutOfBounds, got %v", err)
	}
}

func TestLengthOfStringAndArray(t *testing.T) {
	got, err := run(t, registry.Dependencies{}, []interface{}{"length", "hello"}, types.Number, 0, runtime.Feature{})
	if err != nil || got != 5.0 {
		t.Fatalf("expected 5, got %v err=%v", got, err)
	}
	got, err = run(t, registry.Dependencies{}, []interface{}{"length", []interface{}{"vector", 1.0, 2.0}}, types.Number, 0, runtime.Feature{})
	if err != nil || got != 2.0 {
		t.Fatalf("expected 2, got %v err=%v", got, err)
	}
}

func TestConcatStringifiesEveryArgument(t *testing.T) {
	expr := []interface{}{"concat", "x=", 1.0, " ok=", true}
	got, err := run(t, registry.Dependencies{}, expr, types.String, 0, runtime.Feature{})
	if err != nil || got != "x=1 ok=true" {
		t.Fatalf("expected \"x=1 ok=true\", got %v err=%v", got, err)
	}
}

func TestColorConstructorsAndColorToArray(t *testing.T) {
	deps := registry.Dependencies{
		ParseColor: func(s string) (r, g, b, a float64, ok bool) {
			if s == "red" {
				return 255, 0, 0, 1, true
			}
			return 0, 0, 0, 0, false
		},
	}
	got, err := run(t, deps, []interface{}{"color_to_array", []interface{}{"color", "red"}}, types.Array{Item: types.Number, N: 4}, 0, runtime.Feature{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := got.([]interface{})
	if items[0] != 255.0 || items[3] != 1.0 {
		t.Fatalf("expected [255 0 0 1], got %v", items)
	}
}

func TestColorParseFailureRaisesColorParseError(t *testing.T) {
	deps := registry.Dependencies{ParseColor: func(s string) (r, g, b, a float64, ok bool) { return 0, 0, 0, 0, false }}
	_, err := run(t, deps, []interface{}{"color", "not-a-color"}, types.Color, 0, runtime.Feature{})
	if err == nil {
		t.Fatalf("expected a ColorParse error")
	}
	re, ok := err.(*runtime.Error)
	if !ok || re.Kind != runtime.ColorParse {
		t.Fatalf("expected ColorParse, got %v", err)
	}
}

func TestCurveStepModeNeverInterpolates(t *testing.T) {
	expr := []interface{}{
		"curve",
		[]interface{}{"step"},
		[]interface{}{"zoom"},
		0.0, 10.0,
		5.0, 20.0,
	}
	got, err := run(t, registry.Dependencies{}, expr, types.Number, 3, runtime.Feature{})
	if err != nil || got != 10.0 {
		t.Fatalf("expected the step before zoom 3, got %v err=%v", got, err)
	}
}

func TestCurveColorInterpolatesUsingInjectedDependency(t *testing.T) {
	deps := registry.Dependencies{
		InterpolateColor: func(a, b runtime.Color, t float64) runtime.Color {
			out := runtime.Color{}
			for i := range a.RGBA {
				out.RGBA[i] = a.RGBA[i] + t*(b.RGBA[i]-a.RGBA[i])
			}
			return out
		},
	}
	expr := []interface{}{
		"curve",
		[]interface{}{"linear"},
		[]interface{}{"zoom"},
		0.0, []interface{}{"rgba", 0.0, 0.0, 0.0, 1.0},
		10.0, []interface{}{"rgba", 100.0, 0.0, 0.0, 1.0},
	}
	got, err := run(t, deps, expr, types.Color, 5, runtime.Feature{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rgba := got.([4]float64)
	if rgba[0] != 50.0 {
		t.Fatalf("expected red=50 at the midpoint, got %v", rgba)
	}
}
