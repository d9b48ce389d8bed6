package style

import (
	"math"
	"testing"

	"github.com/tilepaint/exprlang/internal/runtime"
)

func mustCompile(t *testing.T, e *Engine, expr interface{}, expected Type) Result {
	t.Helper()
	r := e.Compile(expr, expected)
	if len(r.Errors) > 0 {
		t.Fatalf("compile(%v) failed: %v", expr, r.Errors)
	}
	return r
}

func TestAdditionIsFeatureAndZoomConstant(t *testing.T) {
	e := NewEngine(Dependencies{})
	r := mustCompile(t, e, []interface{}{"+", 1.0, 2.0, 3.0}, Number)
	if !r.IsFeatureConstant || !r.IsZoomConstant {
		t.Fatalf("expected + of literals to be feature- and zoom-constant, got %+v", r)
	}
	v, err := r.Value(0, Feature{})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if v != 6.0 {
		t.Fatalf("expected 6, got %v", v)
	}
}

func TestGetMissingPropertyRaisesPropertyNotFound(t *testing.T) {
	e := NewEngine(Dependencies{})
	r := mustCompile(t, e, []interface{}{"get", "name"}, String)
	if r.IsFeatureConstant {
		t.Fatalf("get(name) must not be feature-constant")
	}
	v, err := r.Value(0, Feature{Properties: map[string]interface{}{"name": "x"}})
	if err != nil || v != "x" {
		t.Fatalf("expected x, got %v err=%v", v, err)
	}
	if _, err := r.Value(0, Feature{Properties: map[string]interface{}{}}); err == nil {
		t.Fatalf("expected PropertyNotFound error")
	} else if re, ok := err.(*runtime.Error); !ok || re.Kind != runtime.PropertyNotFound {
		t.Fatalf("expected PropertyNotFound, got %v", err)
	}
}

func TestCurveExponentialOverZoom(t *testing.T) {
	e := NewEngine(Dependencies{})
	expr := []interface{}{
		"curve",
		[]interface{}{"exponential", 2.0},
		[]interface{}{"zoom"},
		0.0, 0.0,
		10.0, 100.0,
	}
	r := mustCompile(t, e, expr, Number)
	if r.IsZoomConstant {
		t.Fatalf("curve over zoom must not be zoom-constant")
	}
	v, err := r.Value(5, Feature{})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	want := (math.Pow(2, 5) - 1) / (math.Pow(2, 10) - 1) * 100
	got := v.(float64)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMatchFallsThroughToOtherwise(t *testing.T) {
	e := NewEngine(Dependencies{})
	expr := []interface{}{
		"match",
		[]interface{}{"get", "t"},
		"a", 1.0,
		[]interface{}{"b", "c"}, 2.0,
		0.0,
	}
	r := mustCompile(t, e, expr, Number)

	v, err := r.Value(0, Feature{Properties: map[string]interface{}{"t": "b"}})
	if err != nil || v != 2.0 {
		t.Fatalf("expected 2, got %v err=%v", v, err)
	}

	v, err = r.Value(0, Feature{Properties: map[string]interface{}{"t": "z"}})
	if err != nil || v != 0.0 {
		t.Fatalf("expected 0, got %v err=%v", v, err)
	}

	bad := []interface{}{
		"match",
		[]interface{}{"get", "t"},
		[]interface{}{"get", "x"}, 1.0,
		0.0,
	}
	badResult := e.Compile(bad, Number)
	if len(badResult.Errors) == 0 {
		t.Fatalf("expected NonLiteralMatchInput parse error")
	}
}

func TestTypeMismatchOnRoot(t *testing.T) {
	e := NewEngine(Dependencies{})
	r := e.Compile([]interface{}{"+", 1.0, 2.0}, String)
	if len(r.Errors) == 0 {
		t.Fatalf("expected a type mismatch error")
	}
}

func TestCoalesceFallsThroughNullBranches(t *testing.T) {
	e := NewEngine(Dependencies{})
	expr := []interface{}{"coalesce", []interface{}{"get", "a"}, []interface{}{"get", "b"}, "none"}
	r := mustCompile(t, e, expr, String)

	v, err := r.Value(0, Feature{Properties: map[string]interface{}{}})
	if err != nil || v != "none" {
		t.Fatalf("expected none, got %v err=%v", v, err)
	}

	v, err = r.Value(0, Feature{Properties: map[string]interface{}{"a": nil, "b": "x"}})
	if err != nil || v != "x" {
		t.Fatalf("expected x, got %v err=%v", v, err)
	}
}
