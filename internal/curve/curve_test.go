package curve_test

import (
	"math"
	"testing"

	"github.com/tilepaint/exprlang/internal/curve"
)

func TestSearchClampsToSecondToLastStop(t *testing.T) {
	stops := []float64{0, 5, 10, 15}
	cases := []struct {
		x    float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{3, 0},
		{5, 1},
		{9, 1},
		{15, 2},
		{100, 2},
	}
	for _, c := range cases {
		if got := curve.Search(stops, c.x); got != c.want {
			t.Fatalf("Search(%v, %v) = %d, want %d", stops, c.x, got, c.want)
		}
	}
}

func TestFactorLinearIsPlainFraction(t *testing.T) {
	got := curve.Factor(5, 1, 0, 10)
	if math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestFactorDegenerateRangeIsZero(t *testing.T) {
	if got := curve.Factor(5, 2, 3, 3); got != 0 {
		t.Fatalf("expected 0 for a zero-width range, got %v", got)
	}
}

func TestFactorExponentialMatchesEasingFormula(t *testing.T) {
	got := curve.Factor(5, 2, 0, 10)
	want := (math.Pow(2, 5) - 1) / (math.Pow(2, 10) - 1)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIndexBeforeFirstStopIsExact(t *testing.T) {
	lo, tt, exact := curve.Index(curve.Linear, 1, []float64{0, 10}, -5)
	if !exact || lo != 0 || tt != 0 {
		t.Fatalf("expected (0, 0, true), got (%d, %v, %v)", lo, tt, exact)
	}
}

func TestIndexAfterLastStopIsExact(t *testing.T) {
	lo, _, exact := curve.Index(curve.Linear, 1, []float64{0, 10}, 50)
	if !exact || lo != 1 {
		t.Fatalf("expected last index exact, got (%d, exact=%v)", lo, exact)
	}
}

func TestIndexSingleStopIsAlwaysExact(t *testing.T) {
	lo, tt, exact := curve.Index(curve.Linear, 1, []float64{7}, 100)
	if !exact || lo != 0 || tt != 0 {
		t.Fatalf("expected (0, 0, true), got (%d, %v, %v)", lo, tt, exact)
	}
}

func TestIndexStepModeAlwaysReportsExact(t *testing.T) {
	// Step mode never blends between stops, so Index short-circuits
	// exact=true regardless of how far x sits from the next stop.
	lo, tt, exact := curve.Index(curve.Step, 1, []float64{0, 10, 20}, 15)
	if !exact || lo != 1 || tt != 0 {
		t.Fatalf("expected (1, 0, true), got (%d, %v, %v)", lo, tt, exact)
	}
}

func TestIndexInteriorLinearInterpolation(t *testing.T) {
	lo, tt, exact := curve.Index(curve.Linear, 1, []float64{0, 10, 20}, 15)
	if exact || lo != 1 || math.Abs(tt-0.5) > 1e-12 {
		t.Fatalf("expected (1, 0.5, false), got (%d, %v, %v)", lo, tt, exact)
	}
}
