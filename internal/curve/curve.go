// Package curve implements the binary-search-over-stops interpolation
// mini-engine spec §4.6 describes: step / linear / exponential curves
// over Number, Color, and Array<Number, N> outputs. It has no
// dependency on the registry or evaluator packages — the registry's
// "curve" compile rule is the only caller, handing it already-validated
// numeric stop inputs.
package curve

import (
	"math"

	"github.com/tilepaint/exprlang/internal/config"
)

// Interpolation names the curve's easing mode.
type Interpolation string

const (
	Step        Interpolation = config.StepInterpolation
	Linear      Interpolation = config.LinearInterpolation
	Exponential Interpolation = config.ExponentialInterpolation
)

// Search returns the greatest index i such that stops[i] <= x, clamped
// to [0, len(stops)-2], per spec §4.6's binary search contract. Callers
// are expected to have already special-cased len(stops) == 1 and the
// two out-of-range ends.
func Search(stops []float64, x float64) int {
	lo, hi := 0, len(stops)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if stops[mid] <= x {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo > len(stops)-2 {
		lo = len(stops) - 2
	}
	if lo < 0 {
		lo = 0
	}
	return lo
}

// Factor computes the interpolation fraction t between stop i and i+1
// at input x, per spec §4.6's "Interpolation factor" formula: base=1 is
// plain linear, anything else is the exponential-ease form.
func Factor(x, base, x0, x1 float64) float64 {
	difference := x1 - x0
	progress := x - x0
	if difference == 0 {
		return 0
	}
	if base == 1 {
		return progress / difference
	}
	return (math.Pow(base, progress) - 1) / (math.Pow(base, difference) - 1)
}

// Index resolves x to the (lowIndex, t) pair Color/Array curves need to
// interpolate between two stop outputs; t is meaningless (and unused)
// when mode is Step, since the caller should return stopOutputs[i]
// directly in that case.
func Index(mode Interpolation, base float64, stopInputs []float64, x float64) (lo int, t float64, exact bool) {
	if len(stopInputs) == 1 {
		return 0, 0, true
	}
	if x <= stopInputs[0] {
		return 0, 0, true
	}
	if x >= stopInputs[len(stopInputs)-1] {
		return len(stopInputs) - 1, 0, true
	}
	i := Search(stopInputs, x)
	if mode == Step {
		return i, 0, true
	}
	return i, Factor(x, base, stopInputs[i], stopInputs[i+1]), false
}
