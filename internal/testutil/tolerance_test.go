package testutil

import "testing"

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2, 3}, []float64{1, 2 + 1e-10, 3}, 1e-9)
}

func TestRequireSliceEqualPasses(t *testing.T) {
	RequireSliceEqual(t, []float64{0.25, -1}, []float64{0.25, -1})
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float64{0, -1, 1e300})
}
