package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if any
// element pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps || math.IsNaN(diff) {
			t.Fatalf("bin %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireCounts fails t unless every output count is non-negative and equal to
// floor(acc[j]) or floor(acc[j])+1. Bins with acc[j] <= 0 must be zero.
func RequireCounts(t *testing.T, out []int, acc []float64) {
	t.Helper()
	if len(out) != len(acc) {
		t.Fatalf("length mismatch: out %d, acc %d", len(out), len(acc))
	}
	for j, c := range out {
		if c < 0 {
			t.Fatalf("bin %d: negative count %d", j, c)
		}
		if acc[j] <= 0 {
			if c != 0 {
				t.Fatalf("bin %d: count %d for empty accumulator %v", j, c, acc[j])
			}
			continue
		}
		lo := int(math.Floor(acc[j]))
		if c != lo && c != lo+1 {
			t.Fatalf("bin %d: count %d not in {%d, %d} for accumulator %v", j, c, lo, lo+1, acc[j])
		}
	}
}
