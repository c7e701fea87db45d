package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireSilent fails t unless every sample of every channel is exactly zero.
func RequireSilent(t *testing.T, buf [][]float64) {
	t.Helper()
	for ch := range buf {
		for i, v := range buf[ch] {
			if v != 0 {
				t.Fatalf("channel %d index %d: got %v, want 0", ch, i, v)
			}
		}
	}
}

// RequireBitEqual32 fails t unless got and want hold identical float32 bits.
func RequireBitEqual32(t *testing.T, got, want [][]float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("channel count: got %d, want %d", len(got), len(want))
	}
	for ch := range want {
		if len(got[ch]) != len(want[ch]) {
			t.Fatalf("channel %d length: got %d, want %d", ch, len(got[ch]), len(want[ch]))
		}
		for i := range want[ch] {
			if math.Float32bits(got[ch][i]) != math.Float32bits(want[ch][i]) {
				t.Fatalf("channel %d index %d: got %v, want %v", ch, i, got[ch][i], want[ch][i])
			}
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
