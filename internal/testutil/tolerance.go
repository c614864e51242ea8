package testutil

import (
	"fmt"
	"math"
	"testing"
)

// WithinPercent returns an error if got deviates from want by more than pct
// percent of want.
func WithinPercent(got uint32, want, pct float64) error {
	diff := math.Abs(float64(got) - want)
	if diff > math.Abs(want)*pct/100 {
		return fmt.Errorf("got %d, want %v ±%v%% (diff %v)", got, want, pct, diff)
	}
	return nil
}

// EqualSamples returns an error describing the first index where got and
// want differ, or a length mismatch.
func EqualSamples(got, want []uint32) error {
	if len(got) != len(want) {
		return fmt.Errorf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			return fmt.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
	return nil
}

// NonDecreasing returns an error at the first index where data decreases.
func NonDecreasing(data []uint32) error {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return fmt.Errorf("index %d: %d < previous %d", i, data[i], data[i-1])
		}
	}
	return nil
}

// RequireWithinPercent fails t if got deviates from want by more than pct
// percent of want.
func RequireWithinPercent(t *testing.T, got uint32, want, pct float64) {
	t.Helper()
	if err := WithinPercent(got, want, pct); err != nil {
		t.Fatal(err)
	}
}

// RequireEqualSamples fails t at the first index where got and want differ.
func RequireEqualSamples(t *testing.T, got, want []uint32) {
	t.Helper()
	if err := EqualSamples(got, want); err != nil {
		t.Fatal(err)
	}
}

// RequireNonDecreasing fails t if data ever decreases.
func RequireNonDecreasing(t *testing.T, data []uint32) {
	t.Helper()
	if err := NonDecreasing(data); err != nil {
		t.Fatal(err)
	}
}
