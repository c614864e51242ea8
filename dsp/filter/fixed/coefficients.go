package fixed

import (
	"fmt"
	"math"
)

const (
	// WorkingBits is the width of the fixed-point working format that
	// coefficients are aligned to.
	WorkingBits = 28
	// MaxSampleBits is the widest sample the working format can hold.
	MaxSampleBits = WorkingBits
)

// Coefficients holds the integer transfer function coefficients of one
// two-pole/two-zero section. A0 is the implicit unity normalization and is
// not used by the recursion; a PT1 only populates B0 and A1.
//
// Unlike the float biquad convention, feedback terms are added, not
// subtracted: the domain keeps every coefficient non-negative.
type Coefficients struct {
	B0, B1, B2 uint32 // feed-forward
	A0, A1, A2 uint32 // feedback
}

// Scale is the fixed-point layout of a filter.
type Scale struct {
	// ResultShift is the number of guard bits retained in the output
	// history and dropped only when a sample is returned.
	ResultShift uint8
	// BaseShift aligns the sample width with the working format
	// (WorkingBits − sampleBits).
	BaseShift uint8
}

// Shift returns the right shift applied to the accumulator.
func (s Scale) Shift() uint8 {
	return s.BaseShift - s.ResultShift
}

// Validate reports whether the layout can be evaluated.
func (s Scale) Validate() error {
	if s.BaseShift > WorkingBits {
		return fmt.Errorf("%w: base shift %d exceeds %d working bits", ErrConfig, s.BaseShift, WorkingBits)
	}

	if s.BaseShift < s.ResultShift {
		return fmt.Errorf("%w: base shift %d < result shift %d", ErrConfig, s.BaseShift, s.ResultShift)
	}

	return nil
}

// NewScale computes the layout for samples of sampleBits width with
// extraBits guard bits.
func NewScale(sampleBits, extraBits uint) (Scale, error) {
	if sampleBits > MaxSampleBits {
		return Scale{}, fmt.Errorf("%w: sample width %d exceeds %d bits", ErrConfig, sampleBits, MaxSampleBits)
	}

	base := WorkingBits - sampleBits
	if base < extraBits {
		return Scale{}, fmt.Errorf("%w: %d extra bits exceed base shift %d of %d-bit samples",
			ErrConfig, extraBits, base, sampleBits)
	}

	return Scale{ResultShift: uint8(extraBits), BaseShift: uint8(base)}, nil
}

// quantize returns ⌊v · 2^shift⌋ reduced modulo 2^32.
//
// Out-of-range float to integer conversions are implementation defined in
// Go, so the wrap is done explicitly in float arithmetic first. Any float
// of magnitude 2^84 or more is a multiple of 2^32, so overflow to Inf maps
// to zero as well.
func quantize(v float64, shift uint8) uint32 {
	const modulus = 1 << 32

	scaled := math.Ldexp(v, int(shift))
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return 0
	}

	q := math.Mod(math.Floor(scaled), modulus)
	if q < 0 {
		q += modulus
	}

	return uint32(q)
}
