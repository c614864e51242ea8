package fixed

import (
	"fmt"
	"math"
)

// State is the input/output delay line of a filter. Index 0 holds the most
// recent sample, indices 1 and 2 the two before it.
type State struct {
	X [3]uint32
	Y [3]uint32
}

// Filter is a fixed-point recursive filter instance. The zero value is an
// uninitialized filter whose coefficients are all zero; it becomes active
// after a successful DerivePT1.
type Filter struct {
	coeffs Coefficients
	scale  Scale
	state  State
	active bool
}

// New returns an active filter using hand-picked coefficients and layout.
// The history starts at zero.
func New(c Coefficients, s Scale) (*Filter, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &Filter{coeffs: c, scale: s, active: true}, nil
}

// NewPT1 returns a filter with PT1 coefficients. See [Filter.DerivePT1].
func NewPT1(gain, timeConstant, sampleRateHz float64, sampleBits, extraBits uint) (*Filter, error) {
	f := &Filter{}
	if err := f.DerivePT1(gain, timeConstant, sampleRateHz, sampleBits, extraBits); err != nil {
		return nil, err
	}

	return f, nil
}

// NewLegacyPT1 returns a filter that reproduces the earlier unscaled PT1
// form, which multiplied each input by 16, shifted the accumulator right by
// 12 and divided the output by 16. a1 and b0 are the unscaled 12-bit
// coefficients of that form.
//
// This is the 12-bit layout with four guard bits and B0 pre-multiplied by
// 16; both evaluate the same 32-bit sum. The earlier form kept its history
// in 16-bit registers, so the two agree for 12-bit inputs whose internal
// output stays below 2^16.
func NewLegacyPT1(a1, b0 uint32) *Filter {
	return &Filter{
		coeffs: Coefficients{A0: 1, A1: a1, B0: b0 << 4},
		scale:  Scale{ResultShift: 4, BaseShift: 16},
		active: true,
	}
}

// DerivePT1 computes first-order low-pass coefficients for a static gain,
// a time constant in seconds and a sample rate, for samples of sampleBits
// width with extraBits guard bits. Any history is discarded.
//
// An infeasible layout returns ErrConfig and leaves the filter
// uninitialized, with coefficients and history cleared. Invalid parameters
// are rejected before the filter is touched.
//
// Coefficients that do not fit in 32 bits wrap modulo 2^32 without an
// error, like the accumulator does. Keep gain·2^(28−sampleBits)/(1+τ·fs)
// below 2^32 to avoid this.
func (f *Filter) DerivePT1(gain, timeConstant, sampleRateHz float64, sampleBits, extraBits uint) error {
	if err := validatePositive(gain, "gain"); err != nil {
		return err
	}

	if err := validatePositive(timeConstant, "time constant"); err != nil {
		return err
	}

	if err := validatePositive(sampleRateHz, "sample rate"); err != nil {
		return err
	}

	scale, err := NewScale(sampleBits, extraBits)
	if err != nil {
		*f = Filter{}

		return err
	}

	f.state = State{}
	f.coeffs = Coefficients{}
	f.scale = scale

	tfs := timeConstant * sampleRateHz
	alpha := tfs / (1 + tfs)
	beta := gain / (1 + tfs)

	f.coeffs.A0 = 1
	f.coeffs.A1 = quantize(alpha, scale.Shift())
	f.coeffs.B0 = quantize(beta, scale.BaseShift)
	f.active = true

	return nil
}

// ProcessSample feeds one input sample through the filter and returns the
// output with the guard bits removed.
//
// All arithmetic is unsigned 32-bit: products and their sum wrap modulo
// 2^32 as they would on the target.
func (f *Filter) ProcessSample(x uint32) uint32 {
	s := &f.state
	c := &f.coeffs

	s.X[0] = x

	acc := c.B0*s.X[0] + c.B1*s.X[1] + c.A1*s.Y[1] + c.A2*s.Y[2]
	s.Y[0] = acc >> f.shift()

	s.X[2] = s.X[1]
	s.X[1] = s.X[0]
	s.Y[2] = s.Y[1]
	s.Y[1] = s.Y[0]

	return s.Y[0] >> f.scale.ResultShift
}

// shift returns the accumulator shift. The layout is validated when it is
// set, so an inverted layout here is a programming error.
func (f *Filter) shift() uint8 {
	if f.scale.BaseShift < f.scale.ResultShift {
		panic(fmt.Errorf("%w: base shift %d < result shift %d", ErrConfig, f.scale.BaseShift, f.scale.ResultShift))
	}

	return f.scale.BaseShift - f.scale.ResultShift
}

// ProcessBlock filters buf in place.
func (f *Filter) ProcessBlock(buf []uint32) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src.
func (f *Filter) ProcessBlockTo(dst, src []uint32) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the history and keeps the coefficients.
func (f *Filter) Reset() {
	f.state = State{}
}

// State returns a copy of the current history.
func (f *Filter) State() State { return f.state }

// SetState restores a previously saved history.
func (f *Filter) SetState(s State) { f.state = s }

// Coefficients returns the integer coefficients.
func (f *Filter) Coefficients() Coefficients { return f.coeffs }

// Scale returns the fixed-point layout.
func (f *Filter) Scale() Scale { return f.scale }

// Active reports whether coefficients have been derived or set.
func (f *Filter) Active() bool { return f.active }

// ImpulseResponse returns n output samples for an impulse of the given
// amplitude. The filter state is saved and restored.
func (f *Filter) ImpulseResponse(n int, amplitude uint32) []uint32 {
	if n <= 0 {
		return nil
	}

	saved := f.state
	f.Reset()

	out := make([]uint32, n)

	out[0] = f.ProcessSample(amplitude)
	for i := 1; i < n; i++ {
		out[i] = f.ProcessSample(0)
	}

	f.state = saved

	return out
}

// StepResponse returns n output samples for a constant input of the given
// amplitude, starting from zero history. The filter state is saved and
// restored.
func (f *Filter) StepResponse(n int, amplitude uint32) []uint32 {
	if n <= 0 {
		return nil
	}

	saved := f.state
	f.Reset()

	out := make([]uint32, n)
	for i := range out {
		out[i] = f.ProcessSample(amplitude)
	}

	f.state = saved

	return out
}

func validatePositive(v float64, name string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be > 0 and finite: %g", ErrInvalidParameter, name, v)
	}

	return nil
}
