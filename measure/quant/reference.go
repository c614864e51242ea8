package quant

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-fixed/dsp/filter/fixed"
)

// Reference is a floating-point first-order low-pass.
type Reference struct {
	B0 float64 // feed-forward gain β
	A1 float64 // pole α

	y1 float64
}

// NewReference returns the ideal PT1 for a static gain, a time constant in
// seconds and a sample rate in Hz.
func NewReference(gain, timeConstant, sampleRateHz float64) (*Reference, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"gain", gain},
		{"time constant", timeConstant},
		{"sample rate", sampleRateHz},
	} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) || p.v <= 0 {
			return nil, fmt.Errorf("%w: %s must be > 0 and finite: %g", fixed.ErrInvalidParameter, p.name, p.v)
		}
	}

	tfs := timeConstant * sampleRateHz

	return &Reference{
		B0: gain / (1 + tfs),
		A1: tfs / (1 + tfs),
	}, nil
}

// ProcessSample filters one sample.
func (r *Reference) ProcessSample(x float64) float64 {
	y := r.B0*x + r.A1*r.y1
	r.y1 = y

	return y
}

// Reset clears the filter state.
func (r *Reference) Reset() { r.y1 = 0 }

// StepResponse returns n samples of the response to a constant input,
// starting from zero state. The state is saved and restored.
func (r *Reference) StepResponse(n int, amplitude float64) []float64 {
	if n <= 0 {
		return nil
	}

	saved := r.y1
	r.Reset()

	out := make([]float64, n)
	for i := range out {
		out[i] = r.ProcessSample(amplitude)
	}

	r.y1 = saved

	return out
}

// Response computes H(e^jw) = B0 / (1 − A1·e^−jw) at freqHz.
func (r *Reference) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))

	return complex(r.B0, 0) / (1 - complex(r.A1, 0)*ejw)
}

// MagnitudeDB returns 20·log10|H(f)|.
func (r *Reference) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return ampToDB(cmplx.Abs(r.Response(freqHz, sampleRate)))
}

// DCGain returns the static gain B0/(1−A1).
func (r *Reference) DCGain() float64 {
	return r.B0 / (1 - r.A1)
}

// ampToDB converts an amplitude to decibels. Returns -Inf for zero.
func ampToDB(v float64) float64 {
	if v == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(math.Abs(v))
}
