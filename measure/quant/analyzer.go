package quant

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fixed/dsp/filter/fixed"
)

const (
	defaultSamples = 401
	defaultFFTSize = 1024

	// settleTolerance is the relative band around the target a step
	// response has to stay in to count as settled.
	settleTolerance = 0.02
)

// ErrInvalidOption reports an out-of-range analyzer option.
var ErrInvalidOption = errors.New("quant: invalid option")

// Option configures an Analyzer.
type Option func(*config) error

type config struct {
	samples   int
	amplitude uint32
	fftSize   int
}

// WithSamples sets the step response length. Must be > 0.
func WithSamples(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: samples must be > 0: %d", ErrInvalidOption, n)
		}

		cfg.samples = n

		return nil
	}
}

// WithAmplitude sets the step amplitude in sample units. Must be > 0.
func WithAmplitude(amplitude uint32) Option {
	return func(cfg *config) error {
		if amplitude == 0 {
			return fmt.Errorf("%w: amplitude must be > 0", ErrInvalidOption)
		}

		cfg.amplitude = amplitude

		return nil
	}
}

// WithFFTSize sets the impulse response length analyzed by Frequency.
// Must be a power of two >= 2.
func WithFFTSize(n int) Option {
	return func(cfg *config) error {
		if n < 2 || n&(n-1) != 0 {
			return fmt.Errorf("%w: FFT size must be a power of two >= 2: %d", ErrInvalidOption, n)
		}

		cfg.fftSize = n

		return nil
	}
}

// Analyzer compares a fixed-point PT1 against its floating-point reference.
type Analyzer struct {
	filter     *fixed.Filter
	reference  *Reference
	sampleRate float64
	sampleBits uint

	samples   int
	amplitude uint32
	fftSize   int

	plan *algofft.Plan[complex128]
}

// New derives a fixed-point PT1 for the given layout and prepares its
// reference. Derivation errors are returned unchanged, so
// errors.Is(err, fixed.ErrConfig) identifies infeasible layouts.
func New(gain, timeConstant, sampleRateHz float64, sampleBits, extraBits uint, opts ...Option) (*Analyzer, error) {
	filter, err := fixed.NewPT1(gain, timeConstant, sampleRateHz, sampleBits, extraBits)
	if err != nil {
		return nil, err
	}

	reference, err := NewReference(gain, timeConstant, sampleRateHz)
	if err != nil {
		return nil, err
	}

	cfg := config{
		samples:   defaultSamples,
		amplitude: defaultAmplitude(sampleBits),
		fftSize:   defaultFFTSize,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	plan, err := algofft.NewPlan64(cfg.fftSize)
	if err != nil {
		return nil, fmt.Errorf("quant: failed to create FFT plan: %w", err)
	}

	return &Analyzer{
		filter:     filter,
		reference:  reference,
		sampleRate: sampleRateHz,
		sampleBits: sampleBits,
		samples:    cfg.samples,
		amplitude:  cfg.amplitude,
		fftSize:    cfg.fftSize,
		plan:       plan,
	}, nil
}

// defaultAmplitude is 125/128 of full scale, 4000 for a 12-bit converter.
func defaultAmplitude(sampleBits uint) uint32 {
	a := uint32((uint64(1) << sampleBits) * 125 / 128)
	if a == 0 {
		return 1
	}

	return a
}

// Filter returns the fixed-point filter under test.
func (a *Analyzer) Filter() *fixed.Filter { return a.filter }

// Reference returns the floating-point reference.
func (a *Analyzer) Reference() *Reference { return a.reference }

// Amplitude returns the step amplitude in sample units.
func (a *Analyzer) Amplitude() uint32 { return a.amplitude }

// StepResult holds the time-domain comparison of both step responses.
type StepResult struct {
	Fixed     []uint32
	Reference []float64

	Target            float64 // steady-state value, gain·amplitude
	FinalValue        uint32
	FinalError        float64 // FinalValue − Target
	FinalErrorPercent float64
	MaxAbsError       float64 // max |fixed − reference|
	RMSError          float64
	SettledAt         int // first index from which fixed stays within 2% of Target, -1 if never
}

// Step runs both filters on a constant input from zero state.
func (a *Analyzer) Step() StepResult {
	fx := a.filter.StepResponse(a.samples, a.amplitude)
	ref := a.reference.StepResponse(a.samples, float64(a.amplitude))

	target := a.reference.DCGain() * float64(a.amplitude)

	res := StepResult{
		Fixed:      fx,
		Reference:  ref,
		Target:     target,
		FinalValue: fx[len(fx)-1],
		SettledAt:  -1,
	}

	res.FinalError = float64(res.FinalValue) - target
	if target != 0 {
		res.FinalErrorPercent = 100 * res.FinalError / target
	}

	var sumSq float64

	band := settleTolerance * math.Abs(target)
	for i := range fx {
		d := float64(fx[i]) - ref[i]
		sumSq += d * d
		res.MaxAbsError = math.Max(res.MaxAbsError, math.Abs(d))

		inBand := math.Abs(float64(fx[i])-target) <= band
		switch {
		case inBand && res.SettledAt < 0:
			res.SettledAt = i
		case !inBand:
			res.SettledAt = -1
		}
	}

	res.RMSError = math.Sqrt(sumSq / float64(len(fx)))

	return res
}

// FrequencyResult compares the spectrum of the fixed-point impulse
// response with the analytic reference magnitude, per FFT bin from DC to
// Nyquist.
type FrequencyResult struct {
	FrequenciesHz []float64
	MeasuredDB    []float64
	ReferenceDB   []float64

	DCGainDB       float64
	MaxDeviationDB float64
	MaxDeviationHz float64
}

// Frequency feeds a full-scale impulse through the fixed-point filter,
// transforms the normalized response and compares it bin by bin with the
// reference. Bins where the measured response is exactly zero are skipped
// when searching the maximum deviation.
func (a *Analyzer) Frequency() (FrequencyResult, error) {
	n := a.fftSize
	impulse := uint32(uint64(1)<<a.sampleBits - 1)
	if impulse == 0 {
		impulse = 1
	}

	ir := a.filter.ImpulseResponse(n, impulse)

	in := make([]complex128, n)
	for i, v := range ir {
		in[i] = complex(float64(v)/float64(impulse), 0)
	}

	spec := make([]complex128, n)
	if err := a.plan.Forward(spec, in); err != nil {
		return FrequencyResult{}, fmt.Errorf("quant: forward FFT failed: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(spec[k])
		im[k] = imag(spec[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	res := FrequencyResult{
		FrequenciesHz: make([]float64, bins),
		MeasuredDB:    make([]float64, bins),
		ReferenceDB:   make([]float64, bins),
	}

	binHz := a.sampleRate / float64(n)
	for k := range bins {
		f := float64(k) * binHz
		res.FrequenciesHz[k] = f
		res.MeasuredDB[k] = ampToDB(mag[k])
		res.ReferenceDB[k] = a.reference.MagnitudeDB(f, a.sampleRate)

		if math.IsInf(res.MeasuredDB[k], -1) {
			continue
		}

		if d := math.Abs(res.MeasuredDB[k] - res.ReferenceDB[k]); d > res.MaxDeviationDB {
			res.MaxDeviationDB = d
			res.MaxDeviationHz = f
		}
	}

	res.DCGainDB = res.MeasuredDB[0]

	return res, nil
}
