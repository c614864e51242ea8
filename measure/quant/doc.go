// Package quant measures how closely a fixed-point filter from
// dsp/filter/fixed follows the floating-point PT1 it approximates.
//
// [Reference] is the ideal discrete PT1
//
//	y[n] = β·x[n] + α·y[n−1],   α = τ·fs/(1+τ·fs),  β = G/(1+τ·fs)
//
// evaluated in float64. An [Analyzer] runs a derived integer filter and the
// reference side by side and reports time-domain step error ([StepResult])
// and the deviation of the integer impulse response's spectrum from the
// analytic magnitude response ([FrequencyResult]).
//
// Wraparound in the integer filter is silent by design; comparing against
// the reference here is the intended way to detect it.
package quant
