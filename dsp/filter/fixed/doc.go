// Package fixed emulates the integer-only recursive filters that small
// microcontrollers run instead of floating-point IIR sections.
//
// A [Filter] holds integer [Coefficients], a [Scale] describing the
// fixed-point layout, and a three-tap input/output history ([State]).
// Coefficients for a first-order low-pass (PT1) are derived with
// [Filter.DerivePT1] from gain, time constant and sample rate:
//
//	α  = τ·fs / (1 + τ·fs)      A1 = ⌊α · 2^(BaseShift−ResultShift)⌋
//	β  = G / (1 + τ·fs)         B0 = ⌊β · 2^BaseShift⌋
//
// where BaseShift = 28 − sampleBits aligns samples with a 28-bit working
// format and ResultShift is the number of guard bits kept in the output
// history. [Filter.ProcessSample] then evaluates
//
//	acc  = B0·x0 + B1·x1 + A1·y1 + A2·y2     (uint32, wraps)
//	y0   = acc >> (BaseShift − ResultShift)
//	out  = y0 >> ResultShift
//
// exactly as the firmware would. Overflow of the accumulator and of derived
// coefficients wraps modulo 2^32 and is never reported; compare against a
// floating-point reference (see measure/quant) to detect it.
//
// A Filter is not safe for concurrent use. Independent filters share no
// state.
package fixed
