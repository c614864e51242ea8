// Command pt1info prints the fixed-point coefficients of a PT1 low-pass and
// how far its integer step and frequency responses stray from the ideal
// filter, for one or more guard-bit counts.
//
// Usage:
//
//	pt1info [flags] [extra-bits ...]
//
// Without arguments it prints every feasible guard-bit count for the
// sample width.
//
// Examples:
//
//	pt1info
//	pt1info -bits 12 -tau 0.3 -fs 100 0 2 4
//	pt1info -gain 2 -bits 10 -samples 1000 3
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-fixed/dsp/filter/fixed"
	"github.com/cwbudde/algo-fixed/measure/quant"
)

type params struct {
	gain, tau, fs float64
	bits          uint
	samples       int
	amplitude     uint
	fftSize       int
}

type row struct {
	extra uint
	coeff fixed.Coefficients
	scale fixed.Scale
	step  quant.StepResult
	freq  quant.FrequencyResult
	err   error
}

func main() {
	var p params

	flag.Float64Var(&p.gain, "gain", 1, "static gain G")
	flag.Float64Var(&p.tau, "tau", 0.3, "time constant in seconds")
	flag.Float64Var(&p.fs, "fs", 100, "sample rate in Hz")
	flag.UintVar(&p.bits, "bits", 12, "sample width in bits")
	flag.IntVar(&p.samples, "samples", 401, "step response length in samples")
	flag.UintVar(&p.amplitude, "amp", 0, "step amplitude (0 = 125/128 of full scale)")
	flag.IntVar(&p.fftSize, "fft", 1024, "impulse response length for the spectrum, power of two")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pt1info [flags] [extra-bits ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints fixed-point PT1 coefficients and quantization error.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints every feasible guard-bit count.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pt1info -bits 12 -tau 0.3 -fs 100 0 2 4\n")
		fmt.Fprintf(os.Stderr, "  pt1info -gain 2 -bits 10 -samples 1000 3\n")
	}
	flag.Parse()

	extras, err := parseExtraBits(flag.Args(), p.bits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := checkAmplitude(p.amplitude); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	rows := analyze(p, extras)
	if err := printTable(os.Stdout, rows); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	for _, r := range rows {
		if r.err == nil {
			return
		}
	}

	os.Exit(1)
}

// parseExtraBits returns the requested guard-bit counts, or all counts the
// sample width leaves room for.
func parseExtraBits(args []string, bits uint) ([]uint, error) {
	if len(args) == 0 {
		if bits > fixed.MaxSampleBits {
			return []uint{0}, nil
		}

		extras := make([]uint, 0, fixed.WorkingBits-bits+1)
		for e := uint(0); e <= fixed.WorkingBits-bits; e++ {
			extras = append(extras, e)
		}

		return extras, nil
	}

	extras := make([]uint, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseUint(a, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid extra-bits %q: %w", a, err)
		}

		extras = append(extras, uint(v))
	}

	return extras, nil
}

// checkAmplitude rejects step amplitudes that do not fit a 32-bit sample.
func checkAmplitude(amplitude uint) error {
	if uint64(amplitude) > math.MaxUint32 {
		return fmt.Errorf("invalid amplitude %d: exceeds %d", amplitude, uint32(math.MaxUint32))
	}

	return nil
}

func analyze(p params, extras []uint) []row {
	opts := []quant.Option{quant.WithSamples(p.samples), quant.WithFFTSize(p.fftSize)}
	if p.amplitude > 0 {
		opts = append(opts, quant.WithAmplitude(uint32(p.amplitude)))
	}

	rows := make([]row, 0, len(extras))
	for _, e := range extras {
		r := row{extra: e}

		a, err := quant.New(p.gain, p.tau, p.fs, p.bits, e, opts...)
		if err != nil {
			r.err = err
			rows = append(rows, r)

			continue
		}

		r.coeff = a.Filter().Coefficients()
		r.scale = a.Filter().Scale()
		r.step = a.Step()
		r.freq, r.err = a.Frequency()
		rows = append(rows, r)
	}

	return rows
}

func printTable(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Extra\tA1\tB0\tShift\tFinal\tFinal Err [%%]\tRMS Err\tSettled\tDC [dB]\tMax Dev [dB]\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "-----\t--\t--\t-----\t-----\t-------------\t-------\t-------\t-------\t------------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, r := range rows {
		var err error
		if r.err != nil {
			_, err = fmt.Fprintf(tw, "%d\terror: %v\n", r.extra, r.err)
		} else {
			_, err = fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%+.3f\t%.3f\t%d\t%+.3f\t%.3f\n",
				r.extra,
				r.coeff.A1,
				r.coeff.B0,
				r.scale.Shift(),
				r.step.FinalValue,
				r.step.FinalErrorPercent,
				r.step.RMSError,
				r.step.SettledAt,
				r.freq.DCGainDB,
				r.freq.MaxDeviationDB,
			)
		}
		if err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
