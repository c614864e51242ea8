package main

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-fixed/dsp/filter/fixed"
)

func TestParseExtraBits(t *testing.T) {
	got, err := parseExtraBits(nil, 26)
	if err != nil {
		t.Fatalf("parseExtraBits: %v", err)
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Fatalf("default extras = %v, want [0 1 2]", got)
	}

	got, err = parseExtraBits([]string{"4", "0"}, 12)
	if err != nil {
		t.Fatalf("parseExtraBits: %v", err)
	}
	if len(got) != 2 || got[0] != 4 || got[1] != 0 {
		t.Fatalf("extras = %v, want [4 0]", got)
	}

	if _, err := parseExtraBits([]string{"-1"}, 12); err == nil {
		t.Fatal("expected error for negative extra bits")
	}
	if got, _ := parseExtraBits(nil, 40); len(got) != 1 {
		t.Fatalf("oversized width extras = %v, want one entry", got)
	}
}

func TestAnalyzeAndPrint(t *testing.T) {
	p := params{gain: 1, tau: 0.3, fs: 100, bits: 12, samples: 401, fftSize: 1024}
	rows := analyze(p, []uint{0, 17})

	if rows[0].err != nil {
		t.Fatalf("row 0: %v", rows[0].err)
	}
	if rows[0].coeff.A1 != 63421 || rows[0].step.FinalValue != 3968 {
		t.Fatalf("row 0 = %+v", rows[0].coeff)
	}
	if !errors.Is(rows[1].err, fixed.ErrConfig) {
		t.Fatalf("row 1 error = %v, want ErrConfig", rows[1].err)
	}

	var buf bytes.Buffer
	if err := printTable(&buf, rows); err != nil {
		t.Fatalf("printTable: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Extra", "63421", "3968", "infeasible fixed-point layout"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrintTable_WriteError(t *testing.T) {
	p := params{gain: 1, tau: 0.3, fs: 100, bits: 12, samples: 10, fftSize: 64}
	err := printTable(failingWriter{}, analyze(p, []uint{0}))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("error = %v, want write failure", err)
	}
}

func TestCheckAmplitude(t *testing.T) {
	tests := []struct {
		amplitude uint64
		ok        bool
	}{
		{0, true},
		{4000, true},
		{math.MaxUint32, true},
		{math.MaxUint32 + 1, false},
		{1<<32 + 1, false},
	}
	for _, tt := range tests {
		err := checkAmplitude(uint(tt.amplitude))
		if (err == nil) != tt.ok {
			t.Errorf("checkAmplitude(%d) error = %v, want ok=%v", tt.amplitude, err, tt.ok)
		}
	}
}
