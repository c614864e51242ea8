package fixed

import (
	"testing"

	"github.com/cwbudde/algo-fixed/internal/testutil"
)

func BenchmarkProcessSample(b *testing.B) {
	f, err := NewPT1(1, 0.3, 100, 12, 4)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	var y uint32
	for i := 0; i < b.N; i++ {
		y = f.ProcessSample(uint32(i) & 0xfff)
	}

	_ = y
}

func BenchmarkProcessBlock(b *testing.B) {
	f, err := NewPT1(1, 0.3, 100, 12, 4)
	if err != nil {
		b.Fatal(err)
	}

	buf := testutil.DeterministicNoise(1, 12, 1024)

	b.SetBytes(int64(len(buf) * 4))
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		f.ProcessBlock(buf)
	}
}
