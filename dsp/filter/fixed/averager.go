package fixed

import "fmt"

// MaxAverageLog2 is the largest block length exponent an Averager accepts.
const MaxAverageLog2 = 16

// Averager is a decimating block averager: it sums 2^log2Count samples and
// publishes their mean by shifting, then starts over. The sum is kept in an
// unsigned 32-bit register and wraps on overflow.
type Averager struct {
	log2Count uint8
	count     uint32
	acc       uint32
	value     uint32
}

// NewAverager returns an averager over blocks of 2^log2Count samples.
func NewAverager(log2Count uint8) (*Averager, error) {
	if log2Count > MaxAverageLog2 {
		return nil, fmt.Errorf("%w: averaging block 2^%d exceeds 2^%d", ErrConfig, log2Count, MaxAverageLog2)
	}

	return &Averager{log2Count: log2Count}, nil
}

// Add accumulates one sample. When a block completes it returns the new
// mean and true; otherwise it returns the last published mean and false.
func (a *Averager) Add(x uint32) (uint32, bool) {
	a.count++
	a.acc += x

	if a.count < 1<<a.log2Count {
		return a.value, false
	}

	a.value = a.acc >> a.log2Count
	a.count = 0
	a.acc = 0

	return a.value, true
}

// Value returns the most recently published mean.
func (a *Averager) Value() uint32 { return a.value }

// Count returns how many samples the current block holds.
func (a *Averager) Count() int { return int(a.count) }

// BlockLen returns the number of samples per published mean.
func (a *Averager) BlockLen() int { return 1 << a.log2Count }

// Reset discards the partial block and the published mean.
func (a *Averager) Reset() {
	a.count = 0
	a.acc = 0
	a.value = 0
}
