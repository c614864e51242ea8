package testutil

import "math/rand"

// Step generates a constant integer signal.
func Step(value uint32, length int) []uint32 {
	out := make([]uint32, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Impulse generates an impulse of the given amplitude at pos.
func Impulse(amplitude uint32, length, pos int) []uint32 {
	out := make([]uint32, length)
	if pos >= 0 && pos < length {
		out[pos] = amplitude
	}
	return out
}

// DeterministicNoise generates uniformly distributed samples of the given
// bit width with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, bits uint, length int) []uint32 {
	out := make([]uint32, length)
	rng := rand.New(rand.NewSource(seed))
	mask := uint32(1)<<bits - 1
	if bits >= 32 {
		mask = ^uint32(0)
	}
	for i := range out {
		out[i] = rng.Uint32() & mask
	}
	return out
}
