// Package randutil centralises how seeds become random sources, so
// every shuffle and strategy roll is reproducible from one int64.
package randutil

import "math/rand"

// New returns a *rand.Rand seeded deterministically from the provided
// int64. The seed is avalanche-mixed first; callers hand out adjacent
// seeds (base+0, base+1, ...) to parallel sessions and the mix keeps
// their streams decorrelated.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(int64(mix(uint64(seed)))))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
