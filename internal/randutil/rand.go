// Package randutil derives reproducible random sources for simulations.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from seed. Every shoe in
// a simulation draws from one of these so a run can be replayed exactly.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns a seed for the index'th independent run spawned from a
// base seed. Runs in a sweep share nothing, including their random streams.
func Derive(seed int64, index int) int64 {
	return int64(mix(uint64(seed) + uint64(index+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
