// Package randutil centralises how the engine derives its random sources.
package randutil

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so a single number recorded in
// a log is enough to replay a shuffle.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns the explicit seed when one is configured, otherwise a seed
// derived from the clock. The second value reports whether the seed was
// explicit.
func Seed(explicit *int64, clock quartz.Clock) (int64, bool) {
	if explicit != nil {
		return *explicit, true
	}
	return clock.Now().UnixNano(), false
}

// Split derives an independent child generator from a parent, used when a
// simulation hands each worker its own stream.
func Split(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(mix(parent.Uint64()), mix(parent.Uint64())))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
