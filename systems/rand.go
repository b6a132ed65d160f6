package systems

import "math/rand"

// Rand is the random source behind the stylistic jitter in field injection,
// field decay and body acceleration. *rand.Rand satisfies it; tests pass
// deterministic sources.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewRand returns a seeded process-wide random source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
