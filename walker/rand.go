package walker

import "math/rand/v2"

// Rand is the walker's source of randomness.
type Rand interface {
	// IntN returns a value in [0, n). n must be > 0.
	IntN(n int) int
}

// NewRand returns a deterministic PCG-backed Rand.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
