package adapters

import "math/rand"

// RNG is the uniform [0,1) source the core draws all randomness from.
// Injecting it lets a host seed determinism off its own game state, so
// actor processing order and every role decision replay identically given
// the same seed.
type RNG interface {
	Float64() float64
}

// MathRandRNG adapts math/rand.Rand to the RNG interface — the default used
// by the CLI demo and by tests that don't need a specific seed.
type MathRandRNG struct {
	r *rand.Rand
}

func NewMathRandRNG(seed int64) *MathRandRNG {
	return &MathRandRNG{r: rand.New(rand.NewSource(seed))}
}

func (m *MathRandRNG) Float64() float64 { return m.r.Float64() }

// IntN returns a uniform int in [0,n) using the RNG. Kept as a free function
// (not a method on the interface) so RNG stays a single-method adapter
// contract.
func IntN(r RNG, n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// Chance reports true with probability p, consuming one RNG draw.
func Chance(r RNG, p float64) bool {
	return r.Float64() < p
}

// Shuffle performs a fresh Fisher-Yates shuffle of indices [0,n) using r.
func Shuffle(r RNG, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := IntN(r, i+1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}
