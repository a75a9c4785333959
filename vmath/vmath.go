package vmath

import "math"

// Epsilon is the default tolerance for float comparisons in tests and geometry guards
const Epsilon = 1e-9

// ApproxEqual reports whether a and b differ by at most tol
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether f is neither NaN nor infinite
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// --- Randomness ---

// Source is the single random source injected into the simulation
// *FastRand and *math/rand.Rand both satisfy it
type Source interface {
	Float64() float64
	Intn(n int) int
}

// FastRand is a xorshift64 generator, deterministic for a given seed
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator; zero seed is remapped since xorshift stalls at zero
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a uniform value in [0, 1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a uniform value in [lo, hi) drawn from src
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
