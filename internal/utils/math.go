package utils

import (
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniformly distributed values in [0, 1).
// Game logic takes one of these instead of calling the global generator
// so tests can feed fixed draws.
type RandomSource interface {
	Float64() float64
}

// RandomFunc adapts a plain function to RandomSource
type RandomFunc func() float64

// Float64 implements RandomSource
func (f RandomFunc) Float64() float64 { return f() }

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// NewRandomSource returns a source backed by the process-wide generator
func NewRandomSource() RandomSource {
	return globalSource{}
}

type seededSource struct {
	r *rand.Rand
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

// NewSeededSource returns a reproducible PCG-backed source.
// Not safe for concurrent use.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec // reproducible simulation
}

type lockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// NewLockedSource serializes access to src so services can share it
func NewLockedSource(src RandomSource) RandomSource {
	return &lockedSource{src: src}
}

// FixedSource replays the given values in order and then repeats the last one.
// Useful for forcing draws in tests and simulations.
func FixedSource(values ...float64) RandomSource {
	i := 0
	return RandomFunc(func() float64 {
		if len(values) == 0 {
			return 0
		}
		v := values[min(i, len(values)-1)]
		i++
		return v
	})
}

// RandomFloat returns a random float64 between 0.0 and 1.0
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.IntN(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt64From draws an integer between min and max (inclusive) from src
func RandomInt64From(src RandomSource, min, max int64) int64 {
	if min >= max {
		return min
	}
	span := max - min + 1
	n := int64(src.Float64() * float64(span))
	// Float rounding can land exactly on span for values very close to 1
	if n >= span {
		n = span - 1
	}
	if n < 0 {
		n = 0
	}
	return min + n
}
