package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"
)

// Rand is the random source every roll in a game is drawn from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
	NormFloat64() float64
}

// NewRand returns a seeded source owned by a single game
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a seed using crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func mustSeed() int64 {
	seed, err := NewSeed()
	if err != nil {
		return time.Now().UnixNano()
	}
	return seed
}

// chance rolls true with probability p
func chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// randInt returns a uniform integer in [lo, hi]
func randInt(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func gauss(r Rand, mean, sd float64) float64 {
	return mean + sd*r.NormFloat64()
}

// weightedIndex picks an index proportionally to weights. A zero total
// falls through to the first entry.
func weightedIndex(r Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	pick := r.Float64() * total
	for i, w := range weights {
		pick -= w
		if pick <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

func weightedChoice[T any](r Rand, items []T, weights []float64) T {
	return items[weightedIndex(r, weights)]
}

// weightedSample draws k items without replacement
func weightedSample[T any](r Rand, items []T, weights []float64, k int) []T {
	pool := append([]T(nil), items...)
	pw := append([]float64(nil), weights...)
	out := make([]T, 0, k)
	for i := 0; i < k && len(pool) > 0; i++ {
		idx := weightedIndex(r, pw)
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
		pw = append(pw[:idx], pw[idx+1:]...)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
