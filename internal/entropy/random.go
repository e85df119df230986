// Package entropy provides the randomness source behind combat rolls and
// opponent-policy dice. A seeded Source replays identically, which keeps
// whole campaigns reproducible; a nil Source falls back to crypto/rand.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"sync"
)

// Source yields uniform random values. Safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSource creates a seeded source. The same seed yields the same draw
// sequence.
func NewSource(seed int64) *Source {
	return &Source{rng: mrand.New(mrand.NewSource(seed))}
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	if s == nil {
		return cryptoRandFloat()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Intn returns a uniform value in [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	if s == nil {
		return int(cryptoRandFloat() * float64(n))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}

// cryptoRandFloat generates a uniform float64 in [0, 1) from crypto/rand.
func cryptoRandFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 is a safe neutral draw.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}
