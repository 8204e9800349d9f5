package rng

import (
	"math/rand"
	"sync"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a deterministic generator
// This should only be used by tests and replays. Production shuffles use Crypto.
// It is safe to share between tables.
type Seeded struct {
	lock sync.Mutex
	rng  *rand.Rand
}

// NewSeeded returns a deterministic generator for the seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rng: rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.rng.Intn(n)
}
