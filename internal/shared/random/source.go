// Package random provides the injectable random-number source used by scene
// generation and body inspection.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the set of draws the generator and inspector need.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// Locked wraps a math/rand generator so it can be shared between request
// handlers and animation goroutines.
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a source seeded with seed, or with the current time when seed is 0.
func New(seed int64) *Locked {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Locked{rng: rand.New(rand.NewSource(seed))}
}

func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *Locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// Choice returns a uniformly drawn element of items.
func Choice[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

// Between returns a uniform value in [min, max).
func Between(src Source, min, max float64) float64 {
	return src.Float64()*(max-min) + min
}
