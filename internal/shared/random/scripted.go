package random

import (
	"fmt"
	"sync"
)

// Scripted replays fixed draws in order. Float64 and Intn keep separate
// queues; once a queue is exhausted its last value repeats. Ints are taken
// modulo n so a script stays valid for any pool size.
type Scripted struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
	fi, ii int
}

func NewScripted(floats []float64, ints []int) *Scripted {
	for _, f := range floats {
		if f < 0 || f >= 1 {
			panic(fmt.Sprintf("random: scripted float %v outside [0, 1)", f))
		}
	}
	return &Scripted{floats: floats, ints: ints}
}

func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[min(s.fi, len(s.floats)-1)]
	s.fi++
	return v
}

func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[min(s.ii, len(s.ints)-1)]
	s.ii++
	return ((v % n) + n) % n
}

// Draws reports how many floats and ints have been consumed.
func (s *Scripted) Draws() (floats, ints int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fi, s.ii
}
