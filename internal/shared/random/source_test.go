package random

import (
	"sync"
	"testing"
)

func TestLockedSeedIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 50; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("Expected identical float sequence at draw %d", i)
		}
		if a.Intn(11) != b.Intn(11) {
			t.Fatalf("Expected identical int sequence at draw %d", i)
		}
	}
}

func TestLockedConcurrentUse(t *testing.T) {
	src := New(7)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				if v := src.Float64(); v < 0 || v >= 1 {
					t.Errorf("Float64 out of range: %v", v)
					return
				}
				if v := src.Intn(5); v < 0 || v >= 5 {
					t.Errorf("Intn out of range: %v", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestChoiceAndBetween(t *testing.T) {
	src := NewScripted([]float64{0.5}, []int{2})

	if got := Choice(src, []string{"Rocky", "Gas Giant", "Ice Giant"}); got != "Ice Giant" {
		t.Errorf("Expected Ice Giant, got %s", got)
	}
	if got := Between(src, 10, 40); got != 25 {
		t.Errorf("Expected 25, got %v", got)
	}
}

func TestScripted(t *testing.T) {
	src := NewScripted([]float64{0.1, 0.2}, []int{3, 12, -1})

	if got := src.Float64(); got != 0.1 {
		t.Errorf("Expected 0.1, got %v", got)
	}
	if got := src.Float64(); got != 0.2 {
		t.Errorf("Expected 0.2, got %v", got)
	}
	if got := src.Float64(); got != 0.2 {
		t.Errorf("Expected last float to repeat, got %v", got)
	}

	if got := src.Intn(10); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := src.Intn(10); got != 2 {
		t.Errorf("Expected 12 mod 10 = 2, got %d", got)
	}
	if got := src.Intn(10); got != 9 {
		t.Errorf("Expected -1 wrapped to 9, got %d", got)
	}

	floats, ints := src.Draws()
	if floats != 3 || ints != 3 {
		t.Errorf("Expected 3 float and 3 int draws, got %d and %d", floats, ints)
	}
}

func TestScriptedRejectsOutOfRangeFloat(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for float 1.0")
		}
	}()
	NewScripted([]float64{1.0}, nil)
}
