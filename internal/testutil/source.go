package testutil

import "sync"

// SequenceSource is a scripted rng.Source. It returns the configured draws
// in order and then repeats the last one forever.
type SequenceSource struct {
	mu    sync.Mutex
	draws []float64
	next  int
}

// NewSequenceSource returns a source yielding draws in order.
// With no draws it always yields 0.
func NewSequenceSource(draws ...float64) *SequenceSource {
	return &SequenceSource{draws: draws}
}

// Float64 implements rng.Source.
func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.draws) == 0 {
		return 0
	}
	if s.next >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	f := s.draws[s.next]
	s.next++
	return f
}

// Consumed returns how many scripted draws have been handed out.
func (s *SequenceSource) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
