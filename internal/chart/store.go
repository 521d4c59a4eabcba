package chart

import (
	"fxticker/pkg/forex"
)

// Store owns one Buffer per tracked pair. Buffers are created once at
// startup and live for the process duration, so the map itself is never
// mutated after construction and needs no locking of its own.
type Store struct {
	order   []forex.Pair
	buffers map[forex.Pair]*Buffer
}

func NewStore(pairs []forex.Pair, maxSamples int) *Store {
	s := &Store{
		order:   make([]forex.Pair, 0, len(pairs)),
		buffers: make(map[forex.Pair]*Buffer, len(pairs)),
	}
	for _, p := range pairs {
		if _, ok := s.buffers[p]; ok {
			continue
		}
		s.order = append(s.order, p)
		s.buffers[p] = NewBuffer(p, maxSamples)
	}
	return s
}

// Get returns the buffer for a pair, or nil if the pair is not tracked.
func (s *Store) Get(pair forex.Pair) *Buffer {
	return s.buffers[pair]
}

// Pairs returns the tracked pairs in configuration order.
func (s *Store) Pairs() []forex.Pair {
	out := make([]forex.Pair, len(s.order))
	copy(out, s.order)
	return out
}

// Buffers returns the buffers in configuration order.
func (s *Store) Buffers() []*Buffer {
	out := make([]*Buffer, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, s.buffers[p])
	}
	return out
}
