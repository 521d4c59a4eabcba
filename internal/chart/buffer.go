package chart

import (
	"sync"
	"time"

	"fxticker/pkg/forex"
)

// Sample is one (timestamp, rate) observation. Immutable once created.
type Sample struct {
	Time time.Time `json:"t"`
	Rate float64   `json:"rate"`
}

// Buffer holds the recent samples for one currency pair. It keeps at most
// maxSamples entries, evicting the oldest first, and carries the pause flag
// the poller consults before fetching. Poller goroutines append while the
// UI server reads, so every access goes through the mutex.
type Buffer struct {
	mu         sync.Mutex
	pair       forex.Pair
	samples    []Sample
	maxSamples int
	paused     bool
}

func NewBuffer(pair forex.Pair, maxSamples int) *Buffer {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &Buffer{
		pair:       pair,
		samples:    make([]Sample, 0, maxSamples),
		maxSamples: maxSamples,
	}
}

func (b *Buffer) Pair() forex.Pair {
	return b.pair
}

// Append adds a sample, evicting the oldest one when full. Samples must
// arrive in timestamp order; one that is not after the current last sample
// is dropped so the sequence stays strictly ascending.
func (b *Buffer) Append(s Sample) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n := len(b.samples); n > 0 && !s.Time.After(b.samples[n-1].Time) {
		return false
	}

	if len(b.samples) == b.maxSamples {
		copy(b.samples, b.samples[1:])
		b.samples = b.samples[:b.maxSamples-1]
	}
	b.samples = append(b.samples, s)
	return true
}

// Snapshot returns a copy of the current samples, oldest first.
func (b *Buffer) Snapshot() []Sample {
	b.mu.Lock()
	defer b.mu.Unlock()

	cp := make([]Sample, len(b.samples))
	copy(cp, b.samples)
	return cp
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

// Last returns the most recent sample, if any.
func (b *Buffer) Last() (Sample, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.samples) == 0 {
		return Sample{}, false
	}
	return b.samples[len(b.samples)-1], true
}

// Pause suspends appends for this buffer. Idempotent.
func (b *Buffer) Pause() {
	b.mu.Lock()
	b.paused = true
	b.mu.Unlock()
}

// Resume re-enables appends for this buffer. Idempotent.
func (b *Buffer) Resume() {
	b.mu.Lock()
	b.paused = false
	b.mu.Unlock()
}

func (b *Buffer) Paused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paused
}
