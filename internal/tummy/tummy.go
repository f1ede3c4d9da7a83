// Package tummy holds the bounded, insertion-ordered buffer of accepted facts.
package tummy

import "github.com/numbercruncher/numbercruncher/pkg/types"

// Tummy is a fixed-capacity ring buffer of facts. When full, Push evicts the
// oldest fact to make room for the newest. It is not safe for concurrent use.
type Tummy struct {
	buf  []types.Fact
	head int // index of the oldest fact
	size int
}

// New creates an empty Tummy holding at most capacity facts.
// It panics if capacity is not positive.
func New(capacity int) *Tummy {
	if capacity <= 0 {
		panic("tummy: capacity must be positive")
	}
	return &Tummy{buf: make([]types.Fact, capacity)}
}

// Push appends f as the newest fact. If the tummy was full, the oldest fact
// is evicted and returned with ok set to true.
func (t *Tummy) Push(f types.Fact) (evicted types.Fact, ok bool) {
	if t.size < len(t.buf) {
		t.buf[(t.head+t.size)%len(t.buf)] = f
		t.size++
		return types.Fact{}, false
	}
	// Full: the slot holding the oldest fact becomes the newest.
	evicted = t.buf[t.head]
	t.buf[t.head] = f
	t.head = (t.head + 1) % len(t.buf)
	return evicted, true
}

// Items returns a copy of the contents, oldest first.
func (t *Tummy) Items() []types.Fact {
	out := make([]types.Fact, t.size)
	for i := range out {
		out[i] = t.buf[(t.head+i)%len(t.buf)]
	}
	return out
}

// Len returns the number of facts held.
func (t *Tummy) Len() int { return t.size }

// Cap returns the maximum number of facts held.
func (t *Tummy) Cap() int { return len(t.buf) }

// Full reports whether the next Push will evict.
func (t *Tummy) Full() bool { return t.size == len(t.buf) }
