package trace

import (
	"io"
	"sync"
)

// RingSink keeps the last N lines in memory (circular buffer).
type RingSink struct {
	mu       sync.RWMutex
	lines    []string
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
}

// NewRingSink creates a new RingSink with specified capacity.
func NewRingSink(capacity int) *RingSink {
	if capacity <= 0 {
		capacity = 4096
	}

	return &RingSink{
		lines:    make([]string, capacity),
		capacity: capacity,
	}
}

// WriteLine adds a line to the ring buffer.
func (r *RingSink) WriteLine(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[r.head] = line
	r.head = (r.head + 1) % r.capacity

	if r.head == 0 {
		r.full = true
	}
	return nil
}

// Snapshot returns a copy of all stored lines in write order.
func (r *RingSink) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.full {
		result := make([]string, r.head)
		copy(result, r.lines[:r.head])
		return result
	}

	// Wrapped - return [head:capacity] + [0:head]
	result := make([]string, r.capacity)
	copy(result, r.lines[r.head:])
	copy(result[r.capacity-r.head:], r.lines[:r.head])
	return result
}

// Dump writes all stored lines to w, one per line.
func (r *RingSink) Dump(w io.Writer) error {
	for _, line := range r.Snapshot() {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op for RingSink since everything is in memory.
func (r *RingSink) Flush() error {
	return nil
}

// Close is a no-op for RingSink.
func (r *RingSink) Close() error {
	return nil
}
