package trace

// Sink is an append-only destination for rendered lines.
type Sink interface {
	// WriteLine appends one line. The newline is added by the sink.
	// Must be goroutine-safe.
	WriteLine(line string) error

	// Flush ensures all buffered lines are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error
}
