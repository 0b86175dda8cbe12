package trace

// nopSink discards every line.
type nopSink struct{}

// WriteLine does nothing.
func (nopSink) WriteLine(string) error { return nil }

// Flush does nothing.
func (nopSink) Flush() error { return nil }

// Close does nothing.
func (nopSink) Close() error { return nil }

// Nop is the package-level singleton sink that discards everything.
var Nop Sink = nopSink{}
