package trace

import "errors"

// MultiSink fans out lines to multiple sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a new MultiSink that writes to all provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// WriteLine sends the line to every underlying sink, even after a failure.
func (m *MultiSink) WriteLine(line string) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.WriteLine(line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Flush flushes all underlying sinks.
func (m *MultiSink) Flush() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes all underlying sinks.
func (m *MultiSink) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
