package trace

import (
	"io"
	"sync"
)

// StreamSink writes lines immediately to an io.Writer.
type StreamSink struct {
	mu  sync.Mutex
	w   io.Writer
	buf []byte
}

// NewStreamSink creates a new StreamSink.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

// WriteLine appends line and a newline with a single Write call.
func (s *StreamSink) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = append(s.buf[:0], line...)
	s.buf = append(s.buf, '\n')
	_, err := s.w.Write(s.buf)
	return err
}

// Flush ensures all buffered data is written.
// For StreamSink this only matters when the writer buffers.
func (s *StreamSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch f := s.w.(type) {
	case interface{ Flush() error }:
		return f.Flush()
	case interface{ Sync() error }:
		return f.Sync()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (s *StreamSink) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if closer, ok := s.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
