// Package observ builds the process diagnostics logger. It is separate from
// the trace log: it reports heartlog's own problems (sink failures, stalls).
package observ

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"heartlog/internal/trace"
)

// NewLogger returns a console logger writing to w. verbose enables debug
// output.
func NewLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core).Named("heartlog")
}

// StallReporter returns a watchdog callback that logs each stall as a
// warning.
func StallReporter(log *zap.Logger) func(trace.Stall) {
	return func(s trace.Stall) {
		log.Warn("instrumented call has not returned",
			zap.Int("turn", s.Turn),
			zap.Int("depth", s.Depth),
			zap.Duration("for", s.For),
		)
	}
}

// Recorder wraps a trace.Recorder and logs failed writes.
type Recorder struct {
	next trace.Recorder
	log  *zap.Logger
}

// LogFailures returns next wrapped so that every failed record is logged.
// Errors are still returned to the caller.
func LogFailures(next trace.Recorder, log *zap.Logger) *Recorder {
	return &Recorder{next: next, log: log}
}

// EmitTrace forwards ev and logs a failure.
func (r *Recorder) EmitTrace(ev trace.TraceEvent) error {
	err := r.next.EmitTrace(ev)
	if err != nil {
		r.log.Error("trace record dropped",
			zap.Int("turn", ev.Turn),
			zap.Stringer("subject", ev.Subject),
			zap.Stringer("state", ev.State),
			zap.Error(err),
		)
	}
	return err
}

// EmitComplexity forwards ev and logs a failure.
func (r *Recorder) EmitComplexity(ev trace.ComplexityEvent) error {
	err := r.next.EmitComplexity(ev)
	if err != nil {
		r.log.Error("complexity record dropped",
			zap.Int("turn", ev.Turn),
			zap.Stringer("subject", ev.Subject),
			zap.Error(err),
		)
	}
	return err
}
