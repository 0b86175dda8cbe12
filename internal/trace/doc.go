// Package trace provides the call-tracing core of heartlog.
//
// A Tracker groups every record produced by one top-level instrumented call
// chain under a single turn number. Nested instrumented calls reuse the turn
// captured when the outermost call started, and the turn only advances once
// the whole chain has unwound.
//
// # Usage
//
//	sink := trace.NewStreamSink(file)
//	em := trace.NewEmitter(sink, trace.PrintOptions{Functions: true})
//	t := trace.NewTracker(em)
//
//	build := trace.Wrap(t, trace.Method("widget.go", "Widget", "build"), "init", func() error {
//		for i := range 3 {
//			_ = t.Iteration(trace.Method("widget.go", "Widget", "build"), i, "pass")
//		}
//		return nil
//	})
//	err := build()
//
// # Architecture
//
//   - Tracker: owns TraceState (current turn + call stack)
//   - Emitter: renders pipe-delimited lines, persists them, echoes to console
//   - Sink: append-only line destinations (StreamSink, RingSink, MultiSink, Nop)
//   - Watchdog: reports call stacks that stay open without the turn advancing
//
// # Line format
//
//	[turn]|[file]|[class]|[function]|[S|N|index]|[MMDDYYYY]|[HHMMSS|uuuuuu]|[description]
//	[turn]|[file]|[class]|[function]|[C]|[label]
//
// Fields are written verbatim. A '|' or ']' inside free text makes the line
// unparseable.
//
// # Goroutines
//
// A Tracker models strictly nested synchronous calls. Give each goroutine its
// own Tracker (they may share an Emitter); a shared Tracker stays race-free but
// its turns mix records from different goroutines.
package trace
