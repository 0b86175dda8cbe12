package trace

// Frame is one open instrumented call, created by Tracker.Enter.
type Frame struct {
	tracker     *Tracker
	turn        int
	subject     Subject
	description string
	startErr    error
	closed      bool
}

// Turn returns the turn captured when the frame was entered.
func (f *Frame) Turn() int {
	if f == nil {
		return 0
	}
	return f.turn
}

// Exit emits the End record, pops the call stack and, if this was the
// outermost call, advances the turn. It returns any error from emitting the
// Start or End record. Calling Exit more than once is a no-op.
func (f *Frame) Exit() error {
	if f == nil || f.closed {
		return nil
	}
	f.closed = true

	endErr := f.tracker.rec.EmitTrace(TraceEvent{
		Turn:        f.turn,
		Subject:     f.subject,
		State:       End,
		Description: f.description,
	})
	f.tracker.pop()
	return joinErr(f.startErr, endErr)
}
