package trace

import (
	"errors"
	"sync"
)

// FirstTurn is the turn number of a fresh Tracker.
const FirstTurn = 1

// TraceState is the turn counter and the stack of turns captured by the
// instrumented calls that are still running.
type TraceState struct {
	CurrentTurn int
	CallStack   []int
}

// Tracker correlates nested instrumented calls under one turn.
//
// Every call entered through the Tracker pushes the current turn and pops it
// on exit; the turn advances exactly when the stack becomes empty.
type Tracker struct {
	mu    sync.Mutex
	state TraceState
	rec   Recorder
}

// NewTracker creates a Tracker starting at FirstTurn. A nil rec discards
// records.
func NewTracker(rec Recorder) *Tracker {
	if rec == nil {
		rec = NewEmitter(Nop, PrintOptions{})
	}
	return &Tracker{
		state: TraceState{CurrentTurn: FirstTurn},
		rec:   rec,
	}
}

// CurrentTurn returns the active turn without side effects.
func (t *Tracker) CurrentTurn() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.CurrentTurn
}

// AdvanceTurn unconditionally moves to the next turn. Code that logs its own
// Start/End records instead of using Call or Wrap closes its turn with it.
func (t *Tracker) AdvanceTurn() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.CurrentTurn++
}

// Depth returns the number of instrumented calls currently open.
func (t *Tracker) Depth() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.state.CallStack)
}

// Snapshot returns a copy of the tracker state.
func (t *Tracker) Snapshot() TraceState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TraceState{
		CurrentTurn: t.state.CurrentTurn,
		CallStack:   append([]int(nil), t.state.CallStack...),
	}
}

// push captures the current turn and records it on the call stack.
func (t *Tracker) push() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	x := t.state.CurrentTurn
	t.state.CallStack = append(t.state.CallStack, x)
	return x
}

// pop removes the innermost call and advances the turn once the chain has
// fully unwound.
func (t *Tracker) pop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.state.CallStack)
	if n == 0 {
		return
	}
	t.state.CallStack = t.state.CallStack[:n-1]
	if n == 1 {
		t.state.CurrentTurn++
	}
}

// Enter opens an instrumented call: it pushes the current turn and emits the
// Start record. The returned Frame must be closed with Exit, typically via
// defer.
func (t *Tracker) Enter(subject Subject, description string) *Frame {
	x := t.push()
	f := &Frame{
		tracker:     t,
		turn:        x,
		subject:     subject,
		description: description,
	}
	f.startErr = t.rec.EmitTrace(TraceEvent{
		Turn:        x,
		Subject:     subject,
		State:       Start,
		Description: description,
	})
	return f
}

// Call runs fn as an instrumented call. The End record and the stack pop
// happen on every exit path, including a panic, which is re-raised after
// cleanup. fn's error is returned as is unless emitting a record failed too,
// in which case the errors are joined.
func (t *Tracker) Call(subject Subject, description string, fn func() error) (err error) {
	f := t.Enter(subject, description)
	defer func() {
		err = joinErr(err, f.Exit())
	}()
	return fn()
}

// Iteration records loop pass i of subject under the current turn.
func (t *Tracker) Iteration(subject Subject, i int, description string) error {
	return t.Mark(subject, Iteration(i), description)
}

// Mark records a trace event in state s under the current turn.
func (t *Tracker) Mark(subject Subject, s State, description string) error {
	return t.rec.EmitTrace(TraceEvent{
		Turn:        t.CurrentTurn(),
		Subject:     subject,
		State:       s,
		Description: description,
	})
}

// Complexity records a complexity annotation for subject under the current
// turn.
func (t *Tracker) Complexity(subject Subject, label string) error {
	return t.rec.EmitComplexity(ComplexityEvent{
		Turn:    t.CurrentTurn(),
		Subject: subject,
		Label:   label,
	})
}

func joinErr(primary, extra error) error {
	if extra == nil {
		return primary
	}
	if primary == nil {
		return extra
	}
	return errors.Join(primary, extra)
}
