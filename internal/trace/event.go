package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// StateKind classifies the state carried by a TraceEvent.
type StateKind uint8

const (
	kindInvalid StateKind = iota
	// KindStart marks entry into a function.
	KindStart
	// KindEnd marks exit from a function.
	KindEnd
	// KindIteration marks one pass of a loop.
	KindIteration
)

// String returns the string representation of StateKind.
func (k StateKind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	case KindIteration:
		return "iteration"
	default:
		return "invalid"
	}
}

// Wire tags for the state column.
const (
	TagStart      = "S"
	TagEnd        = "N"
	TagComplexity = "C"
)

// State is the tagged state of a trace event: Start, End or Iteration(i).
// The zero State is invalid and rejected by the Emitter.
type State struct {
	kind  StateKind
	index int
}

var (
	// Start is the state of a function entry event.
	Start = State{kind: KindStart}
	// End is the state of a function exit event.
	End = State{kind: KindEnd}
)

// Iteration returns the state for loop pass i.
func Iteration(i int) State {
	return State{kind: KindIteration, index: i}
}

// ParseState converts a wire tag ("S", "N" or a decimal index) to a State.
func ParseState(s string) (State, error) {
	switch s {
	case TagStart:
		return Start, nil
	case TagEnd:
		return End, nil
	}
	i, err := strconv.Atoi(s)
	// The tag must be canonical so it re-renders byte for byte.
	if err != nil || strconv.Itoa(i) != s {
		return State{}, fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return Iteration(i), nil
}

// Kind returns the state kind.
func (s State) Kind() StateKind { return s.kind }

// Index returns the loop index of an iteration state and 0 otherwise.
func (s State) Index() int {
	if s.kind != KindIteration {
		return 0
	}
	return s.index
}

// Valid reports whether s is Start, End or an iteration.
func (s State) Valid() bool {
	return s.kind >= KindStart && s.kind <= KindIteration
}

// Tag returns the wire tag written to the state column.
func (s State) Tag() string {
	switch s.kind {
	case KindStart:
		return TagStart
	case KindEnd:
		return TagEnd
	case KindIteration:
		return strconv.Itoa(s.index)
	default:
		return ""
	}
}

// String returns a readable form, e.g. "start" or "iteration(3)".
func (s State) String() string {
	if s.kind == KindIteration {
		return "iteration(" + strconv.Itoa(s.index) + ")"
	}
	return s.kind.String()
}

// Subject identifies the instrumented code: the source file, the receiver
// type for methods (empty for plain functions) and the function name.
type Subject struct {
	File  string
	Class string
	Name  string
}

// Func describes a plain function.
func Func(file, name string) Subject {
	return Subject{File: file, Name: name}
}

// Method describes a method of class.
func Method(file, class, name string) Subject {
	return Subject{File: file, Class: class, Name: name}
}

// String returns "file:Class.Name" or "file:Name".
func (s Subject) String() string {
	var b strings.Builder
	b.WriteString(s.File)
	b.WriteByte(':')
	if s.Class != "" {
		b.WriteString(s.Class)
		b.WriteByte('.')
	}
	b.WriteString(s.Name)
	return b.String()
}

// TraceEvent is a single Start/End/Iteration record.
//
// Date and Time override the emitter clock. They must be set together
// (Date as MMDDYYYY, Time as HHMMSS|uuuuuu) or both left empty.
type TraceEvent struct {
	Turn        int
	Subject     Subject
	State       State
	Description string
	Date        string
	Time        string
}

// ComplexityEvent is a free-form complexity annotation for a subject.
type ComplexityEvent struct {
	Turn    int
	Subject Subject
	Label   string
}
