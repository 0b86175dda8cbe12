package trace

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// PrintOptions selects which record kinds are echoed to the console.
// Persistence to the sink never depends on them.
type PrintOptions struct {
	Functions    bool // Start and End records
	Iterations   bool // loop iteration records
	IfStatements bool // reserved, no record kind uses it yet
	Complexity   bool // complexity annotations
}

// ShouldPrint reports whether a trace record in state s is echoed.
func (p PrintOptions) ShouldPrint(s State) bool {
	switch s.Kind() {
	case KindStart, KindEnd:
		return p.Functions
	case KindIteration:
		return p.Iterations
	default:
		return false
	}
}

// Recorder receives the records produced by a Tracker.
type Recorder interface {
	EmitTrace(ev TraceEvent) error
	EmitComplexity(ev ComplexityEvent) error
}

// Emitter renders events, appends them to a Sink and echoes selected ones to
// the console.
type Emitter struct {
	sink    Sink
	print   PrintOptions
	now     func() time.Time
	colored bool

	consoleMu sync.Mutex
	console   io.Writer
}

// EmitterOption customises an Emitter.
type EmitterOption func(*Emitter)

// WithConsole sets the console writer (os.Stdout by default).
func WithConsole(w io.Writer) EmitterOption {
	return func(e *Emitter) {
		if w != nil {
			e.console = w
		}
	}
}

// WithClock sets the clock used for events without a timestamp override.
func WithClock(now func() time.Time) EmitterOption {
	return func(e *Emitter) {
		if now != nil {
			e.now = now
		}
	}
}

// WithColor colours the state tag of console lines. Persisted lines are
// never coloured.
func WithColor(on bool) EmitterOption {
	return func(e *Emitter) {
		e.colored = on
	}
}

// NewEmitter creates an Emitter writing to sink. A nil sink discards records.
func NewEmitter(sink Sink, print PrintOptions, opts ...EmitterOption) *Emitter {
	if sink == nil {
		sink = Nop
	}
	e := &Emitter{
		sink:    sink,
		print:   print,
		now:     time.Now,
		console: os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PrintOptions returns the console filter in use.
func (e *Emitter) PrintOptions() PrintOptions {
	return e.print
}

// EmitTrace validates and renders ev, appends it to the sink and, depending
// on the print options, writes it to the console.
func (e *Emitter) EmitTrace(ev TraceEvent) error {
	if !ev.State.Valid() {
		return invalidState(ev.State)
	}
	date, clock, err := stamps(&ev, e.now)
	if err != nil {
		return err
	}
	line := renderTrace(&ev, date, clock, plainTag)
	if err := e.sink.WriteLine(line); err != nil {
		return err
	}
	if e.print.ShouldPrint(ev.State) {
		if e.colored {
			line = renderTrace(&ev, date, clock, colorTag)
		}
		e.echo(line)
	}
	return nil
}

// EmitComplexity renders ev, appends it to the sink and writes it to the
// console when complexity printing is on.
func (e *Emitter) EmitComplexity(ev ComplexityEvent) error {
	line := renderComplexity(&ev, plainTag)
	if err := e.sink.WriteLine(line); err != nil {
		return err
	}
	if e.print.Complexity {
		if e.colored {
			line = renderComplexity(&ev, colorTag)
		}
		e.echo(line)
	}
	return nil
}

// echo is best-effort: a broken console must not fail the traced program.
func (e *Emitter) echo(line string) {
	e.consoleMu.Lock()
	defer e.consoleMu.Unlock()
	_, _ = io.WriteString(e.console, line+"\n") //nolint:errcheck
}

var tagColors = map[string]*color.Color{
	TagStart:      forcedColor(color.FgGreen, color.Bold),
	TagEnd:        forcedColor(color.FgBlue, color.Bold),
	TagComplexity: forcedColor(color.FgMagenta, color.Bold),
}

var iterationColor = forcedColor(color.FgYellow)

// forcedColor ignores color.NoColor: the caller already decided to colour.
func forcedColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

func colorTag(tag string) string {
	if c, ok := tagColors[tag]; ok {
		return c.Sprint(tag)
	}
	return iterationColor.Sprint(tag)
}
