// Package logparse reads heartlog trace logs back into records.
package logparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"heartlog/internal/trace"
)

// ErrMalformed is returned for a line that is not a trace or complexity
// record.
var ErrMalformed = errors.New("malformed record")

// Kind is the record kind read from the state column.
type Kind uint8

const (
	KindStart Kind = iota + 1
	KindEnd
	KindIteration
	KindComplexity
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	case KindIteration:
		return "iteration"
	case KindComplexity:
		return "complexity"
	default:
		return "unknown"
	}
}

// Record is one parsed log line. Date and Time are empty for complexity
// records; Text holds the description or the complexity label.
type Record struct {
	Turn     int
	File     string
	Class    string
	Function string
	Kind     Kind
	Index    int
	Date     string
	Time     string
	Text     string
}

// Subject returns the record's subject.
func (r Record) Subject() trace.Subject {
	return trace.Method(r.File, r.Class, r.Function)
}

const (
	traceFields      = 8
	complexityFields = 6
)

// ParseLine parses a single line without its trailing newline.
func ParseLine(line string) (Record, error) {
	line = strings.TrimRight(line, "\r")
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return Record{}, malformed(line, "not bracketed")
	}
	fields := strings.Split(line[1:len(line)-1], "]|[")

	var r Record
	switch len(fields) {
	case traceFields:
		st, err := trace.ParseState(fields[4])
		if err != nil {
			return Record{}, malformed(line, "bad state "+strconv.Quote(fields[4]))
		}
		switch st.Kind() {
		case trace.KindStart:
			r.Kind = KindStart
		case trace.KindEnd:
			r.Kind = KindEnd
		default:
			r.Kind = KindIteration
			r.Index = st.Index()
		}
		if !validDate(fields[5]) || !validTime(fields[6]) {
			return Record{}, malformed(line, "bad timestamp")
		}
		r.Date, r.Time, r.Text = fields[5], fields[6], fields[7]
	case complexityFields:
		if fields[4] != trace.TagComplexity {
			return Record{}, malformed(line, "bad complexity tag "+strconv.Quote(fields[4]))
		}
		r.Kind = KindComplexity
		r.Text = fields[5]
	default:
		return Record{}, malformed(line, fmt.Sprintf("%d fields", len(fields)))
	}

	turn, err := parseInt(fields[0])
	if err != nil || turn < 1 {
		return Record{}, malformed(line, "bad turn "+strconv.Quote(fields[0]))
	}
	r.Turn = turn
	r.File, r.Class, r.Function = fields[1], fields[2], fields[3]
	return r, nil
}

// String renders r back into the log line format.
func (r Record) String() string {
	switch r.Kind {
	case KindComplexity:
		return trace.FormatComplexity(trace.ComplexityEvent{Turn: r.Turn, Subject: r.Subject(), Label: r.Text})
	default:
		st := trace.Start
		switch r.Kind {
		case KindEnd:
			st = trace.End
		case KindIteration:
			st = trace.Iteration(r.Index)
		}
		line, err := trace.FormatTrace(trace.TraceEvent{
			Turn:        r.Turn,
			Subject:     r.Subject(),
			State:       st,
			Description: r.Text,
			Date:        r.Date,
			Time:        r.Time,
		}, nil)
		if err != nil {
			return ""
		}
		return line
	}
}

func parseInt(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if strconv.FormatInt(v, 10) != s {
		return 0, fmt.Errorf("non-canonical integer %q", s)
	}
	return safecast.Conv[int](v)
}

func validDate(s string) bool {
	return len(s) == 8 && allDigits(s)
}

// validTime accepts HHMMSS|uuuuuu.
func validTime(s string) bool {
	return len(s) == 13 && s[6] == '|' && allDigits(s[:6]) && allDigits(s[7:])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func malformed(line, why string) error {
	const limit = 80
	if len(line) > limit {
		line = line[:limit] + "..."
	}
	return fmt.Errorf("%w: %s: %q", ErrMalformed, why, line)
}
