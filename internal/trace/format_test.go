package trace

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFormatTraceFixedStamp(t *testing.T) {
	ev := TraceEvent{
		Turn:        3,
		Subject:     Method("mod", "Widget", "build"),
		State:       Start,
		Description: "init",
		Date:        "03152024",
		Time:        "120000|000000",
	}
	got, err := FormatTrace(ev, nil)
	if err != nil {
		t.Fatalf("FormatTrace: %v", err)
	}
	want := "[3]|[mod]|[Widget]|[build]|[S]|[03152024]|[120000|000000]|[init]"
	if got != want {
		t.Fatalf("FormatTrace = %q, want %q", got, want)
	}
}

func TestFormatTraceStates(t *testing.T) {
	at := time.Date(2024, time.December, 31, 23, 59, 58, 123456789, time.UTC)
	clock := func() time.Time { return at }
	cases := []struct {
		state State
		want  string
	}{
		{Start, "[7]|[f.go]|[]|[run]|[S]|[12312024]|[235958|123456]|[d]"},
		{End, "[7]|[f.go]|[]|[run]|[N]|[12312024]|[235958|123456]|[d]"},
		{Iteration(0), "[7]|[f.go]|[]|[run]|[0]|[12312024]|[235958|123456]|[d]"},
		{Iteration(42), "[7]|[f.go]|[]|[run]|[42]|[12312024]|[235958|123456]|[d]"},
	}
	for _, tc := range cases {
		ev := TraceEvent{Turn: 7, Subject: Func("f.go", "run"), State: tc.state, Description: "d"}
		got, err := FormatTrace(ev, clock)
		if err != nil {
			t.Fatalf("FormatTrace(%v): %v", tc.state, err)
		}
		if got != tc.want {
			t.Fatalf("FormatTrace(%v) = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestFormatTraceRejectsInvalidState(t *testing.T) {
	_, err := FormatTrace(TraceEvent{Turn: 1, Subject: Func("f", "g")}, nil)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestFormatTraceRequiresBothStamps(t *testing.T) {
	cases := []TraceEvent{
		{Turn: 1, State: Start, Date: "03152024"},
		{Turn: 1, State: Start, Time: "120000|000000"},
	}
	for _, ev := range cases {
		if _, err := FormatTrace(ev, nil); !errors.Is(err, ErrInvalidTimestamp) {
			t.Fatalf("FormatTrace(date=%q, time=%q) error = %v, want ErrInvalidTimestamp", ev.Date, ev.Time, err)
		}
	}
}

func TestFormatComplexity(t *testing.T) {
	got := FormatComplexity(ComplexityEvent{Turn: 2, Subject: Method("log_test", "TestClass", "test_method"), Label: "K"})
	want := "[2]|[log_test]|[TestClass]|[test_method]|[C]|[K]"
	if got != want {
		t.Fatalf("FormatComplexity = %q, want %q", got, want)
	}
}

func TestStamps(t *testing.T) {
	at := time.Date(2024, time.March, 5, 7, 8, 9, 1000, time.UTC)
	if got := DateStamp(at); got != "03052024" {
		t.Fatalf("DateStamp = %q, want 03052024", got)
	}
	if got := TimeStamp(at); got != "070809|000001" {
		t.Fatalf("TimeStamp = %q, want 070809|000001", got)
	}
}

func TestLayoutsMatchRenderedLines(t *testing.T) {
	subj := Method("mod", "Widget", "build")
	line, err := FormatTrace(TraceEvent{Turn: 3, Subject: subj, State: Start, Description: "init"}, time.Now)
	if err != nil {
		t.Fatalf("FormatTrace: %v", err)
	}
	if got, want := strings.Count(line, "]|["), strings.Count(TraceLayout, "]|["); got != want {
		t.Fatalf("trace line has %d separators, layout has %d", got, want)
	}
	line = FormatComplexity(ComplexityEvent{Turn: 3, Subject: subj, Label: "K"})
	if got, want := strings.Count(line, "]|["), strings.Count(ComplexityLayout, "]|["); got != want {
		t.Fatalf("complexity line has %d separators, layout has %d", got, want)
	}
}
