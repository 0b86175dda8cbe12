package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"heartlog/internal/logparse"
	"heartlog/internal/trace"
)

func runWorkload(t *testing.T, w *workload) []logparse.TurnSummary {
	t.Helper()
	ring := trace.NewRingSink(0)
	w.tracker = trace.NewTracker(trace.NewEmitter(ring, trace.PrintOptions{}))
	if w.out == nil {
		w.out = &bytes.Buffer{}
	}
	if err := w.run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	recs, err := logparse.Read(strings.NewReader(strings.Join(ring.Snapshot(), "\n")))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return logparse.Summarize(recs)
}

func TestWorkloadTurns(t *testing.T) {
	var out bytes.Buffer
	sums := runWorkload(t, &workload{out: &out, iterations: 5})
	if len(sums) != 3 {
		t.Fatalf("turns = %d, want 3", len(sums))
	}
	for i, s := range sums {
		if s.Turn != i+1 {
			t.Fatalf("turn[%d] = %d, want %d", i, s.Turn, i+1)
		}
		if !s.Balanced {
			t.Fatalf("turn %d is not balanced", s.Turn)
		}
	}
	if sums[1].Iterations != 5 {
		t.Fatalf("iterations = %d, want 5", sums[1].Iterations)
	}
	if got := strings.Join(sums[2].Complexity, ","); got != "K" {
		t.Fatalf("complexity = %q, want %q", got, "K")
	}
	if !strings.HasPrefix(out.String(), "value1 value2\n0\n1\n") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestWorkloadNestedStaysInTurn(t *testing.T) {
	sums := runWorkload(t, &workload{iterations: 2, nested: true})
	if len(sums) != 3 {
		t.Fatalf("turns = %d, want 3", len(sums))
	}
	loop := sums[1]
	if loop.Starts != 2 || loop.Ends != 2 {
		t.Fatalf("turn 2 starts/ends = %d/%d, want 2/2", loop.Starts, loop.Ends)
	}
	if !loop.Balanced {
		t.Fatalf("turn 2 is not balanced")
	}
}

func TestReadMode(t *testing.T) {
	cases := []struct {
		in   string
		want mode
	}{
		{"", modeAuto},
		{"auto", modeAuto},
		{" ON ", modeOn},
		{"off", modeOff},
	}
	for _, tc := range cases {
		got, err := readMode("ui", tc.in)
		if err != nil {
			t.Fatalf("readMode(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("readMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := readMode("ui", "sometimes"); err == nil {
		t.Fatalf("expected error for invalid mode")
	}
	var buf bytes.Buffer
	if !modeOn.enabled(&buf) || modeOff.enabled(&buf) {
		t.Fatalf("explicit modes must not depend on the writer")
	}
	if modeAuto.enabled(&buf) {
		t.Fatalf("auto must be off for a non-terminal writer")
	}
}

var errStartRejected = errors.New("start rejected")

// rejectStart fails the Start record of one subject.
type rejectStart struct {
	trace.Recorder
	subject trace.Subject
}

func (r rejectStart) EmitTrace(ev trace.TraceEvent) error {
	if ev.Subject == r.subject && ev.State == trace.Start {
		return errStartRejected
	}
	return r.Recorder.EmitTrace(ev)
}

func TestManualMethodAdvancesTurnWhenStartFails(t *testing.T) {
	rec := rejectStart{
		Recorder: trace.NewEmitter(trace.Nop, trace.PrintOptions{}),
		subject:  subjectManual,
	}
	w := &workload{tracker: trace.NewTracker(rec), out: &bytes.Buffer{}}

	err := w.testMethod2("value3")
	if !errors.Is(err, errStartRejected) {
		t.Fatalf("testMethod2 error = %v, want errStartRejected", err)
	}
	if got := w.tracker.CurrentTurn(); got != trace.FirstTurn+1 {
		t.Fatalf("CurrentTurn = %d, want %d", got, trace.FirstTurn+1)
	}
	if err := w.testMethod(); err != nil {
		t.Fatalf("testMethod: %v", err)
	}
	if got := w.tracker.CurrentTurn(); got != trace.FirstTurn+2 {
		t.Fatalf("CurrentTurn after next call = %d, want %d", got, trace.FirstTurn+2)
	}
}
