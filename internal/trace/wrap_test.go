package trace

import (
	"context"
	"errors"
	"strconv"
	"testing"
)

func TestWrapValuePassesResultThrough(t *testing.T) {
	rec := &recording{}
	tr := NewTracker(rec)
	answer := WrapValue(tr, outer, "compute", func() (int, error) { return 42, nil })

	got, err := answer()
	if err != nil || got != 42 {
		t.Fatalf("answer() = %d, %v; want 42, nil", got, err)
	}
	if tr.CurrentTurn() != 2 {
		t.Fatalf("CurrentTurn = %d, want 2", tr.CurrentTurn())
	}
}

func TestWrapFuncPassesArgumentAndError(t *testing.T) {
	tr := NewTracker(nil)
	parse := WrapFunc(tr, leaf, "parse", strconv.Atoi)

	n, err := parse("12")
	if err != nil || n != 12 {
		t.Fatalf("parse(12) = %d, %v", n, err)
	}
	_, err = parse("x")
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatalf("parse(x) error = %v, want *strconv.NumError", err)
	}
	if got := tr.CurrentTurn(); got != 3 {
		t.Fatalf("CurrentTurn = %d, want 3", got)
	}
}

func TestWrappedCallIsReusable(t *testing.T) {
	rec := &recording{}
	tr := NewTracker(rec)
	fn := Wrap(tr, outer, "again", func() error { return nil })
	for i := 0; i < 3; i++ {
		if err := fn(); err != nil {
			t.Fatalf("fn: %v", err)
		}
	}
	turns := []int{1, 1, 2, 2, 3, 3}
	for i, ev := range rec.traces {
		if ev.Turn != turns[i] {
			t.Fatalf("record %d turn = %d, want %d", i, ev.Turn, turns[i])
		}
	}
}

func TestTrackerContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("empty context must not carry a tracker")
	}
	tr := NewTracker(nil)
	got, ok := FromContext(WithTracker(context.Background(), tr))
	if !ok || got != tr {
		t.Fatalf("FromContext = %p, %v; want %p", got, ok, tr)
	}
}
