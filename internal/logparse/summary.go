package logparse

import "sort"

// TurnSummary aggregates the records of one turn.
type TurnSummary struct {
	Turn        int
	Starts      int
	Ends        int
	Iterations  int
	Complexity  []string // labels, in log order
	Subjects    []string // distinct subjects, in first-seen order
	Balanced    bool     // every Start closed by a matching End, innermost first
	First, Last string   // "MMDDYYYY HHMMSS|uuuuuu" of the first and last timed record
}

// Records returns the total number of records in the turn.
func (s TurnSummary) Records() int {
	return s.Starts + s.Ends + s.Iterations + len(s.Complexity)
}

// Summarize groups records by turn, sorted by turn number.
func Summarize(recs []Record) []TurnSummary {
	type acc struct {
		sum   TurnSummary
		seen  map[string]bool
		stack []string
		bad   bool
	}
	byTurn := make(map[int]*acc)
	for _, r := range recs {
		a, ok := byTurn[r.Turn]
		if !ok {
			a = &acc{sum: TurnSummary{Turn: r.Turn}, seen: make(map[string]bool)}
			byTurn[r.Turn] = a
		}
		subj := r.Subject().String()
		if !a.seen[subj] {
			a.seen[subj] = true
			a.sum.Subjects = append(a.sum.Subjects, subj)
		}
		if r.Date != "" {
			stamp := r.Date + " " + r.Time
			if a.sum.First == "" {
				a.sum.First = stamp
			}
			a.sum.Last = stamp
		}
		switch r.Kind {
		case KindStart:
			a.sum.Starts++
			a.stack = append(a.stack, subj)
		case KindEnd:
			a.sum.Ends++
			n := len(a.stack)
			if n == 0 || a.stack[n-1] != subj {
				a.bad = true
				continue
			}
			a.stack = a.stack[:n-1]
		case KindIteration:
			a.sum.Iterations++
		case KindComplexity:
			a.sum.Complexity = append(a.sum.Complexity, r.Text)
		}
	}

	out := make([]TurnSummary, 0, len(byTurn))
	for _, a := range byTurn {
		a.sum.Balanced = !a.bad && len(a.stack) == 0
		out = append(out, a.sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Turn < out[j].Turn })
	return out
}
