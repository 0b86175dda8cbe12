package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"heartlog/internal/logparse"
)

const sampleLog = `[1]|[log_test]|[]|[test_func]|[S]|[03152024]|[120000|000001]|[description]
[1]|[log_test]|[]|[test_func]|[N]|[03152024]|[120000|000002]|[description]
[2]|[log_test]|[TestClass]|[test_method]|[S]|[03152024]|[120000|000003]|[description]
[2]|[log_test]|[TestClass]|[test_method]|[0]|[03152024]|[120000|000004]|[iter 0]
[2]|[log_test]|[TestClass]|[test_method]|[N]|[03152024]|[120000|000006]|[description]
[3]|[log_test]|[TestClass]|[test_method2]|[S]|[03152024]|[120000|000007]|[description]
[3]|[log_test]|[TestClass]|[test_method2]|[C]|[K]
`

func sampleRecords(t *testing.T) []logparse.Record {
	t.Helper()
	recs, err := logparse.Read(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return recs
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, "sample.log", logparse.Summarize(sampleRecords(t)), 100); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"sample.log", "start/end", "log_test:TestClass.test_method", "3 turns, 7 records"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("summary has %d lines, want 6:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[4], "no") {
		t.Fatalf("turn 3 should be unbalanced: %q", lines[4])
	}
}

func TestRenderSummaryFormatsLargeCounts(t *testing.T) {
	var buf bytes.Buffer
	sums := []logparse.TurnSummary{{Turn: 1, Iterations: 12345, Balanced: true}}
	if err := RenderSummary(&buf, "big", sums, 0); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "12,345") {
		t.Fatalf("counts are not grouped:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"abcdefghij", 6, "abc..."},
		{"abc", 6, "abc"},
		{"abcdef", 6, "abcdef"},
		{"abcdef", 3, "abc"},
		{"log_test:TestClass.test_method", 16, "log_test:Test..."},
	}
	for _, tc := range cases {
		got := truncate(tc.in, tc.width)
		if got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
		if tc.width > 3 && runewidth.StringWidth(got) > tc.width {
			t.Fatalf("truncate(%q, %d) is %d cells wide", tc.in, tc.width, runewidth.StringWidth(got))
		}
	}
	if got := truncate("log_test:TestClass.test_method", 20); runewidth.StringWidth(got) != 20 {
		t.Fatalf("truncate to 20 = %q (%d cells)", got, runewidth.StringWidth(got))
	}
	if got := pad("abcdefghij", 6); got != "abc..." {
		t.Fatalf("pad = %q", got)
	}
	if got := pad("ab", 4); got != "ab  " {
		t.Fatalf("pad = %q", got)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowseModelNavigation(t *testing.T) {
	var m tea.Model = NewBrowseModel("sample.log", sampleRecords(t))
	if cmd := m.Init(); cmd != nil {
		t.Fatalf("Init returned a command")
	}
	if !strings.Contains(m.View(), "sample.log (3 turns)") {
		t.Fatalf("view = %q", m.View())
	}

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("enter"))
	view := m.View()
	if !strings.Contains(view, "turn 2") || !strings.Contains(view, "#0") {
		t.Fatalf("detail view = %q", view)
	}

	m, _ = m.Update(key("esc"))
	if strings.Contains(m.View(), "turn 2\n") {
		t.Fatalf("esc did not close the detail view")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestBrowseModelResize(t *testing.T) {
	m := NewBrowseModel("sample.log", sampleRecords(t))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	bm := m.(*browseModel)
	if bm.width != 120 || bm.height != 40 {
		t.Fatalf("size = %dx%d", bm.width, bm.height)
	}
}
