package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"heartlog/internal/logparse"
)

var numbers = message.NewPrinter(language.English)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// summaryColumns are the fixed-width columns before the subjects column.
var summaryColumns = []struct {
	title string
	width int
}{
	{"turn", 6},
	{"records", 8},
	{"start/end", 10},
	{"iter", 6},
	{"complexity", 12},
	{"ok", 4},
}

// RenderSummary writes a per-turn table for one log. width bounds each row;
// values <= 0 mean 100 columns.
func RenderSummary(w io.Writer, title string, sums []logparse.TurnSummary, width int) error {
	if width <= 0 {
		width = 100
	}
	fixed := 0
	var head strings.Builder
	for _, c := range summaryColumns {
		head.WriteString(runewidth.FillRight(c.title, c.width))
		fixed += c.width
	}
	head.WriteString("subjects")
	subjectWidth := width - fixed
	if subjectWidth < 16 {
		subjectWidth = 16
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(head.String()))
	b.WriteString("\n")

	total := 0
	for _, s := range sums {
		total += s.Records()
		cells := []string{
			numbers.Sprintf("%d", s.Turn),
			numbers.Sprintf("%d", s.Records()),
			numbers.Sprintf("%d/%d", s.Starts, s.Ends),
			numbers.Sprintf("%d", s.Iterations),
			complexityCell(s.Complexity),
		}
		for i, cell := range cells {
			b.WriteString(runewidth.FillRight(truncate(cell, summaryColumns[i].width-1), summaryColumns[i].width))
		}
		ok := okStyle.Render(runewidth.FillRight("yes", 4))
		if !s.Balanced {
			ok = badStyle.Render(runewidth.FillRight("no", 4))
		}
		b.WriteString(ok)
		b.WriteString(truncate(strings.Join(s.Subjects, ", "), subjectWidth))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(numbers.Sprintf("%d turns, %d records", len(sums), total)))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func complexityCell(labels []string) string {
	if len(labels) == 0 {
		return "-"
	}
	return strings.Join(labels, ",")
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// pad is fmt's %-*s measured in display cells.
func pad(value string, width int) string {
	return runewidth.FillRight(truncate(value, width), width)
}
