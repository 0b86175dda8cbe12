package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"heartlog/internal/logparse"
)

type browseModel struct {
	title   string
	turns   []logparse.TurnSummary
	records map[int][]logparse.Record
	table   table.Model
	width   int
	height  int
	detail  bool
}

// NewBrowseModel returns a Bubble Tea model listing the turns of one log.
// Enter opens the records of the selected turn, q quits.
func NewBrowseModel(title string, recs []logparse.Record) tea.Model {
	byTurn := make(map[int][]logparse.Record)
	for _, r := range recs {
		byTurn[r.Turn] = append(byTurn[r.Turn], r)
	}
	turns := logparse.Summarize(recs)

	rows := make([]table.Row, 0, len(turns))
	for _, s := range turns {
		ok := "yes"
		if !s.Balanced {
			ok = "no"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(s.Turn),
			strconv.Itoa(s.Records()),
			strconv.Itoa(s.Iterations),
			ok,
			strings.Join(s.Subjects, ", "),
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))

	t := table.New(
		table.WithColumns(browseColumns(80)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 20)),
		table.WithStyles(styles),
	)
	return &browseModel{
		title:   title,
		turns:   turns,
		records: byTurn,
		table:   t,
		width:   80,
		height:  24,
	}
}

func browseColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "turn", Width: 6},
		{Title: "records", Width: 8},
		{Title: "iter", Width: 6},
		{Title: "ok", Width: 4},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	subjects := width - used - 2
	if subjects < 20 {
		subjects = 20
	}
	return append(cols, table.Column{Title: "subjects", Width: subjects})
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if len(m.turns) > 0 {
				m.detail = !m.detail
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.table.SetColumns(browseColumns(msg.Width))
		}
		if msg.Height > 0 {
			m.height = msg.Height
			m.table.SetHeight(max(msg.Height-6, 3))
		}
		return m, nil
	}
	if m.detail {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d turns)", m.title, len(m.turns))))
	b.WriteString("\n\n")
	if m.detail {
		b.WriteString(m.detailView())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("esc/enter: back  q: quit"))
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("↑/↓: move  enter: records  q: quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// selected returns the summary under the cursor.
func (m *browseModel) selected() (logparse.TurnSummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.turns) {
		return logparse.TurnSummary{}, false
	}
	return m.turns[i], true
}

func (m *browseModel) detailView() string {
	s, ok := m.selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("turn %d", s.Turn)))
	b.WriteString("\n")
	depth := 0
	limit := m.height - 6
	for i, r := range m.records[s.Turn] {
		if limit > 0 && i >= limit {
			b.WriteString(dimStyle.Render(fmt.Sprintf("... %d more", len(m.records[s.Turn])-i)))
			b.WriteString("\n")
			break
		}
		if r.Kind == logparse.KindEnd && depth > 0 {
			depth--
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(kindStyle(r.Kind).Render(pad(kindLabel(r), 6)))
		b.WriteString(truncate(r.Subject().String()+"  "+r.Text, m.width-2*depth-8))
		b.WriteString("\n")
		if r.Kind == logparse.KindStart {
			depth++
		}
	}
	return b.String()
}

func kindLabel(r logparse.Record) string {
	switch r.Kind {
	case logparse.KindStart:
		return "→"
	case logparse.KindEnd:
		return "←"
	case logparse.KindIteration:
		return "#" + strconv.Itoa(r.Index)
	case logparse.KindComplexity:
		return "C"
	default:
		return "?"
	}
}

func kindStyle(k logparse.Kind) lipgloss.Style {
	switch k {
	case logparse.KindStart:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case logparse.KindEnd:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case logparse.KindIteration:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	}
}
