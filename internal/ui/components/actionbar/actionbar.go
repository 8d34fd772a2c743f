package actionbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

type Model struct {
	styles   *styles.Styles
	message  string
	scope    string
	filter   string
	shown    int
	total    int
	expanded int
	width    int
}

func New(styles *styles.Styles, width int) Model {
	return Model{
		styles: styles,
		width:  width,
		scope:  "all refs",
	}
}

func (m Model) View() string {
	left := m.styles.Help.Render("[enter]toggle  [/]filter  [b]scope  [f]etch  [y]ank  [?]help")
	if m.message != "" {
		left = m.styles.Message.Render(m.message)
	}

	counts := fmt.Sprintf("%d clusters", m.total)
	if m.shown != m.total {
		counts = fmt.Sprintf("%d/%d clusters", m.shown, m.total)
	}
	if m.expanded > 0 {
		counts += fmt.Sprintf(" · %d open", m.expanded)
	}
	right := m.styles.StatusInfo.Render(counts+"  ") + m.styles.BranchName.Render(m.scope)
	if m.filter != "" {
		right = m.styles.StatusInfo.Render("/"+m.filter+"  ") + right
	}

	// StatusBar pads one cell on each side. Hints give way to the counts.
	padding := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		left = ansi.Truncate(left, max(0, lipgloss.Width(left)+padding), "…")
		padding = max(0, m.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	}
	spacer := m.styles.StatusInfo.Width(padding).Render("")

	return m.styles.StatusBar.Width(m.width).Render(left + spacer + right)
}

// SetMessage replaces the hints with a transient message.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

func (m *Model) ClearMessage() {
	m.message = ""
}

func (m Model) Message() string {
	return m.message
}

// SetScope shows the branch clusters are built from; empty means all refs.
func (m *Model) SetScope(branch string) {
	if branch == "" {
		branch = "all refs"
	}
	m.scope = branch
}

func (m *Model) SetFilter(query string) {
	m.filter = query
}

// SetCounts updates the number of visible, total and expanded clusters.
func (m *Model) SetCounts(shown, total, expanded int) {
	m.shown, m.total, m.expanded = shown, total, expanded
}

func (m *Model) SetWidth(width int) {
	m.width = width
}
