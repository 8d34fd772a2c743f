package modals

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

// FilterModal is the inline fuzzy filter prompt shown above the action bar.
type FilterModal struct {
	input   textinput.Model
	styles  *styles.Styles
	visible bool
	width   int
	height  int
}

func NewFilterModal(s *styles.Styles) FilterModal {
	ti := textinput.New()
	ti.Placeholder = "Filter by summary, author or tag..."
	ti.CharLimit = 200
	ti.Width = 60

	panelBg := s.Theme.PanelBackground
	ti.PromptStyle = lipgloss.NewStyle().
		Foreground(s.Theme.Tag).
		Background(panelBg).
		Bold(true)
	ti.TextStyle = lipgloss.NewStyle().
		Foreground(s.Theme.Foreground).
		Background(panelBg)
	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(s.Theme.Muted).
		Background(panelBg)
	ti.Cursor.Style = lipgloss.NewStyle().
		Background(s.Theme.Foreground)
	ti.Prompt = "  "

	return FilterModal{
		input:  ti,
		styles: s,
		width:  80,
		height: 24,
	}
}

func (m FilterModal) Update(msg tea.Msg) (FilterModal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Height returns the number of terminal rows this component occupies when visible.
func (m FilterModal) Height() int {
	if !m.visible {
		return 0
	}
	return 3
}

func (m FilterModal) View() string {
	if !m.visible {
		return ""
	}

	theme := m.styles.Theme
	panelBg := theme.PanelBackground
	bgStyle := lipgloss.NewStyle().Background(panelBg)

	labelStyle := lipgloss.NewStyle().
		Foreground(theme.Tag).
		Background(panelBg).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Background(panelBg).
		Italic(true)

	label := labelStyle.Render(" Filter:")
	tiView := m.input.View()

	innerAvail := m.width - 4
	hintText := "  Enter to keep | Esc to clear"
	used := lipgloss.Width(label) + 1 + lipgloss.Width(tiView) + lipgloss.Width(hintText)
	if used > innerAvail {
		hintText = "  Enter | Esc"
		used = lipgloss.Width(label) + 1 + lipgloss.Width(tiView) + lipgloss.Width(hintText)
		if used > innerAvail {
			hintText = ""
		}
	}

	inner := label + bgStyle.Render(" ") + tiView
	if hintText != "" {
		inner += hintStyle.Render(hintText)
	}
	if w := lipgloss.Width(inner); w < m.width-2 {
		inner += bgStyle.Width(m.width - 2 - w).Render("")
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Tag).
		BorderBackground(theme.Background).
		Background(panelBg).
		Width(m.width - 2).
		Render(inner)
}

// Show opens the prompt with the filter currently in effect.
func (m *FilterModal) Show(query string) tea.Cmd {
	m.visible = true
	m.input.SetValue(query)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *FilterModal) Hide() {
	m.visible = false
	m.input.Blur()
}

func (m *FilterModal) IsVisible() bool {
	return m.visible
}

func (m *FilterModal) Value() string {
	return m.input.Value()
}

func (m *FilterModal) SetSize(width, height int) {
	m.width = width
	m.height = height
	// label(8) + borders + small pad
	m.input.Width = min(80, max(10, width-16))
}
