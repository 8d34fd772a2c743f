package modals

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yourusername/clusterlog/internal/git"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

// maxScopeRows caps the number of scope rows shown at once.
const maxScopeRows = 10

// Scope is one entry of the branch scope picker. An empty Branch means every
// ref in the repository.
type Scope struct {
	Branch string
	Hash   string
	IsHead bool
}

// Label is the text shown for the scope.
func (s Scope) Label() string {
	if s.Branch == "" {
		return "all refs"
	}
	return s.Branch
}

// BranchModal picks the branch clusters are built from.
type BranchModal struct {
	styles  *styles.Styles
	visible bool
	width   int
	height  int
	scopes  []Scope
	current string
	cursor  int
}

func NewBranchModal(s *styles.Styles) BranchModal {
	return BranchModal{
		styles: s,
		width:  80,
		height: 24,
	}
}

// Height returns the number of terminal rows this component occupies when visible.
func (m BranchModal) Height() int {
	if !m.visible {
		return 0
	}
	rows := len(m.scopes)
	if rows > maxScopeRows {
		rows = maxScopeRows
	}
	return rows + 3 // border(2) + title(1)
}

// View renders the inline scope picker panel.
func (m BranchModal) View() string {
	if !m.visible {
		return ""
	}

	theme := m.styles.Theme
	panelBg := theme.PanelBackground

	bgStyle := lipgloss.NewStyle().Background(panelBg)
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(panelBg).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Background(panelBg).
		Italic(true)

	innerWidth := m.width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}

	titleText := " Cluster scope"
	hintText := "Enter to select | Esc to close"
	titleGap := innerWidth - lipgloss.Width(titleText) - lipgloss.Width(hintText)
	if titleGap < 1 {
		hintText = "Enter | Esc"
		titleGap = innerWidth - lipgloss.Width(titleText) - lipgloss.Width(hintText)
		if titleGap < 1 {
			hintText = ""
			titleGap = max(0, innerWidth-lipgloss.Width(titleText))
		}
	}
	titleRow := titleStyle.Render(titleText) + bgStyle.Width(titleGap).Render("")
	if hintText != "" {
		titleRow += hintStyle.Render(hintText)
	}

	rows := []string{titleRow}

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		s := m.scopes[i]

		bg := panelBg
		if i == m.cursor {
			bg = theme.Cursor
		}
		rowBg := lipgloss.NewStyle().Background(bg)
		nameStyle := lipgloss.NewStyle().Foreground(theme.Scope).Background(bg).Bold(true)
		markStyle := lipgloss.NewStyle().Foreground(theme.Current).Background(bg)
		hashStyle := lipgloss.NewStyle().Foreground(theme.Hash).Background(bg)

		prefix := rowBg.Render("  ")
		if s.Branch == m.current {
			prefix = markStyle.Render("* ")
		}

		// prefix(2) + space(1) + hash(7)
		nameAvail := max(6, innerWidth-10)
		row := prefix + nameStyle.Render(ansi.Truncate(s.Label(), nameAvail, "…"))
		if len(s.Hash) >= 7 {
			row += hashStyle.Render(" " + s.Hash[:7])
		}
		if s.IsHead {
			row += markStyle.Render(" HEAD")
		}

		if w := lipgloss.Width(row); w < innerWidth {
			row += rowBg.Width(innerWidth - w).Render("")
		}
		rows = append(rows, row)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Scope).
		BorderBackground(theme.Background).
		Background(panelBg).
		Width(m.width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// visibleRange keeps the cursor inside the shown rows.
func (m BranchModal) visibleRange() (start, end int) {
	n := min(len(m.scopes), maxScopeRows)
	if m.cursor >= n {
		start = m.cursor - n + 1
	}
	return start, start + n
}

// Show opens the picker with an "all refs" entry followed by branches. The
// cursor starts on current, the scope in use.
func (m *BranchModal) Show(branches []*git.Branch, current string) {
	m.visible = true
	m.current = current
	m.scopes = make([]Scope, 0, len(branches)+1)
	m.scopes = append(m.scopes, Scope{})
	for _, b := range branches {
		m.scopes = append(m.scopes, Scope{Branch: b.Name, Hash: b.Hash, IsHead: b.IsHead})
	}

	m.cursor = 0
	for i, s := range m.scopes {
		if s.Branch == current {
			m.cursor = i
			break
		}
	}
}

func (m *BranchModal) Hide() {
	m.visible = false
	m.scopes = nil
	m.cursor = 0
}

func (m *BranchModal) IsVisible() bool {
	return m.visible
}

func (m *BranchModal) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *BranchModal) MoveDown() {
	if m.cursor < len(m.scopes)-1 {
		m.cursor++
	}
}

// Selected returns the highlighted scope.
func (m *BranchModal) Selected() (Scope, bool) {
	if m.cursor >= 0 && m.cursor < len(m.scopes) {
		return m.scopes[m.cursor], true
	}
	return Scope{}, false
}

func (m *BranchModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}
