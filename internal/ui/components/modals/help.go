package modals

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/clusterlog/internal/ui/keys"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

type helpSection struct {
	title string
	rows  []helpRow
}

type helpRow struct {
	keys []string
	desc string
}

type HelpModal struct {
	styles   *styles.Styles
	sections []helpSection
	visible  bool
}

func NewHelpModal(styles *styles.Styles, km keys.KeyMap) HelpModal {
	return HelpModal{
		styles: styles,
		sections: []helpSection{
			{"Navigation", []helpRow{
				{km.Down, "Move down"},
				{km.Up, "Move up"},
				{km.Top, "Go to top"},
				{km.Bottom, "Go to bottom"},
				{km.PageDown, "Page down"},
				{km.PageUp, "Page up"},
			}},
			{"Clusters", []helpRow{
				{km.Toggle, "Expand / collapse (or click the summary)"},
				{km.Collapse, "Collapse cluster"},
				{km.DetailDown, "Scroll details down"},
				{km.DetailUp, "Scroll details up"},
				{km.Filter, "Filter clusters"},
				{km.Branch, "Cluster scope"},
				{km.Fetch, "Fetch and reload"},
			}},
			{"Clipboard", []helpRow{
				{km.CopyHashes, "Copy commit hashes"},
				{km.CopySummary, "Copy summary"},
				{km.CopyDiff, "Copy cluster diff"},
			}},
			{"General", []helpRow{
				{km.Help, "Toggle help"},
				{km.Quit, "Quit"},
			}},
		},
	}
}

func (m HelpModal) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	for i, s := range m.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.title + ":\n")
		for _, r := range s.rows {
			b.WriteString("  " + padRight(displayKeys(r.keys), 12) + "- " + r.desc + "\n")
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Keybindings"),
		"",
		m.styles.Help.Render(strings.TrimRight(b.String(), "\n")),
	)

	return m.styles.Panel.Render(content)
}

func displayKeys(ks []string) string {
	out := make([]string, len(ks))
	for i, k := range ks {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return strings.Join(out, "/")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s + " "
}

// Height returns the number of terminal rows this component occupies when visible.
func (m HelpModal) Height() int {
	if !m.visible {
		return 0
	}
	return lipgloss.Height(m.View())
}

func (m *HelpModal) Toggle() {
	m.visible = !m.visible
}

func (m *HelpModal) IsVisible() bool {
	return m.visible
}
