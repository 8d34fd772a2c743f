package styles

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Theme      Theme
	Panel      lipgloss.Style
	Title      lipgloss.Style
	StatusBar  lipgloss.Style
	StatusInfo lipgloss.Style
	Message    lipgloss.Style
	BranchName lipgloss.Style
	Help       lipgloss.Style
	Tag        lipgloss.Style
	Content    lipgloss.Style
	Subtle     lipgloss.Style
	Badge      lipgloss.Style
}

func NewStyles(theme Theme) *Styles {
	return &Styles{
		Theme: theme,
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Current).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Subtext).
			Background(theme.Cursor).
			Padding(0, 1),
		StatusInfo: lipgloss.NewStyle().
			Foreground(theme.Subtext).
			Background(theme.Cursor),
		Message: lipgloss.NewStyle().
			Foreground(theme.Tag).
			Background(theme.Cursor).
			Bold(true),
		BranchName: lipgloss.NewStyle().
			Foreground(theme.Author).
			Background(theme.Cursor).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(theme.Subtext),
		Tag: lipgloss.NewStyle().
			Foreground(theme.Tag).
			Background(theme.PanelBackground).
			Bold(true).
			Padding(0, 1),
		Content: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Subtle: lipgloss.NewStyle().
			Foreground(theme.Muted),
		// Badge foreground is fixed; the background comes from the author.
		Badge: lipgloss.NewStyle().
			Foreground(theme.BadgeText).
			Bold(true).
			Padding(0, 1),
	}
}

// GraphColors returns the rotating palette used for graph nodes and badges.
func (t Theme) GraphColors() []lipgloss.Color {
	return t.Nodes
}
