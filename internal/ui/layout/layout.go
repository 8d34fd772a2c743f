package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// titleOffset is the cell in the top border where the panel title starts.
const titleOffset = 2

type Layout struct {
	width      int
	height     int
	title      string
	background lipgloss.Color
	border     lipgloss.Color
	titleColor lipgloss.Color
}

func New(width, height int, title string, background, border, titleColor lipgloss.Color) *Layout {
	return &Layout{
		width:      width,
		height:     height,
		title:      title,
		background: background,
		border:     border,
		titleColor: titleColor,
	}
}

// Calculate returns the usable inner dimensions for the single main panel.
func (l *Layout) Calculate() (contentWidth, contentHeight int) {
	return l.CalculateWithExtra(0)
}

// CalculateWithExtra is like Calculate but reserves additional rows for inline
// panels (filter prompt, scope picker, help) between the main panel and the
// action bar.
func (l *Layout) CalculateWithExtra(extraHeight int) (contentWidth, contentHeight int) {
	// action bar + top and bottom border
	contentHeight = l.height - 1 - 2 - extraHeight
	contentWidth = l.width - 2

	if contentHeight < 3 {
		contentHeight = 3
	}
	if contentWidth < 10 {
		contentWidth = 10
	}
	return
}

// ContentOrigin is the screen cell of the main panel's top-left content cell.
func (l *Layout) ContentOrigin() (x, y int) {
	return 1, 1
}

func (l *Layout) Render(mainPanel, actionBar string) string {
	return l.RenderWithExtra(mainPanel, "", actionBar)
}

// RenderWithExtra renders the main panel, an optional extra panel and the
// action bar, filling every cell of the terminal with the base background.
func (l *Layout) RenderWithExtra(mainPanel, extraPanel, actionBar string) string {
	extraHeight := 0
	if extraPanel != "" {
		extraHeight = lipgloss.Height(extraPanel)
	}
	contentW, contentH := l.CalculateWithExtra(extraHeight)

	mainBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(l.border).
		BorderBackground(l.background).
		Background(l.background).
		Width(contentW).
		Height(contentH).
		MaxHeight(contentH + 2).
		Render(mainPanel)
	title := lipgloss.NewStyle().
		Foreground(l.titleColor).
		Background(l.background).
		Bold(true).
		Render(l.title)
	mainBox = spliceTitle(mainBox, title)

	parts := []string{mainBox}
	if extraPanel != "" {
		parts = append(parts, extraPanel)
	}
	parts = append(parts, actionBar)

	return lipgloss.Place(
		l.width, l.height,
		lipgloss.Left, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, parts...),
		lipgloss.WithWhitespaceBackground(l.background),
	)
}

// spliceTitle writes title over the top border of box, starting at
// titleOffset. The box is returned unchanged when the title does not fit.
func spliceTitle(box, title string) string {
	lines := strings.Split(box, "\n")
	first := lines[0]

	titleWidth := ansi.StringWidth(title)
	lineWidth := ansi.StringWidth(first)
	if titleOffset+titleWidth >= lineWidth {
		return box
	}

	left := ansi.Truncate(first, titleOffset, "")
	right := ansi.TruncateLeft(first, titleOffset+titleWidth, "")
	lines[0] = left + title + right
	return strings.Join(lines, "\n")
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}
