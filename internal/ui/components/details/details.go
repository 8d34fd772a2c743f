package details

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/clusterlog/internal/cluster"
	"github.com/yourusername/clusterlog/internal/ui/components/commitinfo"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

// Model renders the detail region of expanded clusters. Each cluster keeps
// its own scroll offset, so several expanded clusters can be read side by
// side in the list.
type Model struct {
	styles  *styles.Styles
	offsets map[int]int
	limits  map[int]int
	now     func() time.Time
}

func New(styles *styles.Styles) Model {
	return Model{
		styles:  styles,
		offsets: make(map[int]int),
		limits:  make(map[int]int),
		now:     time.Now,
	}
}

// RenderDetail renders exactly height lines of width cells for cluster c.
func (m Model) RenderDetail(c cluster.Cluster, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	bg := m.styles.Theme.PanelBackground
	contentWidth := width - 1
	if contentWidth < 1 {
		contentWidth = 1
	}

	now := m.now()
	lines := make([]string, 0, len(c.Commits)+1)
	lines = append(lines, commitinfo.Header(m.styles, c, contentWidth, bg))
	for _, commit := range c.Commits {
		lines = append(lines, commitinfo.Line(m.styles, commit, contentWidth, bg, now))
		for _, f := range commit.Files {
			lines = append(lines, commitinfo.FileLine(m.styles, f, contentWidth, bg))
		}
	}

	vp := viewport.New(contentWidth, height)
	vp.SetContent(strings.Join(lines, "\n"))

	limit := len(lines) - height
	if limit < 0 {
		limit = 0
	}
	m.limits[c.ID] = limit
	// Offsets scrolled before the first render may be past the end.
	if m.offsets[c.ID] > limit {
		m.offsets[c.ID] = limit
	}
	vp.SetYOffset(m.offsets[c.ID])

	body := lipgloss.NewStyle().
		Background(bg).
		Width(contentWidth).
		Height(height).
		MaxHeight(height).
		Render(vp.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderScrollbar(vp, height, limit > 0))
}

// ScrollBy moves the detail region of cluster id by delta lines.
func (m Model) ScrollBy(id, delta int) {
	next := m.offsets[id] + delta
	if limit, ok := m.limits[id]; ok && next > limit {
		next = limit
	}
	if next < 0 {
		next = 0
	}
	m.offsets[id] = next
}

// Offset returns the current scroll offset of cluster id.
func (m Model) Offset(id int) int {
	return m.offsets[id]
}

func (m Model) renderScrollbar(vp viewport.Model, height int, scrollable bool) string {
	bg := m.styles.Theme.PanelBackground
	if !scrollable {
		return lipgloss.NewStyle().Background(bg).Width(1).Height(height).Render("")
	}

	trackChar := "│"
	thumbChar := "█"

	scrollbarStyle := lipgloss.NewStyle().Foreground(m.styles.Theme.Border).Background(bg)
	thumbStyle := lipgloss.NewStyle().Foreground(m.styles.Theme.Author).Background(bg)

	thumbPosition := int(vp.ScrollPercent() * float64(height))
	if thumbPosition >= height {
		thumbPosition = height - 1
	}

	parts := make([]string, height)
	for i := range parts {
		if i == thumbPosition {
			parts[i] = thumbStyle.Render(thumbChar)
		} else {
			parts[i] = scrollbarStyle.Render(trackChar)
		}
	}

	return strings.Join(parts, "\n")
}
