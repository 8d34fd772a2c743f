package clusterlist

import (
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yourusername/clusterlog/internal/avatar"
	"github.com/yourusername/clusterlog/internal/cluster"
	"github.com/yourusername/clusterlog/internal/ui/components/graph"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

// DetailRenderer draws the detail region of an expanded cluster. It must
// return at most height lines of width cells.
type DetailRenderer interface {
	RenderDetail(c cluster.Cluster, width, height int) string
}

// Regions locates the parts of a row relative to the row's first line.
// DetailTop is -1 when the row is collapsed.
type Regions struct {
	SummaryTop    int
	SummaryHeight int
	DetailTop     int
	DetailHeight  int
}

// Row is one rendered cluster row.
type Row struct {
	View     string
	Expanded bool
	Regions
}

// Badge is one author badge. Image is empty when no image is known.
type Badge struct {
	Name  string
	Image string
}

// RowRenderer renders cluster rows: graph column, summary region and, for
// expanded clusters, the detail region below the summary.
type RowRenderer struct {
	styles        *styles.Styles
	graph         *graph.GraphRenderer
	details       DetailRenderer
	heights       Heights
	clusterHeight int
	nodeGap       int
	width         int
}

func NewRowRenderer(st *styles.Styles, details DetailRenderer, clusterHeight, nodeGap, detailHeight int) RowRenderer {
	return RowRenderer{
		styles:        st,
		graph:         graph.NewGraphRenderer(st.Theme),
		details:       details,
		heights:       NewHeights(clusterHeight, nodeGap, detailHeight),
		clusterHeight: clusterHeight,
		nodeGap:       nodeGap,
	}
}

func (r *RowRenderer) SetWidth(width int) {
	r.width = width
}

// Heights returns the row heights the renderer lays rows out with.
func (r RowRenderer) Heights() Heights {
	return r.heights
}

// Regions returns where the summary and detail regions sit inside a row.
func (r RowRenderer) Regions(expanded bool) Regions {
	reg := Regions{
		SummaryTop:    r.nodeGap,
		SummaryHeight: r.clusterHeight,
		DetailTop:     -1,
	}
	if expanded {
		reg.DetailTop = r.clusterHeight + 2*r.nodeGap
		reg.DetailHeight = r.heights.Detail
	}
	return reg
}

// Render draws the cluster at index out of count rows. focused marks the
// keyboard cursor row.
func (r RowRenderer) Render(index, count int, c cluster.Cluster, selection cluster.Set, images avatar.Map, focused bool) Row {
	expanded := selection.Has(c.ID)
	height := r.heights.Of(c, selection)
	reg := r.Regions(expanded)

	theme := r.styles.Theme
	bg := theme.Background
	if expanded {
		bg = theme.PanelBackground
	}
	if focused {
		bg = theme.Cursor
	}

	bodyWidth := r.width - graph.Width
	if bodyWidth < 1 {
		bodyWidth = 1
	}

	body := make([]string, height)
	copy(body[reg.SummaryTop:], r.summary(c, expanded, images, bodyWidth, bg))
	if expanded && r.details != nil {
		detail := strings.Split(r.details.RenderDetail(c, bodyWidth, reg.DetailHeight), "\n")
		if len(detail) > reg.DetailHeight {
			detail = detail[:reg.DetailHeight]
		}
		copy(body[reg.DetailTop:], detail)
	}

	column := r.graph.Column(index, count, height, reg.SummaryTop, expanded, bg)
	fill := lipgloss.NewStyle().Background(bg)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = column[i] + fit(body[i], bodyWidth, fill)
	}

	return Row{
		View:     strings.Join(lines, "\n"),
		Expanded: expanded,
		Regions:  reg,
	}
}

// summary renders the clickable summary region: badges and latest tag on the
// first line, content after. Collapsed rows cut the content to one line;
// expanded rows wrap it over the remaining summary lines.
func (r RowRenderer) summary(c cluster.Cluster, expanded bool, images avatar.Map, width int, bg lipgloss.Color) []string {
	spacer := lipgloss.NewStyle().Background(bg).Render(" ")
	contentStyle := r.styles.Content.Background(bg)

	head := r.renderBadges(Badges(c.Summary.AuthorNames, images), bg)
	if t, ok := cluster.LatestTag(c.Tags); ok {
		head += spacer + r.styles.Tag.Render("t:"+t.Name)
	}

	if r.clusterHeight == 1 {
		avail := width - lipgloss.Width(head) - 1
		if avail < 0 {
			avail = 0
		}
		return []string{head + spacer + contentStyle.Render(ansi.Truncate(c.Summary.Content, avail, "…"))}
	}

	lines := make([]string, r.clusterHeight)
	lines[0] = head

	if !expanded {
		lines[1] = contentStyle.Render(ansi.Truncate(c.Summary.Content, width, "…"))
		return lines
	}

	avail := r.clusterHeight - 1
	wrapped := strings.Split(ansi.Wrap(c.Summary.Content, width, ""), "\n")
	if len(wrapped) > avail {
		wrapped = wrapped[:avail]
		last := ansi.Truncate(wrapped[avail-1], width-1, "")
		wrapped[avail-1] = last + "…"
	}
	for i, w := range wrapped {
		lines[i+1] = contentStyle.Render(w)
	}
	return lines
}

// Badges lists each author once, in order of first appearance, with the image
// from images when there is one.
func Badges(authorNames [][]string, images avatar.Map) []Badge {
	seen := make(map[string]bool)
	var badges []Badge
	for _, group := range authorNames {
		for _, name := range group {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			img, _ := images.Lookup(name)
			badges = append(badges, Badge{Name: name, Image: img})
		}
	}
	return badges
}

func (r RowRenderer) renderBadges(badges []Badge, bg lipgloss.Color) string {
	spacer := lipgloss.NewStyle().Background(bg).Render(" ")
	parts := make([]string, 0, len(badges))
	for _, b := range badges {
		s := r.styles.Badge.Background(r.graph.Color(nameColor(b.Name))).Render(initials(b.Name))
		if b.Image != "" {
			s = ansi.SetHyperlink(b.Image) + s + ansi.ResetHyperlink()
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, spacer)
}

func initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "?"
	}
	first := []rune(fields[0])[0]
	if len(fields) == 1 {
		return string(unicode.ToUpper(first))
	}
	last := []rune(fields[len(fields)-1])[0]
	return string([]rune{unicode.ToUpper(first), unicode.ToUpper(last)})
}

func nameColor(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % 1024)
}

// fit cuts or pads s to exactly width cells.
func fit(s string, width int, fill lipgloss.Style) string {
	s = ansi.Truncate(s, width, "")
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += fill.Width(gap).Render("")
	}
	return s
}
