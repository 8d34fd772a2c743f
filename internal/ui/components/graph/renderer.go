// Package graph draws the cluster graph column: one node per cluster row,
// joined by a vertical line. Every row gets the same fixed-width column so
// the summary and detail regions line up.
package graph

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

const (
	CommitSymbol   = "●"
	ExpandedSymbol = "◉"
	LineVertical   = "│"
	LineEnd        = "╵"

	// LaneSpacing is the number of padding characters after the lane glyph.
	LaneSpacing = 1

	// Width is the number of terminal cells the column occupies.
	Width = 1 + LaneSpacing
)

type GraphRenderer struct {
	colors []lipgloss.Color
}

func NewGraphRenderer(theme styles.Theme) *GraphRenderer {
	return &GraphRenderer{colors: theme.GraphColors()}
}

// Color returns the color of the node at index.
func (g *GraphRenderer) Color(index int) lipgloss.Color {
	if len(g.colors) == 0 {
		return lipgloss.Color("")
	}
	return g.colors[index%len(g.colors)]
}

// Column renders height lines of the graph column for the row at index out of
// count rows. The node sits on nodeLine; lines above it connect to the
// previous row and lines below it to the next one.
func (g *GraphRenderer) Column(index, count, height, nodeLine int, expanded bool, bg lipgloss.Color) []string {
	if height <= 0 {
		return nil
	}

	lineStyle := lipgloss.NewStyle().Foreground(g.Color(index)).Background(bg)
	nodeStyle := lineStyle.Bold(true)
	pad := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", LaneSpacing))
	blank := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", Width))

	node := CommitSymbol
	if expanded {
		node = ExpandedSymbol
	}

	lines := make([]string, height)
	for i := range lines {
		switch {
		case i == nodeLine:
			lines[i] = nodeStyle.Render(node) + pad
		case i < nodeLine && index == 0:
			lines[i] = blank
		case i > nodeLine && index == count-1:
			if i == nodeLine+1 {
				lines[i] = lineStyle.Render(LineEnd) + pad
			} else {
				lines[i] = blank
			}
		default:
			lines[i] = lineStyle.Render(LineVertical) + pad
		}
	}
	return lines
}
