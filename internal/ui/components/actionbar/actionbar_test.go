package actionbar

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

func TestViewShowsCountsAndScope(t *testing.T) {
	m := New(styles.NewStyles(styles.CatppuccinMocha()), 120)
	m.SetCounts(4, 10, 2)
	m.SetFilter("fix")
	m.SetScope("main")

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "4/10 clusters · 2 open")
	assert.Contains(t, view, "/fix")
	assert.Contains(t, view, "main")

	m.SetScope("")
	assert.Contains(t, ansi.Strip(m.View()), "all refs")
}

func TestViewStaysOneLine(t *testing.T) {
	m := New(styles.NewStyles(styles.CatppuccinMocha()), 50)
	m.SetCounts(3, 3, 0)

	view := m.View()
	assert.Equal(t, 1, lipgloss.Height(view))
	assert.Equal(t, 50, lipgloss.Width(view))
	assert.Contains(t, ansi.Strip(view), "3 clusters")
}

func TestMessageReplacesHints(t *testing.T) {
	m := New(styles.NewStyles(styles.CatppuccinMocha()), 100)
	m.SetMessage("Copied summary")
	assert.Contains(t, ansi.Strip(m.View()), "Copied summary")
	assert.NotContains(t, ansi.Strip(m.View()), "[enter]toggle")

	m.ClearMessage()
	assert.Empty(t, m.Message())
	assert.Contains(t, ansi.Strip(m.View()), "[enter]toggle")
}
