package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/clusterlog/internal/config"
)

func TestFromConfigFallsBackToDefaults(t *testing.T) {
	def := DefaultKeyMap()

	km := FromConfig(config.KeybindingsConfig{Toggle: []string{"o"}})
	assert.Equal(t, []string{"o"}, km.Toggle)
	assert.Equal(t, def.Quit, km.Quit)
	assert.Equal(t, def.CopyDiff, km.CopyDiff)
	assert.NotEmpty(t, km.Down)
}

func TestMatchesKey(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, MatchesKey(tea.KeyMsg{Type: tea.KeyEnter}, km.Toggle))
	assert.True(t, MatchesKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, km.Quit))
	assert.True(t, MatchesKey(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	assert.False(t, MatchesKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, km.Quit))
	assert.False(t, MatchesKey(tea.KeyMsg{Type: tea.KeyEnter}, nil))
}
