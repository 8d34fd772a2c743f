package keys

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/clusterlog/internal/config"
)

type KeyMap struct {
	Quit        []string
	Help        []string
	Filter      []string
	Branch      []string
	Fetch       []string
	Toggle      []string
	Collapse    []string
	Up          []string
	Down        []string
	Top         []string
	Bottom      []string
	PageUp      []string
	PageDown    []string
	DetailUp    []string
	DetailDown  []string
	CopyHashes  []string
	CopySummary []string
	CopyDiff    []string
}

func DefaultKeyMap() KeyMap {
	return FromConfig(config.DefaultConfig().Keybindings)
}

// FromConfig builds a KeyMap from configured bindings. Empty bindings fall
// back to the defaults so a partial config never leaves an action unbound.
func FromConfig(kb config.KeybindingsConfig) KeyMap {
	def := config.DefaultConfig().Keybindings
	pick := func(v, fallback []string) []string {
		if len(v) == 0 {
			return fallback
		}
		return v
	}
	return KeyMap{
		Quit:        pick(kb.Quit, def.Quit),
		Help:        pick(kb.Help, def.Help),
		Filter:      pick(kb.Filter, def.Filter),
		Branch:      pick(kb.Branch, def.Branch),
		Fetch:       pick(kb.Fetch, def.Fetch),
		Toggle:      pick(kb.Toggle, def.Toggle),
		Collapse:    pick(kb.Collapse, def.Collapse),
		Up:          pick(kb.Up, def.Up),
		Down:        pick(kb.Down, def.Down),
		Top:         pick(kb.Top, def.Top),
		Bottom:      pick(kb.Bottom, def.Bottom),
		PageUp:      pick(kb.PageUp, def.PageUp),
		PageDown:    pick(kb.PageDown, def.PageDown),
		DetailUp:    pick(kb.DetailUp, def.DetailUp),
		DetailDown:  pick(kb.DetailDown, def.DetailDown),
		CopyHashes:  pick(kb.CopyHashes, def.CopyHashes),
		CopySummary: pick(kb.CopySummary, def.CopySummary),
		CopyDiff:    pick(kb.CopyDiff, def.CopyDiff),
	}
}

func MatchesKey(msg tea.KeyMsg, keys []string) bool {
	for _, key := range keys {
		if msg.String() == key {
			return true
		}
	}
	return false
}
