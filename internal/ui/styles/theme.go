package styles

import "github.com/charmbracelet/lipgloss"

// Theme is a palette. Backgrounds get darker (or lighter, for light themes)
// from Background to BadgeText.
type Theme struct {
	Background      lipgloss.Color
	PanelBackground lipgloss.Color // expanded rows and detail regions
	BadgeText       lipgloss.Color

	Foreground lipgloss.Color
	Subtext    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Cursor     lipgloss.Color
	Author     lipgloss.Color
	Scope      lipgloss.Color
	Current    lipgloss.Color
	Tag        lipgloss.Color
	Hash       lipgloss.Color

	// Nodes cycle over cluster rows and author badges.
	Nodes []lipgloss.Color
}

// CatppuccinMocha is the default dark theme.
func CatppuccinMocha() Theme {
	return Theme{
		Background:      lipgloss.Color("#1e1e2e"),
		PanelBackground: lipgloss.Color("#181825"),
		BadgeText:       lipgloss.Color("#11111b"),

		Foreground: lipgloss.Color("#cdd6f4"),
		Subtext:    lipgloss.Color("#a6adc8"),
		Muted:      lipgloss.Color("#585b70"),
		Border:     lipgloss.Color("#313244"),
		Cursor:     lipgloss.Color("#45475a"),
		Author:     lipgloss.Color("#89b4fa"),
		Scope:      lipgloss.Color("#a6e3a1"),
		Current:    lipgloss.Color("#cba6f7"),
		Tag:        lipgloss.Color("#f9e2af"),
		Hash:       lipgloss.Color("#fab387"),

		Nodes: []lipgloss.Color{"#89b4fa", "#cba6f7", "#94e2d5", "#f9e2af", "#a6e3a1", "#f38ba8"},
	}
}

func CatppuccinLatte() Theme {
	return Theme{
		Background:      lipgloss.Color("#eff1f5"),
		PanelBackground: lipgloss.Color("#e6e9ef"),
		BadgeText:       lipgloss.Color("#dce0e8"),

		Foreground: lipgloss.Color("#4c4f69"),
		Subtext:    lipgloss.Color("#6c6f85"),
		Muted:      lipgloss.Color("#9ca0b0"),
		Border:     lipgloss.Color("#ccd0da"),
		Cursor:     lipgloss.Color("#bcc0cc"),
		Author:     lipgloss.Color("#1e66f5"),
		Scope:      lipgloss.Color("#40a02b"),
		Current:    lipgloss.Color("#8839ef"),
		Tag:        lipgloss.Color("#df8e1d"),
		Hash:       lipgloss.Color("#fe640b"),

		Nodes: []lipgloss.Color{"#1e66f5", "#8839ef", "#179299", "#df8e1d", "#40a02b", "#d20f39"},
	}
}

// GetTheme returns the named theme, falling back to catppuccin-mocha.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-latte":
		return CatppuccinLatte()
	default:
		return CatppuccinMocha()
	}
}
