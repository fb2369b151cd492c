package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

// Theme defines the color scheme for the TUI and the hue sweep used for
// trajectory ages.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
	Gradient trajectory.Gradient
}

// Available themes
var (
	ThemeNeon = Theme{
		Name:     "neon",
		Primary:  lipgloss.Color("#ff00ff"),
		Accent:   lipgloss.Color("#00ffff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Success:  lipgloss.Color("#00ff88"),
		Warning:  lipgloss.Color("#ff8800"),
		Error:    lipgloss.Color("#ff0000"),
		Gradient: trajectory.DefaultGradient(),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"), // green phosphor
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Success:  lipgloss.Color("#88ff88"),
		Warning:  lipgloss.Color("#ffff00"),
		Error:    lipgloss.Color("#ff0000"),
		Gradient: trajectory.Gradient{StartHue: 90, EndHue: 140, Saturation: 1, Value: 1},
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Primary:  lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Success:  lipgloss.Color("#00ff00"),
		Warning:  lipgloss.Color("#ffaa00"),
		Error:    lipgloss.Color("#ff0000"),
		Gradient: trajectory.Gradient{StartHue: 0, EndHue: 0, Saturation: 0, Value: 1},
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Primary:  lipgloss.Color("#0077be"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Success:  lipgloss.Color("#00ff88"),
		Warning:  lipgloss.Color("#ffcc00"),
		Error:    lipgloss.Color("#ff4444"),
		Gradient: trajectory.Gradient{StartHue: 240, EndHue: 170, Saturation: 0.9, Value: 1},
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Primary:  lipgloss.Color("#ff6b6b"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Success:  lipgloss.Color("#5fd068"),
		Warning:  lipgloss.Color("#ffc048"),
		Error:    lipgloss.Color("#ff4757"),
		Gradient: trajectory.Gradient{StartHue: 280, EndHue: 40, Saturation: 0.85, Value: 1},
	}

	Themes = []Theme{
		ThemeNeon,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// ThemeIndex returns the position of a theme by name, falling back to
// neon.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func GetTheme(name string) Theme {
	return Themes[ThemeIndex(name)]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
