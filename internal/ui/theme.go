package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/creahut/internal/logtail"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Main content panels
	SurfaceAlt string // Secondary surfaces

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Accent2 string // second stop of the header gradient
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent2)).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		Link: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Underline(true),
	}
}

// LogStyles colors diagnostics log levels.
func (t Theme) LogStyles() logtail.LevelStyles {
	return logtail.LevelStyles{
		Debug: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		Info:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)).Bold(true),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	// Components
	Header lipgloss.Style
	Title  lipgloss.Style
	Input  lipgloss.Style
	Panel  lipgloss.Style
	Link   lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"CreaHut":  creahutTheme(),
	"Kanagawa": kanagawaTheme(),
	"Paper":    paperTheme(),
}

var themeOrder = []string{"CreaHut", "Kanagawa", "Paper"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return creahutTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	out := make([]string, len(themeOrder))
	copy(out, themeOrder)
	return out
}

func creahutTheme() Theme {
	// Tailwind blue-400 to purple-600, the web form's gradient.
	return Theme{
		Name: "CreaHut",

		Background: "#0f172a", // slate-900
		Surface:    "#1e1b4b", // indigo-950
		SurfaceAlt: "#312e81", // indigo-900

		Border:      "#6366f1", // indigo-500
		BorderFocus: "#60a5fa", // blue-400

		Text:    "#ffffff",
		Muted:   "#c7d2fe", // indigo-200
		Faint:   "#818cf8", // indigo-400
		Accent:  "#2563eb", // blue-600
		Accent2: "#9333ea", // purple-600
		Success: "#4ade80", // green-400
		Warning: "#fbbf24", // amber-400
		Danger:  "#f87171", // red-400
		Info:    "#93c5fd", // blue-300
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4

		Border:      "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#2D4F67", // waveBlue1
		Accent2: "#957FB8", // oniViolet
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue
	}
}

func paperTheme() Theme {
	// Black ink on white, like the pages it draws.
	return Theme{
		Name: "Paper",

		Background: "#ffffff",
		Surface:    "#f5f5f5",
		SurfaceAlt: "#e5e5e5",

		Border:      "#a3a3a3",
		BorderFocus: "#171717",

		Text:    "#171717",
		Muted:   "#525252",
		Faint:   "#a3a3a3",
		Accent:  "#404040",
		Accent2: "#171717",
		Success: "#15803d",
		Warning: "#b45309",
		Danger:  "#b91c1c",
		Info:    "#1d4ed8",
	}
}
