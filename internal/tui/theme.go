package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Timer     lipgloss.Style
	Paused    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Input     lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
}

var Themes = map[string]Theme{
	"light": {
		Name:      "Light",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("63"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Padding(0, 2).Underline(true),
		Timer:     lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true),
		Paused:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(44),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("247")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
	},
	"dark": {
		Name:      "Dark",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Padding(0, 2).Underline(true),
		Timer:     lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true),
		Paused:    lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(44),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
	},
}

// CurrentTheme holds the currently active theme.
// We initialize it to light to avoid nil pointer dereferences.
var CurrentTheme = Themes["light"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}

// ApplyDarkMode maps the persisted dark-mode flag onto a theme.
func ApplyDarkMode(dark bool) {
	if dark {
		SetTheme("dark")
	} else {
		SetTheme("light")
	}
}
