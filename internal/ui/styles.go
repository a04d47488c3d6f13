package ui

import "github.com/charmbracelet/lipgloss"

// Color theme constants for consistent styling
var (
	ArmyGreen  = lipgloss.Color("58")  // #5f5f00
	LightGreen = lipgloss.Color("64")  // #5f8700
	Brown      = lipgloss.Color("94")  // #875f00
	Yellow     = lipgloss.Color("226") // #ffff00
	GoldYellow = lipgloss.Color("220") // #ffd700
	Red        = lipgloss.Color("196") // #ff0000
	Tan        = lipgloss.Color("180") // #d7af87
	Grey       = lipgloss.Color("240")
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(Yellow).Background(ArmyGreen).Bold(true).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(GoldYellow).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(LightGreen)
	mutedStyle  = lipgloss.NewStyle().Foreground(Grey)
	hintStyle   = lipgloss.NewStyle().Foreground(Tan)
	toastStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(Red).Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(Brown).Italic(true)

	buttonEnabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(LightGreen).
				Bold(true).
				Padding(0, 1)
	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(Grey).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	radioSelectedStyle   = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	radioUnselectedStyle = lipgloss.NewStyle().Foreground(Tan)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ArmyGreen).
			Padding(0, 1)
)

func button(label, key string, enabled bool) string {
	text := label + " " + key
	if enabled {
		return buttonEnabledStyle.Render(text)
	}
	return buttonDisabledStyle.Render(text)
}

func radio(label string, selected bool) string {
	if selected {
		return radioSelectedStyle.Render("(•) " + label)
	}
	return radioUnselectedStyle.Render("( ) " + label)
}
