package theme

import (
	"github.com/charmbracelet/lipgloss"

	"crux/internal/contract"
)

// Catppuccin Mocha.
var (
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Blue     = lipgloss.Color("#89b4fa")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Mauve    = lipgloss.Color("#cba6f7")
	Yellow   = lipgloss.Color("#f9e2af")

	Tile = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 2).
		Align(lipgloss.Center)

	Alert = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Red).
		Foreground(Text).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Big   = lipgloss.NewStyle().Foreground(Text).Bold(true)
)

// Accent maps a contract color tag onto the palette.
func Accent(c contract.Color) lipgloss.Color {
	switch c {
	case contract.ColorGreen:
		return Green
	case contract.ColorBlue:
		return Blue
	case contract.ColorOrange:
		return Peach
	case contract.ColorRed:
		return Red
	case contract.ColorPurple:
		return Mauve
	case contract.ColorYellow:
		return Yellow
	}
	return Subtext0
}
