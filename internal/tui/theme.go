package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the inspector uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	labelStyle   = lipgloss.NewStyle().Foreground(colorOverlay0).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(colorText)
	commandStyle = lipgloss.NewStyle().Foreground(colorBlue)
	eventStyle   = lipgloss.NewStyle().Foreground(colorTeal)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	onStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	offStyle     = lipgloss.NewStyle().Foreground(colorOverlay0)
	hintStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
	statusStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)
	focusPanelStyle = panelStyle.BorderForeground(colorLavender)
)
