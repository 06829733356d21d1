package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Bounds for the shared inner width of framed screens.
const (
	minContentWidth = 24
	maxContentWidth = 68
)

// ContentWidth returns the inner width shared by every section of a framed
// screen so the boxes line up. The frame border and padding take 6 columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, minContentWidth), maxContentWidth)
}

// CabinetFrame wraps content in a double border and centers it both ways.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded card of width cw. A non-empty title
// is drawn bold above the content.
func ArcadeCard(title, content string, cw int) string {
	if title != "" {
		content = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(title) + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

var (
	buttonBase = lipgloss.NewStyle().
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	buttonSelected = buttonBase.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		BorderForeground(theme.ArcadeYellow)
	buttonIdle = buttonBase.
		Foreground(theme.Text).
		BorderForeground(theme.Border)
)

// ArcadeButton renders a menu button; the selected one is highlighted.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return buttonSelected.Width(width).Render("▸ " + label)
	}
	return buttonIdle.Width(width).Render(label)
}
