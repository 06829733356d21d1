package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Logo is the block-letter WORDIZ title shared with the home screen.
const Logo = `██╗    ██╗ ██████╗ ██████╗ ██████╗ ██╗███████╗
██║    ██║██╔═══██╗██╔══██╗██╔══██╗██║╚══███╔╝
██║ █╗ ██║██║   ██║██████╔╝██║  ██║██║  ███╔╝
██║███╗██║██║   ██║██╔══██╗██║  ██║██║ ███╔╝
╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝██║███████╗
 ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝╚══════╝`

// LogoCompact replaces Logo on narrow terminals.
const LogoCompact = "W O R D I Z"

// LogoWidth is the column width of Logo.
const LogoWidth = 47

// RenderBanner returns the WORDIZ banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the logo.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < LogoWidth+4 {
		return style.Render(LogoCompact)
	}
	return style.Render(Logo)
}
