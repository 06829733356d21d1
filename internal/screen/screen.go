package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Focusable is implemented by screens that run background work only while
// they are on top of the stack.
type Focusable interface {
	// Focus is called when the screen becomes the active screen again.
	Focus() tea.Cmd

	// Blur is called when another screen is pushed on top.
	Blur()
}

// BackHandler is implemented by screens that handle Esc themselves instead
// of being popped.
type BackHandler interface {
	Back() tea.Cmd
}

// StatsChangedMsg is broadcast after an answer is recorded so that
// displayed statistics can be recomputed.
type StatsChangedMsg struct{}
