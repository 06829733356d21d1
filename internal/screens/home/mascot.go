package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// MascotVariant selects which pose the open-book mascot takes.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // daily goal met
	MascotAlert                     // reviews are waiting
)

var mascotArt = map[MascotVariant]string{
	MascotIdle: ` ___ ___
│ A │ 文 │
│ ◉ ▽ ◉  │
└───┴────┘`,
	MascotCelebrating: `\___ ___/
│ A │ 文 │
│ ★ ▿ ★  │
└───┴────┘`,
	MascotAlert: ` ___ ___  !
│ A │ 文 │
│ ◉ ○ ◉  │
└───┴────┘`,
}

var mascotColor = map[MascotVariant]lipgloss.Style{
	MascotIdle:        lipgloss.NewStyle().Foreground(theme.Primary),
	MascotCelebrating: lipgloss.NewStyle().Foreground(theme.ArcadeYellow),
	MascotAlert:       lipgloss.NewStyle().Foreground(theme.Accent),
}

// RenderMascot returns the mascot art for v, falling back to the idle pose.
func RenderMascot(v MascotVariant) string {
	art, ok := mascotArt[v]
	if !ok {
		v, art = MascotIdle, mascotArt[MascotIdle]
	}
	return mascotColor[v].Render(art)
}
