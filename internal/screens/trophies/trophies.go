package trophies

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/achievements"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// filter selects which achievements are listed.
type filter int

const (
	filterAll filter = iota
	filterUnlocked
	filterLocked
)

var filters = []filter{filterAll, filterUnlocked, filterLocked}

func (f filter) label() string {
	switch f {
	case filterUnlocked:
		return "Unlocked"
	case filterLocked:
		return "Locked"
	default:
		return "All"
	}
}

func (f filter) match(a store.Achievement) bool {
	switch f {
	case filterUnlocked:
		return a.Unlocked
	case filterLocked:
		return !a.Unlocked
	default:
		return true
	}
}

type achievementsLoadedMsg struct {
	Achievements []store.Achievement
	Err          error
}

// TrophyScreen shows achievement progress.
type TrophyScreen struct {
	tracker      *achievements.Tracker
	all          []store.Achievement
	selected     filter
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*TrophyScreen)(nil)
var _ screen.KeyHintProvider = (*TrophyScreen)(nil)

// New creates a new TrophyScreen.
func New(tracker *achievements.Tracker) *TrophyScreen {
	return &TrophyScreen{tracker: tracker}
}

func (s *TrophyScreen) Init() tea.Cmd {
	return func() tea.Msg {
		all, err := s.tracker.All(context.Background())
		return achievementsLoadedMsg{Achievements: all, Err: err}
	}
}

func (s *TrophyScreen) Title() string {
	return "Achievements"
}

func (s *TrophyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TrophyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case achievementsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.all = msg.Achievements
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.selected = filters[(int(s.selected)+1)%len(filters)]
			s.scrollOffset = 0
			return s, nil
		case "shift+tab":
			s.selected = filters[(int(s.selected)-1+len(filters))%len(filters)]
			s.scrollOffset = 0
			return s, nil
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
			return s, nil
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *TrophyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading achievements...")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nUnlocked: %d of %d\n", s.count(filterUnlocked), len(s.all))))
	b.WriteString("\n")

	var tabs []string
	for _, f := range filters {
		label := fmt.Sprintf("%s (%d)", f.label(), s.count(f))
		if f == s.selected {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	list := s.filtered()
	if len(list) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nothing here yet"))
		return b.String()
	}

	// Each achievement takes three lines.
	maxVisible := max((height-10)/3, 1)
	start := s.scrollOffset
	end := min(start+maxVisible, len(list))
	barWidth := min(width-8, 50)

	for _, a := range list[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderAchievement(a, barWidth)))
		b.WriteString("\n\n")
	}

	if end < len(list) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(list)-end)))
	}

	return b.String()
}

func renderAchievement(a store.Achievement, barWidth int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	status := fmt.Sprintf("%d/%d", a.Progress, a.MaxProgress)
	if a.Unlocked {
		titleStyle = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
		status = "Unlocked"
	}
	head := fmt.Sprintf("%s %s  %s", achievements.Icon(a.ID), titleStyle.Render(a.Title),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(a.Description))
	bar := components.NewProgressBar(status, achievements.Percent(a), true, barWidth).View()
	return head + "\n" + bar
}

func (s *TrophyScreen) filtered() []store.Achievement {
	var out []store.Achievement
	for _, a := range s.all {
		if s.selected.match(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s *TrophyScreen) count(f filter) int {
	n := 0
	for _, a := range s.all {
		if f.match(a) {
			n++
		}
	}
	return n
}
