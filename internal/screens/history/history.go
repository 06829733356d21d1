package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Limit is how many recent answers the screen loads.
const Limit = 100

type historyLoadedMsg struct {
	Events []store.PracticeEvent
	Err    error
}

// dayGroup is one calendar day of answers, newest first.
type dayGroup struct {
	Day     string
	Summary stats.DailySummary
	Events  []store.PracticeEvent
}

// HistoryScreen lists recent answers grouped by day.
type HistoryScreen struct {
	eventRepo store.EventRepo
	groups    []dayGroup
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  map[int]bool{0: true},
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.Recent(context.Background(), Limit)
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.groups = groupByDay(msg.Events)
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.groups)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

// groupByDay splits newest-first events into day groups, keeping the order.
func groupByDay(events []store.PracticeEvent) []dayGroup {
	var groups []dayGroup
	for _, ev := range events {
		if n := len(groups); n == 0 || groups[n-1].Day != ev.Day {
			groups = append(groups, dayGroup{Day: ev.Day})
		}
		g := &groups[len(groups)-1]
		g.Events = append(g.Events, ev)
	}
	for i := range groups {
		groups[i].Summary = stats.Summarize(groups[i].Events, "")
	}
	return groups
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.groups) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, g := range s.groups {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %d words  %d right  %d wrong  %d%% accuracy",
			prefix, g.Day, g.Summary.Total, g.Summary.Right, g.Summary.Wrong, g.Summary.Accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if !s.expanded[i] {
			continue
		}
		for _, ev := range g.Events {
			mark := theme.Correct.Render("✓")
			if !ev.Correct {
				mark = theme.Incorrect.Render("✗")
			}
			mode := ev.Mode
			if m, err := session.ParseMode(ev.Mode); err == nil {
				mode = m.Label()
			}
			detail := fmt.Sprintf("    %s %s  %-20s %-10s %s", mark,
				ev.Timestamp.Format("15:04"), ev.Headword, mode, ev.Library)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
