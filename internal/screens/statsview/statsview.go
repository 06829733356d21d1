// Package statsview is the live statistics screen. It recomputes the
// overview on a fixed interval while it is the active screen and the
// terminal has focus.
package statsview

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/abhisek/wordiz/internal/words"
)

type overviewLoadedMsg struct {
	Scope    string
	Overview stats.Overview
	Err      error
}

type scopesLoadedMsg struct {
	Scopes []string
}

// refreshMsg is one refresh tick. Ticks from an older generation are
// dropped so blurring and refocusing never doubles the refresh rate.
type refreshMsg struct {
	gen int
}

// StatsScreen shows the overview of one scope.
type StatsScreen struct {
	svc      screen.Services
	scopes   []string
	scopeIdx int
	overview *stats.Overview
	errMsg   string
	gen      int
	active   bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)
var _ screen.Focusable = (*StatsScreen)(nil)

// New creates a StatsScreen starting on scope.
func New(svc screen.Services, scope string) *StatsScreen {
	if words.IsAllScope(scope) {
		scope = words.ScopeAll
	}
	return &StatsScreen{svc: svc, scopes: []string{scope}, active: true}
}

func (s *StatsScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.loadScopes(), s.schedule())
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Library"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

// Scope returns the library the screen shows.
func (s *StatsScreen) Scope() string {
	return s.scopes[s.scopeIdx]
}

// Focus resumes refreshing when the screen becomes active again.
func (s *StatsScreen) Focus() tea.Cmd {
	s.active = true
	s.gen++
	return tea.Batch(s.load(), s.schedule())
}

// Blur pauses refreshing while another screen covers this one.
func (s *StatsScreen) Blur() {
	s.active = false
	s.gen++
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		if msg.gen != s.gen || !s.active {
			return s, nil
		}
		return s, tea.Batch(s.load(), s.schedule())

	case overviewLoadedMsg:
		if msg.Scope != s.Scope() {
			return s, nil
		}
		// A failed refresh keeps the last good numbers.
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.svc.Log().Printf("warning: refresh stats: %v", msg.Err)
			return s, nil
		}
		ov := msg.Overview
		s.overview = &ov
		s.errMsg = ""
		return s, nil

	case scopesLoadedMsg:
		cur := s.Scope()
		s.scopes = msg.Scopes
		s.scopeIdx = 0
		for i, sc := range s.scopes {
			if sc == cur {
				s.scopeIdx = i
			}
		}
		return s, nil

	case screen.StatsChangedMsg:
		return s, s.load()

	case tea.BlurMsg:
		s.Blur()
		return s, nil

	case tea.FocusMsg:
		if s.active {
			return s, nil
		}
		return s, s.Focus()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			return s, s.load()
		case "tab":
			return s, s.cycle(1)
		case "shift+tab":
			return s, s.cycle(-1)
		}
	}
	return s, nil
}

func (s *StatsScreen) cycle(step int) tea.Cmd {
	n := len(s.scopes)
	if n < 2 {
		return nil
	}
	s.scopeIdx = ((s.scopeIdx+step)%n + n) % n
	s.overview = nil
	return s.load()
}

func (s *StatsScreen) schedule() tea.Cmd {
	gen := s.gen
	interval := s.svc.Config.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshMsg{gen: gen}
	})
}

func (s *StatsScreen) load() tea.Cmd {
	agg := s.svc.Stats
	if agg == nil {
		return nil
	}
	scope := s.Scope()
	return func() tea.Msg {
		ov, err := agg.Overview(context.Background(), scope)
		return overviewLoadedMsg{Scope: scope, Overview: ov, Err: err}
	}
}

func (s *StatsScreen) loadScopes() tea.Cmd {
	libs := s.svc.Libraries
	if libs == nil {
		return nil
	}
	log := s.svc.Log()
	return func() tea.Msg {
		sums, err := libs.Summaries(context.Background())
		if err != nil {
			log.Printf("warning: list libraries: %v", err)
			return nil
		}
		scopes := []string{words.ScopeAll}
		for _, sum := range sums {
			scopes = append(scopes, sum.Name)
		}
		return scopesLoadedMsg{Scopes: scopes}
	}
}

func scopeLabel(scope string) string {
	if words.IsAllScope(scope) {
		return "All libraries"
	}
	return scope
}

func (s *StatsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Secondary).Bold(true).Render(scopeLabel(s.Scope())))
	b.WriteString("\n")
	if len(s.scopes) > 1 {
		b.WriteString(center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d of %d", s.scopeIdx+1, len(s.scopes))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.overview == nil {
		if s.errMsg != "" {
			b.WriteString(center.Foreground(theme.Error).Render("Error: " + s.errMsg))
		} else {
			b.WriteString(center.Foreground(theme.TextDim).Render("Loading statistics..."))
		}
		return b.String()
	}

	ov := s.overview
	cw := components.ContentWidth(width)

	today := fmt.Sprintf("Today  %d answered   %d right   %d wrong   %d%% accuracy",
		ov.Today.Total, ov.Today.Right, ov.Today.Wrong, ov.Today.Accuracy)
	speed := fmt.Sprintf("Speed  %d wpm   best %d wpm   streak %d days",
		ov.Speed, ov.BestSpeed, ov.Streak)
	mastery := fmt.Sprintf("Words  %d imported   %d seen   %d learning   %d mastered",
		ov.Mastery.TotalImported, ov.Mastery.Seen, ov.Mastery.Learning, ov.Mastery.Mastered)
	learning := fmt.Sprintf("Overall  %d words practiced   %d%% accuracy",
		ov.Learning.TotalWords, ov.Learning.Accuracy)

	card := strings.Join([]string{
		theme.Body.Render(today),
		theme.Body.Render(speed),
		theme.Body.Render(mastery),
		theme.Hint.Render(learning),
		"",
		components.NewProgressBar(fmt.Sprintf("Goal %d/%d", ov.Today.Total, ov.Goal), ov.GoalPct, true, cw-6).View(),
		components.NewProgressBar("Coverage", ov.Mastery.Coverage, true, cw-6).View(),
		components.NewProgressBar("Accuracy", ov.Mastery.AccuracyAll, true, cw-6).View(),
	}, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeCard("Day "+ov.Day, card, cw)))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render("Refresh failed: " + s.errMsg))
	}
	return b.String()
}
