package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/history"
	"github.com/abhisek/wordiz/internal/screens/libraries"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/screens/statsview"
	"github.com/abhisek/wordiz/internal/screens/trophies"
	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/words"
)

// dashboard is the stats bar content.
type dashboard struct {
	Mastered  int
	Due       int
	Streak    int
	GoalMet   bool
	Libraries int
}

type dashboardLoadedMsg struct {
	Dashboard dashboard
	Err       error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	svc  screen.Services
	menu components.Menu
	dash dashboard
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Focusable = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}

	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Key: "p", Action: push(func() screen.Screen {
			return practice.New(svc, svc.Config.Library, svc.Config.Mode)
		})},
		{Label: "STATISTICS", Key: "s", Action: push(func() screen.Screen {
			return statsview.New(svc, svc.Config.Library)
		})},
		{Label: "ACHIEVEMENTS", Key: "a", Action: push(func() screen.Screen {
			return trophies.New(svc.Achievements)
		})},
		{Label: "LIBRARIES", Key: "l", Action: push(func() screen.Screen {
			return libraries.New(svc)
		})},
		{Label: "HISTORY", Key: "h", Action: push(func() screen.Screen {
			return history.New(svc.Events)
		})},
		{Label: "EXIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadDashboard()
}

// Focus reloads the stats bar after returning from another screen.
func (h *HomeScreen) Focus() tea.Cmd {
	return h.loadDashboard()
}

func (h *HomeScreen) Blur() {}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.Err != nil {
			h.svc.Log().Printf("warning: load dashboard: %v", msg.Err)
			return h, nil
		}
		h.dash = msg.Dashboard
		return h, nil
	case screen.StatsChangedMsg:
		return h, h.loadDashboard()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) loadDashboard() tea.Cmd {
	svc := h.svc
	if svc.Stats == nil || svc.Progress == nil {
		return nil
	}
	dueLimit := svc.Config.DueLimit
	if dueLimit <= 0 {
		dueLimit = spacedrep.DefaultDueLimit
	}
	return func() tea.Msg {
		ctx := context.Background()
		var d dashboard

		ms, err := svc.Stats.MasteryStats(ctx, words.ScopeAll)
		if err != nil {
			return dashboardLoadedMsg{Err: err}
		}
		d.Mastered = ms.Mastered

		due, err := svc.Progress.Due(ctx, time.Now(), dueLimit)
		if err != nil {
			return dashboardLoadedMsg{Err: err}
		}
		d.Due = len(due)

		if d.Streak, err = svc.Stats.Streak(ctx); err != nil {
			return dashboardLoadedMsg{Err: err}
		}
		today, err := svc.Stats.DailySummary(ctx, svc.Stats.Today(), words.ScopeAll)
		if err != nil {
			return dashboardLoadedMsg{Err: err}
		}
		d.GoalMet = today.Total >= svc.Stats.DailyGoal()

		if svc.Libraries != nil {
			sums, err := svc.Libraries.Summaries(ctx)
			if err != nil {
				return dashboardLoadedMsg{Err: err}
			}
			d.Libraries = len(sums)
		}
		return dashboardLoadedMsg{Dashboard: d}
	}
}

// mascot picks the mascot mood from the dashboard.
func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.dash.Due >= 3:
		return MascotAlert
	case h.dash.GoalMet:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}

	sections = append(sections, renderStatsBar(h.dash, cw, compact))

	if h.dash.Libraries == 0 && h.svc.Libraries != nil {
		sections = append(sections, renderImportBanner(cw))
	}

	if compact && termHeight < 24 {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
