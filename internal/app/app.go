package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/home"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/screens/welcome"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/words"
)

type headerTickMsg time.Time

type headerLoadedMsg struct {
	Stats layout.HeaderStats
	Err   error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	services screen.Services
	header   layout.HeaderStats
	width    int
	height   int
}

// Options selects the first screen.
type Options struct {
	// Practice skips the menu and starts a session on Library in Mode.
	Practice bool
	Library  string
	Mode     session.Mode

	// Splash shows the welcome animation before the menu.
	Splash bool
}

// newAppModel creates a new AppModel with the first screen chosen by opts.
func newAppModel(svc screen.Services, opts Options) AppModel {
	var first screen.Screen
	switch {
	case opts.Practice:
		lib := opts.Library
		if lib == "" {
			lib = svc.Config.Library
		}
		mode := svc.Config.Mode
		if opts.Mode.Valid() {
			mode = opts.Mode
		}
		first = practice.New(svc, lib, mode)
	case opts.Splash:
		first = welcome.New(func() screen.Screen { return home.New(svc) })
	default:
		first = home.New(svc)
	}
	return AppModel{
		router:   router.New(first),
		services: svc,
		header:   layout.HeaderStats{Goal: svc.Config.DailyGoal},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadHeader(), m.headerTick())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerTickMsg:
		return m, tea.Batch(m.loadHeader(), m.headerTick())

	case screen.StatsChangedMsg:
		return m, tea.Batch(m.loadHeader(), m.router.Update(msg))

	case headerLoadedMsg:
		// Keep the last good numbers on failure.
		if msg.Err == nil {
			m.header = msg.Stats
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok {
				return m, bh.Back()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.header, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// loadHeader reads today's total and the streak for the header bar.
func (m AppModel) loadHeader() tea.Cmd {
	agg := m.services.Stats
	if agg == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		sum, err := agg.DailySummary(ctx, agg.Today(), words.ScopeAll)
		if err != nil {
			return headerLoadedMsg{Err: err}
		}
		streak, err := agg.Streak(ctx)
		if err != nil {
			return headerLoadedMsg{Err: err}
		}
		return headerLoadedMsg{Stats: layout.HeaderStats{
			Today:  sum.Total,
			Goal:   agg.DailyGoal(),
			Streak: streak,
		}}
	}
}

func (m AppModel) headerTick() tea.Cmd {
	d := m.services.Config.RefreshInterval
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return headerTickMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(svc screen.Services, opts Options) error {
	p := tea.NewProgram(newAppModel(svc, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
