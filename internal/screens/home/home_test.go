package home

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/achievements"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/recorder"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/history"
	"github.com/abhisek/wordiz/internal/screens/libraries"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/screens/statsview"
	"github.com/abhisek/wordiz/internal/screens/trophies"
	sess "github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

func testServices(t *testing.T, withWords bool) screen.Services {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "home.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	libs := st.LibraryRepo()
	rec := recorder.New(st.ProgressRepo(), st.EventRepo())
	if withWords {
		cat := words.New("cat", "猫")
		if err := libs.Save(ctx, words.Library{Name: "pets", Words: []words.Word{cat}}); err != nil {
			t.Fatalf("save library: %v", err)
		}
		if _, err := rec.RecordAnswer(ctx, recorder.Answer{Word: cat, Library: "pets", Correct: true}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	sched := spacedrep.NewScheduler(st.ProgressRepo())
	return screen.Services{
		Config:       config.DefaultConfig(),
		Libraries:    libs,
		Progress:     st.ProgressRepo(),
		Events:       st.EventRepo(),
		Stats:        stats.NewAggregator(st.ProgressRepo(), st.EventRepo(), libs, st.SettingsRepo()),
		Achievements: achievements.NewTracker(st.AchievementRepo()),
		NewEngine: func(name string, mode sess.Mode) *sess.Engine {
			e := sess.NewEngine(sched, rec, libs, sess.WithMode(mode))
			e.SetLibrary(name)
			return e
		},
	}
}

func TestHomeScreen_Dashboard(t *testing.T) {
	h := New(testServices(t, true))
	h.Update(h.Init()())

	if h.dash.Libraries != 1 {
		t.Errorf("libraries = %d, want 1", h.dash.Libraries)
	}
	if h.dash.Streak != 0 {
		t.Errorf("streak = %d, want 0 before settling", h.dash.Streak)
	}
	if h.dash.GoalMet {
		t.Error("one answer should not meet the default goal")
	}
	if strings.Contains(h.View(120, 40), "No words yet") {
		t.Error("import banner shown with a library present")
	}
}

func TestHomeScreen_ImportBanner(t *testing.T) {
	h := New(testServices(t, false))
	h.Update(h.Init()())

	if !strings.Contains(h.View(120, 40), "No words yet") {
		t.Error("expected the import banner without libraries")
	}
}

func TestHomeScreen_Mascot(t *testing.T) {
	h := New(screen.Services{})
	if h.mascot() != MascotIdle {
		t.Error("expected the idle mascot")
	}
	h.dash.GoalMet = true
	if h.mascot() != MascotCelebrating {
		t.Error("expected the celebrating mascot when the goal is met")
	}
	h.dash.Due = 3
	if h.mascot() != MascotAlert {
		t.Error("due reviews take precedence")
	}
}

func TestHomeScreen_MenuPushes(t *testing.T) {
	svc := testServices(t, true)
	tests := []struct {
		downs int
		check func(screen.Screen) bool
		name  string
	}{
		{0, func(s screen.Screen) bool { _, ok := s.(*practice.PracticeScreen); return ok }, "practice"},
		{1, func(s screen.Screen) bool { _, ok := s.(*statsview.StatsScreen); return ok }, "statistics"},
		{2, func(s screen.Screen) bool { _, ok := s.(*trophies.TrophyScreen); return ok }, "achievements"},
		{3, func(s screen.Screen) bool { _, ok := s.(*libraries.LibrariesScreen); return ok }, "libraries"},
		{4, func(s screen.Screen) bool { _, ok := s.(*history.HistoryScreen); return ok }, "history"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(svc)
			for i := 0; i < tt.downs; i++ {
				h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
			}
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("expected a command")
			}
			push, ok := cmd().(router.PushScreenMsg)
			if !ok {
				t.Fatal("expected PushScreenMsg")
			}
			if !tt.check(push.Screen) {
				t.Errorf("pushed %T", push.Screen)
			}
		})
	}
}

func TestHomeScreen_Exit(t *testing.T) {
	h := New(screen.Services{})
	for i := 0; i < 5; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("EXIT should quit")
	}
}

func TestHomeScreen_Shortcut(t *testing.T) {
	h := New(testServices(t, true))
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'l', Text: "l"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*libraries.LibrariesScreen); !ok {
		t.Errorf("pushed %T, want the libraries screen", push.Screen)
	}
}
