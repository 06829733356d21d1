package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/words"
)

func testSummary() (session.Summary, []session.HistoryEntry) {
	sum := session.Summary{
		SessionID: "s-1",
		Duration:  3*time.Minute + 7*time.Second,
		Answered:  4,
		Correct:   3,
		Accuracy:  0.75,
	}
	hist := []session.HistoryEntry{
		{Word: words.New("pear", "梨"), Correct: false, Mode: session.ModeDictation},
		{Word: words.New("apple", "苹果"), Correct: true, Mode: session.ModeFollow},
	}
	return sum, hist
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"3:07", "Words: 4", "Accuracy: 75%", "apple", "Dictation"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NoHistory(t *testing.T) {
	sum, _ := testSummary()
	view := New(sum, nil).View(80, 24)
	if strings.Contains(view, "Last words") {
		t.Error("expected no history section without history")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
	} {
		s := New(testSummary())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected a command on %q", key.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg on %q", key.String())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
