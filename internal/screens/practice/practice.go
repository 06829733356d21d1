package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/summary"
	sess "github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/words"
)

// inputWidth bounds the typed answer.
const inputWidth = 48

// PracticeScreen runs a drilling session. Key presses are dispatched to the
// engine synchronously so their order is kept; scheduler picks and answer
// writes run as commands and feed their result event back as a message.
type PracticeScreen struct {
	svc      screen.Services
	engine   *sess.Engine
	library  string
	input    components.TextInput
	overview *stats.Overview
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.BackHandler = (*PracticeScreen)(nil)

// New creates a PracticeScreen on libraryName, or every library when the
// name is empty.
func New(svc screen.Services, libraryName string, mode sess.Mode) *PracticeScreen {
	if libraryName == "" {
		libraryName = words.ScopeAll
	}
	return &PracticeScreen{
		svc:     svc,
		engine:  svc.NewEngine(libraryName, mode),
		library: libraryName,
		input:   components.NewTextInput("Type the word...", inputWidth),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return tea.Batch(
		s.input.Init(),
		s.dispatch(sess.Start{}),
		s.loadOverview(),
	)
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	st := s.engine.State()
	hints := []layout.KeyHint{{Key: "Tab", Description: "Mode"}}
	switch st.Phase {
	case sess.PhaseIdle:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Retry"})
	case sess.PhaseRevealPause:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Continue"})
	case sess.PhasePresenting:
		if st.Mode == sess.ModeReview {
			hints = append(hints,
				layout.KeyHint{Key: "Space", Description: "Reveal"},
				layout.KeyHint{Key: "Y/Enter", Description: "Know it"},
				layout.KeyHint{Key: "N", Description: "Don't know"},
			)
		} else {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
		}
		hints = append(hints, layout.KeyHint{Key: "Ctrl+N", Description: "Skip"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "End"})
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case effectDoneMsg:
		return s, s.handleEffectDone(msg)

	case overviewLoadedMsg:
		// A failed refresh keeps the last numbers on screen.
		if msg.Err == nil {
			ov := msg.Overview
			s.overview = &ov
		} else {
			s.svc.Log().Printf("warning: refresh stats: %v", msg.Err)
		}
		return s, nil

	case screen.StatsChangedMsg:
		return s, s.loadOverview()

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

// Back ends the session and shows its summary.
func (s *PracticeScreen) Back() tea.Cmd {
	sum := s.engine.Summary()
	if sum.Answered == 0 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	next := summary.New(sum, s.engine.History())
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	s.engine.ClearErr()
	st := s.engine.State()
	key := msg.String()

	switch key {
	case "tab":
		return s.dispatch(sess.SwitchMode{Mode: cycleMode(st.Mode, 1)})
	case "shift+tab":
		return s.dispatch(sess.SwitchMode{Mode: cycleMode(st.Mode, -1)})
	case "ctrl+n":
		return s.dispatch(sess.Next{})
	}

	switch st.Phase {
	case sess.PhaseIdle:
		if key == "enter" {
			return s.dispatch(sess.Next{})
		}
	case sess.PhaseRevealPause:
		if key == "enter" || key == "space" {
			return s.dispatch(sess.Continue{})
		}
	case sess.PhasePresenting:
		if st.Mode == sess.ModeReview {
			return s.handleReviewKey(key)
		}
		if key == "enter" {
			return s.dispatch(sess.InputChanged{Text: s.input.Value()}, sess.Submit{})
		}
		before := s.input.Value()
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if after := s.input.Value(); after != before {
			return tea.Batch(cmd, s.dispatch(sess.InputChanged{Text: after}))
		}
		return cmd
	}
	return nil
}

func (s *PracticeScreen) handleReviewKey(key string) tea.Cmd {
	switch key {
	case "space":
		return s.dispatch(sess.Reveal{})
	case "enter", "y", "]":
		return s.dispatch(sess.SelfGrade{Mastered: true})
	case "n", "[":
		return s.dispatch(sess.SelfGrade{Mastered: false})
	}
	return nil
}

func (s *PracticeScreen) handleEffectDone(msg effectDoneMsg) tea.Cmd {
	if msg.Event == nil {
		return nil
	}
	cmd := s.dispatch(msg.Event)
	if _, ok := msg.Event.(sess.AnswerPersisted); ok {
		changed := func() tea.Msg { return screen.StatsChangedMsg{} }
		return tea.Batch(cmd, changed)
	}
	return cmd
}

// dispatch applies events in order and schedules the effects they request.
func (s *PracticeScreen) dispatch(evs ...sess.Event) tea.Cmd {
	var effects []sess.Effect
	for _, ev := range evs {
		effects = append(effects, s.engine.Dispatch(ev)...)
	}
	s.syncInput()
	return s.execute(effects)
}

func (s *PracticeScreen) execute(effects []sess.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		engine := s.engine
		cmds = append(cmds, func() tea.Msg {
			return effectDoneMsg{Event: engine.Execute(context.Background(), eff)}
		})
	}
	return tea.Batch(cmds...)
}

// syncInput mirrors the engine's attempt into the text field. Keys typed
// while the answered lock is held are discarded here.
func (s *PracticeScreen) syncInput() {
	st := s.engine.State()
	if st.Input != s.input.Value() {
		s.input.SetValue(st.Input)
	}
	if st.Pending != nil {
		s.input.Mark(st.Pending.Correct)
	} else {
		s.input.Unmark()
	}
}

func (s *PracticeScreen) loadOverview() tea.Cmd {
	agg := s.svc.Stats
	if agg == nil {
		return nil
	}
	scope := s.engine.Library()
	return func() tea.Msg {
		ov, err := agg.Overview(context.Background(), scope)
		return overviewLoadedMsg{Overview: ov, Err: err}
	}
}

func cycleMode(m sess.Mode, step int) sess.Mode {
	n := len(sess.Modes)
	for i, mode := range sess.Modes {
		if mode == m {
			return sess.Modes[((i+step)%n+n)%n]
		}
	}
	return sess.ModeFollow
}
