package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/wordiz/internal/words"
)

var apple = words.New("apple", "苹果")

func presenting(m Mode) State {
	s, _ := Transition(NewState(m), WordPicked{Word: apple})
	return s
}

func effectTypes(effects []Effect) []string {
	var out []string
	for _, e := range effects {
		out = append(out, reflect.TypeOf(e).Name())
	}
	return out
}

func TestIdleToPresenting(t *testing.T) {
	s := NewState(ModeDictation)
	s, eff := Transition(s, Start{})
	if s.Phase != PhaseIdle || !reflect.DeepEqual(effectTypes(eff), []string{"PickNext"}) {
		t.Fatalf("Start: phase=%v effects=%v", s.Phase, effectTypes(eff))
	}

	s, eff = Transition(s, WordPicked{Seq: s.PickSeq, Word: apple})
	if s.Phase != PhasePresenting || !s.HasWord || s.Word != apple || s.Locked || len(eff) != 0 {
		t.Errorf("WordPicked: %+v effects=%v", s, eff)
	}
	if s.Mode != ModeDictation {
		t.Errorf("mode = %q, want dictation", s.Mode)
	}
}

func TestLibraryEmpty(t *testing.T) {
	for _, start := range []State{NewState(ModeFollow), presenting(ModeFollow)} {
		s, eff := Transition(start, LibraryEmpty{})
		if s.Phase != PhaseIdle || s.HasWord || s.Notice != NoticeLibraryEmpty {
			t.Errorf("LibraryEmpty from %v: %+v", start.Phase, s)
		}
		if !reflect.DeepEqual(effectTypes(eff), []string{"DisableInput"}) {
			t.Errorf("effects = %v", effectTypes(eff))
		}
	}
}

func TestPickFailed(t *testing.T) {
	boom := errors.New("boom")

	s, eff := Transition(NewState(ModeFollow), PickFailed{Err: boom})
	if s.Phase != PhaseIdle || !reflect.DeepEqual(effectTypes(eff), []string{"ReportError", "DisableInput"}) {
		t.Errorf("idle PickFailed: phase=%v effects=%v", s.Phase, effectTypes(eff))
	}

	// Mid-session: the current word stays presented and the lock is released.
	judging, _ := Transition(presenting(ModeReview), SelfGrade{Mastered: true})
	s, _ = Transition(judging, AnswerPersisted{})
	s, eff = Transition(s, PickFailed{Seq: s.PickSeq, Err: boom})
	if s.Phase != PhasePresenting || s.Locked || s.Word != apple {
		t.Errorf("mid-session PickFailed: %+v", s)
	}
	if len(eff) != 1 || eff[0].(ReportError).Err != boom {
		t.Errorf("effects = %v", eff)
	}
}

func TestFollowJudgesAtFullLength(t *testing.T) {
	s := presenting(ModeFollow)

	for _, prefix := range []string{"a", "ap", "app", "appl"} {
		var eff []Effect
		s, eff = Transition(s, InputChanged{Text: prefix})
		if len(eff) != 0 || s.Phase != PhasePresenting {
			t.Fatalf("input %q judged early", prefix)
		}
	}

	s, eff := Transition(s, InputChanged{Text: "APPLE"})
	if s.Phase != PhaseJudging || !s.Locked {
		t.Fatalf("full input: phase=%v locked=%v", s.Phase, s.Locked)
	}
	rec := eff[0].(RecordAnswer)
	if !rec.Outcome.Correct || rec.Outcome.Word != apple || rec.Outcome.Mode != ModeFollow {
		t.Errorf("outcome = %+v", rec.Outcome)
	}
}

func TestFollowMissPausesOnAnswer(t *testing.T) {
	s := presenting(ModeFollow)
	s, eff := Transition(s, InputChanged{Text: "appel"})
	if eff[0].(RecordAnswer).Outcome.Correct {
		t.Fatal("appel judged correct")
	}

	s, eff = Transition(s, AnswerPersisted{})
	if s.Phase != PhaseRevealPause || !s.Locked {
		t.Fatalf("after persist: phase=%v locked=%v", s.Phase, s.Locked)
	}
	if show, ok := eff[0].(ShowAnswer); !ok || show.Word != apple {
		t.Errorf("effects = %v", eff)
	}

	// Input during the pause is dropped.
	paused := s
	for _, ev := range []Event{InputChanged{Text: "apple"}, Submit{}, SelfGrade{Mastered: true}, Reveal{}} {
		s, eff = Transition(s, ev)
		if len(eff) != 0 || !reflect.DeepEqual(s, paused) {
			t.Errorf("%T during pause changed state", ev)
		}
	}

	s, eff = Transition(s, Continue{})
	if s.Locked || s.Phase != PhasePresenting || s.Pending != nil {
		t.Errorf("after Continue: %+v", s)
	}
	if !reflect.DeepEqual(effectTypes(eff), []string{"PickNext"}) {
		t.Errorf("effects = %v", effectTypes(eff))
	}
}

func TestFollowSubmitJudgesTrimmed(t *testing.T) {
	s := presenting(ModeFollow)
	s.Input = " apple "
	s, eff := Transition(s, Submit{})
	if s.Phase != PhaseJudging || !eff[0].(RecordAnswer).Outcome.Correct {
		t.Errorf("submit: phase=%v effects=%v", s.Phase, eff)
	}
}

func TestDictation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		judged    bool
		correct   bool
		wantPause bool
	}{
		{"exact", "apple", true, true, false},
		{"case", "ApPlE", true, true, false},
		{"surrounding space", "  apple\t", true, true, false},
		{"wrong", "apply", true, false, true},
		{"empty", "", false, false, false},
		{"blank", "   ", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := presenting(ModeDictation)
			s, eff := Transition(s, InputChanged{Text: tt.input})
			if len(eff) != 0 {
				t.Fatal("dictation judged on input change")
			}
			s, eff = Transition(s, Submit{})
			if !tt.judged {
				if len(eff) != 0 || s.Phase != PhasePresenting || s.Locked {
					t.Errorf("empty submit judged: %+v", s)
				}
				return
			}
			if got := eff[0].(RecordAnswer).Outcome.Correct; got != tt.correct {
				t.Errorf("correct = %v, want %v", got, tt.correct)
			}
			s, _ = Transition(s, AnswerPersisted{})
			if (s.Phase == PhaseRevealPause) != tt.wantPause {
				t.Errorf("phase = %v, wantPause %v", s.Phase, tt.wantPause)
			}
		})
	}
}

func TestCorrectAnswerKeepsLockUntilNextWord(t *testing.T) {
	s := presenting(ModeDictation)
	s.Input = "apple"
	s, _ = Transition(s, Submit{})
	s, eff := Transition(s, AnswerPersisted{})
	if !reflect.DeepEqual(effectTypes(eff), []string{"PickNext"}) {
		t.Fatalf("effects = %v", effectTypes(eff))
	}
	if !s.Locked {
		t.Fatal("lock released before the next word")
	}

	// A second submit while waiting does not score twice.
	s, eff = Transition(s, Submit{})
	if len(eff) != 0 {
		t.Error("double judgment was not dropped")
	}

	pear := words.New("pear", "梨")
	s, _ = Transition(s, WordPicked{Seq: s.PickSeq, Word: pear})
	if s.Locked || s.Word != pear || s.Input != "" || s.Pending != nil {
		t.Errorf("after WordPicked: %+v", s)
	}
}

func TestReview(t *testing.T) {
	s := presenting(ModeReview)

	s, _ = Transition(s, Reveal{})
	if !s.Revealed {
		t.Fatal("Reveal did not reveal")
	}

	s, eff := Transition(s, SelfGrade{Mastered: false})
	if eff[0].(RecordAnswer).Outcome.Correct {
		t.Fatal("not-mastered graded correct")
	}

	// Review never pauses, even on a miss.
	s, eff = Transition(s, AnswerPersisted{})
	if s.Phase == PhaseRevealPause || !reflect.DeepEqual(effectTypes(eff), []string{"PickNext"}) {
		t.Errorf("review miss: phase=%v effects=%v", s.Phase, effectTypes(eff))
	}
}

func TestReviewSubmitInput(t *testing.T) {
	tests := []struct {
		input   string
		judged  bool
		correct bool
	}{
		{"", true, true},
		{"]", true, true},
		{"y", true, true},
		{"[", true, false},
		{"no", true, false},
		{"apple", false, false},
	}
	for _, tt := range tests {
		s := presenting(ModeReview)
		s.Input = tt.input
		_, eff := Transition(s, Submit{})
		if !tt.judged {
			if len(eff) != 0 {
				t.Errorf("%q: judged unexpectedly", tt.input)
			}
			continue
		}
		if len(eff) != 1 || eff[0].(RecordAnswer).Outcome.Correct != tt.correct {
			t.Errorf("%q: effects = %v", tt.input, eff)
		}
	}
}

func TestRevealOnlyInReview(t *testing.T) {
	s, _ := Transition(presenting(ModeDictation), Reveal{})
	if s.Revealed {
		t.Error("dictation revealed")
	}
	_, eff := Transition(presenting(ModeFollow), SelfGrade{Mastered: true})
	if len(eff) != 0 {
		t.Error("follow accepted a self grade")
	}
}

func TestPersistErrorAdvancesAnyway(t *testing.T) {
	boom := errors.New("disk full")
	s := presenting(ModeDictation)
	s.Input = "apple"
	s, _ = Transition(s, Submit{})
	_, eff := Transition(s, AnswerPersisted{Err: boom})
	if !reflect.DeepEqual(effectTypes(eff), []string{"ReportError", "PickNext"}) {
		t.Errorf("effects = %v", effectTypes(eff))
	}
}

func TestNext(t *testing.T) {
	// Skip without scoring.
	s, eff := Transition(presenting(ModeFollow), Next{})
	if !reflect.DeepEqual(effectTypes(eff), []string{"PickNext"}) || s.Locked {
		t.Errorf("skip: %v", effectTypes(eff))
	}

	// Retry from idle.
	_, eff = Transition(NewState(ModeFollow), Next{})
	if !reflect.DeepEqual(effectTypes(eff), []string{"PickNext"}) {
		t.Errorf("idle retry: %v", effectTypes(eff))
	}

	// Ignored while judging.
	j, _ := Transition(presenting(ModeReview), SelfGrade{Mastered: true})
	_, eff = Transition(j, Next{})
	if len(eff) != 0 {
		t.Errorf("judging: %v", effectTypes(eff))
	}

	// Dismisses a pause.
	p := presenting(ModeFollow)
	p, _ = Transition(p, InputChanged{Text: "xxxxx"})
	p, _ = Transition(p, AnswerPersisted{})
	p, eff = Transition(p, Next{})
	if p.Locked || !reflect.DeepEqual(effectTypes(eff), []string{"PickNext"}) {
		t.Errorf("pause: locked=%v effects=%v", p.Locked, effectTypes(eff))
	}
}

func TestContinueOutsidePauseIgnored(t *testing.T) {
	s := presenting(ModeFollow)
	got, eff := Transition(s, Continue{})
	if len(eff) != 0 || !reflect.DeepEqual(got, s) {
		t.Error("Continue outside pause had an effect")
	}
}

func TestSwitchMode(t *testing.T) {
	// Presenting: same word, fresh attempt.
	s := presenting(ModeFollow)
	s.Input = "ap"
	s, eff := Transition(s, SwitchMode{Mode: ModeReview})
	if s.Mode != ModeReview || s.Word != apple || s.Input != "" || len(eff) != 0 {
		t.Errorf("presenting: %+v %v", s, eff)
	}

	// Reveal pause: cancelled, lock released, next word requested.
	p := presenting(ModeDictation)
	p.Input = "nope"
	p, _ = Transition(p, Submit{})
	p, _ = Transition(p, AnswerPersisted{})
	p, eff = Transition(p, SwitchMode{Mode: ModeFollow})
	if p.Locked || p.Phase != PhasePresenting || p.Mode != ModeFollow {
		t.Errorf("pause: %+v", p)
	}
	if !reflect.DeepEqual(effectTypes(eff), []string{"PickNext"}) {
		t.Errorf("pause effects = %v", effectTypes(eff))
	}

	// Judging: only the mode changes.
	j, _ := Transition(presenting(ModeReview), SelfGrade{Mastered: true})
	j2, eff := Transition(j, SwitchMode{Mode: ModeDictation})
	if j2.Phase != PhaseJudging || !j2.Locked || j2.Mode != ModeDictation || len(eff) != 0 {
		t.Errorf("judging: %+v", j2)
	}
	// The pending outcome keeps the mode it was judged in.
	j2, eff = Transition(j2, AnswerPersisted{})
	if !reflect.DeepEqual(effectTypes(eff), []string{"PickNext"}) {
		t.Errorf("judged in review must not pause: %v", effectTypes(eff))
	}

	// Invalid mode is ignored.
	s2, _ := Transition(s, SwitchMode{Mode: "speed"})
	if s2.Mode != ModeReview {
		t.Error("invalid mode applied")
	}
}

func TestAnswerPersistedOutsideJudgingIgnored(t *testing.T) {
	s := presenting(ModeFollow)
	got, eff := Transition(s, AnswerPersisted{})
	if len(eff) != 0 || !reflect.DeepEqual(got, s) {
		t.Error("stray AnswerPersisted had an effect")
	}
}

func TestStartDuringJudgingIgnored(t *testing.T) {
	j, _ := Transition(presenting(ModeReview), SelfGrade{Mastered: true})
	_, eff := Transition(j, Start{})
	if len(eff) != 0 {
		t.Error("Start during judging requested a pick")
	}
}

func TestStalePickDropped(t *testing.T) {
	pear := words.New("pear", "梨")

	// A skip is in flight when the follow answer completes.
	s, eff := Transition(presenting(ModeFollow), Next{})
	skip := eff[0].(PickNext)
	s, _ = Transition(s, InputChanged{Text: "appel"})
	if s.Phase != PhaseJudging {
		t.Fatalf("phase = %v, want judging", s.Phase)
	}

	judging := s
	for _, ev := range []Event{
		WordPicked{Seq: skip.Seq, Word: pear},
		LibraryEmpty{Seq: skip.Seq},
		PickFailed{Seq: skip.Seq, Err: errors.New("late")},
	} {
		got, eff := Transition(judging, ev)
		if len(eff) != 0 || !reflect.DeepEqual(got, judging) {
			t.Errorf("stale %T changed the judging state: %+v", ev, got)
		}
	}

	s, eff = Transition(s, AnswerPersisted{})
	if s.Phase != PhaseRevealPause || !s.Locked {
		t.Fatalf("miss did not pause: phase=%v locked=%v", s.Phase, s.Locked)
	}
	if _, ok := eff[0].(ShowAnswer); !ok {
		t.Errorf("effects = %v", effectTypes(eff))
	}

	s, eff = Transition(s, Continue{})
	next := eff[0].(PickNext)
	if next.Seq <= skip.Seq {
		t.Errorf("next pick seq %d not after skip seq %d", next.Seq, skip.Seq)
	}
	s, _ = Transition(s, WordPicked{Seq: next.Seq, Word: pear})
	if s.Word != pear || s.Locked {
		t.Errorf("current pick not applied: %+v", s)
	}
}

func TestPickSeqAdvancesPerRequest(t *testing.T) {
	s, eff := Transition(NewState(ModeFollow), Start{})
	first := eff[0].(PickNext)
	s, eff = Transition(s, Next{})
	second := eff[0].(PickNext)
	if second.Seq != first.Seq+1 || s.PickSeq != second.Seq {
		t.Fatalf("seqs = %d, %d (state %d)", first.Seq, second.Seq, s.PickSeq)
	}

	// The older request's answer is ignored; the newer one is applied.
	got, _ := Transition(s, LibraryEmpty{Seq: first.Seq})
	if got.Notice != "" {
		t.Error("stale LibraryEmpty applied")
	}
	got, _ = Transition(s, WordPicked{Seq: second.Seq, Word: apple})
	if got.Phase != PhasePresenting || got.Word != apple {
		t.Errorf("current pick dropped: %+v", got)
	}
}
