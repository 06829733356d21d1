package session

import "strings"

// Transition is the session state machine. It is a pure function of the
// current state and an event; side effects are returned for the caller to
// execute. Events that are not valid in the current phase, including any
// input while the answered lock is held, are dropped without effects.
//
// Every PickNext carries a sequence number and only the pick result that
// matches the latest request is applied. Judging also advances the
// sequence, so a skip that is still in flight cannot replace a word whose
// answer is being recorded.
func Transition(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Start:
		switch s.Phase {
		case PhaseJudging:
			return s, nil
		case PhaseRevealPause:
			return releaseAndPick(s)
		}
		return requestPick(s)

	case WordPicked:
		if e.Seq != s.PickSeq {
			return s, nil
		}
		return State{
			Mode:    s.Mode,
			Phase:   PhasePresenting,
			Word:    e.Word,
			HasWord: true,
			PickSeq: s.PickSeq,
		}, nil

	case LibraryEmpty:
		if e.Seq != s.PickSeq {
			return s, nil
		}
		return State{Mode: s.Mode, Phase: PhaseIdle, Notice: NoticeLibraryEmpty, PickSeq: s.PickSeq},
			[]Effect{DisableInput{}}

	case PickFailed:
		if e.Seq != s.PickSeq {
			return s, nil
		}
		effects := []Effect{ReportError{Err: e.Err}}
		if !s.HasWord {
			return State{Mode: s.Mode, Phase: PhaseIdle, PickSeq: s.PickSeq}, append(effects, DisableInput{})
		}
		return freshAttempt(s), effects

	case InputChanged:
		if !s.AcceptsInput() {
			return s, nil
		}
		s.Input = e.Text
		if s.Mode == ModeFollow && FollowComplete(s.Word.Headword, e.Text) {
			return judge(s, IsCorrect(s.Word.Headword, e.Text))
		}
		return s, nil

	case Submit:
		if !s.AcceptsInput() {
			return s, nil
		}
		if s.Mode == ModeReview {
			mastered, ok := ParseSelfGrade(s.Input)
			if !ok {
				return s, nil
			}
			return judge(s, mastered)
		}
		text := strings.TrimSpace(s.Input)
		if text == "" {
			return s, nil
		}
		return judge(s, IsCorrect(s.Word.Headword, text))

	case Reveal:
		if !s.AcceptsInput() || s.Mode != ModeReview {
			return s, nil
		}
		s.Revealed = true
		return s, nil

	case SelfGrade:
		if !s.AcceptsInput() || s.Mode != ModeReview {
			return s, nil
		}
		return judge(s, e.Mastered)

	case AnswerPersisted:
		if s.Phase != PhaseJudging || s.Pending == nil {
			return s, nil
		}
		var effects []Effect
		if e.Err != nil {
			effects = append(effects, ReportError{Err: e.Err})
		}
		if s.Pending.Correct || !s.Pending.Mode.RevealsOnMiss() {
			// The lock stays held until WordPicked replaces the state.
			s, pick := requestPick(s)
			return s, append(effects, pick...)
		}
		s.Phase = PhaseRevealPause
		return s, append(effects, ShowAnswer{Word: s.Pending.Word})

	case Continue:
		if s.Phase != PhaseRevealPause {
			return s, nil
		}
		return releaseAndPick(s)

	case Next:
		switch s.Phase {
		case PhaseRevealPause:
			return releaseAndPick(s)
		case PhaseIdle:
			return requestPick(s)
		case PhasePresenting:
			if s.Locked {
				return s, nil
			}
			return requestPick(s)
		}
		return s, nil

	case SwitchMode:
		if !e.Mode.Valid() {
			return s, nil
		}
		s.Mode = e.Mode
		switch s.Phase {
		case PhasePresenting:
			if s.Locked {
				return s, nil
			}
			return freshAttempt(s), nil
		case PhaseRevealPause:
			return releaseAndPick(s)
		}
		return s, nil
	}
	return s, nil
}

// judge takes the answered lock and asks for the outcome to be recorded.
func judge(s State, correct bool) (State, []Effect) {
	out := Outcome{Word: s.Word, Correct: correct, Input: s.Input, Mode: s.Mode}
	s.Locked = true
	s.Phase = PhaseJudging
	s.Pending = &out
	s.PickSeq++
	return s, []Effect{RecordAnswer{Outcome: out}}
}

// requestPick asks for a word under a new sequence number.
func requestPick(s State) (State, []Effect) {
	s.PickSeq++
	return s, []Effect{PickNext{Seq: s.PickSeq}}
}

// releaseAndPick ends a reveal pause and requests the next word.
func releaseAndPick(s State) (State, []Effect) {
	return requestPick(freshAttempt(s))
}

// freshAttempt keeps the current word and clears all per-attempt state.
func freshAttempt(s State) State {
	return State{
		Mode:    s.Mode,
		Phase:   PhasePresenting,
		Word:    s.Word,
		HasWord: s.HasWord,
		Notice:  s.Notice,
		PickSeq: s.PickSeq,
	}
}
