package session

import "github.com/abhisek/wordiz/internal/words"

// Event is an input to the session state machine.
type Event interface{ isEvent() }

// Start asks for a word from the current library.
type Start struct{}

// WordPicked carries the scheduler's pick for request Seq.
type WordPicked struct {
	Seq  int
	Word words.Word
}

// LibraryEmpty reports that the scheduler had nothing to present.
type LibraryEmpty struct{ Seq int }

// PickFailed reports a scheduler or library load failure.
type PickFailed struct {
	Seq int
	Err error
}

// InputChanged replaces the input buffer.
type InputChanged struct{ Text string }

// Submit commits the input buffer.
type Submit struct{}

// Reveal shows the meaning in review mode.
type Reveal struct{}

// SelfGrade is the review-mode verdict.
type SelfGrade struct{ Mastered bool }

// Continue dismisses the reveal pause.
type Continue struct{}

// Next skips the current word, dismisses the reveal pause, or retries an
// idle pick.
type Next struct{}

// SwitchMode changes the interaction mode.
type SwitchMode struct{ Mode Mode }

// AnswerPersisted reports that the pending outcome was recorded.
type AnswerPersisted struct{ Err error }

func (Start) isEvent()           {}
func (WordPicked) isEvent()      {}
func (LibraryEmpty) isEvent()    {}
func (PickFailed) isEvent()      {}
func (InputChanged) isEvent()    {}
func (Submit) isEvent()          {}
func (Reveal) isEvent()          {}
func (SelfGrade) isEvent()       {}
func (Continue) isEvent()        {}
func (Next) isEvent()            {}
func (SwitchMode) isEvent()      {}
func (AnswerPersisted) isEvent() {}

// Effect is a side effect requested by a transition.
type Effect interface{ isEffect() }

// PickNext asks the scheduler for the next word. The result event echoes Seq.
type PickNext struct{ Seq int }

// RecordAnswer persists a judged outcome.
type RecordAnswer struct{ Outcome Outcome }

// ShowAnswer displays the correct headword after a miss.
type ShowAnswer struct{ Word words.Word }

// DisableInput closes the input field.
type DisableInput struct{}

// ReportError surfaces a non-fatal failure.
type ReportError struct{ Err error }

func (PickNext) isEffect()     {}
func (RecordAnswer) isEffect() {}
func (ShowAnswer) isEffect()   {}
func (DisableInput) isEffect() {}
func (ReportError) isEffect()  {}
