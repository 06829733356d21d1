package session

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/words"
)

// Mode is the interaction mode of a practice session.
type Mode string

const (
	ModeFollow    Mode = "follow"    // type along with the visible headword
	ModeReview    Mode = "review"    // reveal the meaning and self-grade
	ModeDictation Mode = "dictation" // type the headword from its meaning
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeFollow, ModeReview, ModeDictation}

// ParseMode converts a mode name, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q (want follow, review or dictation)", s)
	}
	return m, nil
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeFollow, ModeReview, ModeDictation:
		return true
	}
	return false
}

// RevealsOnMiss reports whether an incorrect answer in this mode pauses
// on the correct headword. Review is self-graded and never pauses.
func (m Mode) RevealsOnMiss() bool {
	return m == ModeFollow || m == ModeDictation
}

// Label is the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFollow:
		return "Follow"
	case ModeReview:
		return "Review"
	case ModeDictation:
		return "Dictation"
	}
	return string(m)
}

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseIdle        Phase = iota // No word loaded
	PhasePresenting               // Word shown, input open
	PhaseJudging                  // Answer submitted, outcome being persisted
	PhaseRevealPause              // Incorrect answer, correct headword shown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePresenting:
		return "presenting"
	case PhaseJudging:
		return "judging"
	case PhaseRevealPause:
		return "reveal-pause"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Outcome is one judged attempt.
type Outcome struct {
	Word    words.Word
	Correct bool
	Input   string
	Mode    Mode
}

// State is the transient, in-memory state of a practice session.
type State struct {
	// Mode is the current interaction mode.
	Mode Mode

	// Phase is the current session phase.
	Phase Phase

	// Word is the word being presented. Meaningful only when HasWord.
	Word    words.Word
	HasWord bool

	// Input is the per-attempt input buffer.
	Input string

	// Locked is the answered lock: set when judgment starts, released when
	// the next word is picked or the reveal pause is dismissed.
	Locked bool

	// Revealed is true once the meaning was revealed in review mode.
	Revealed bool

	// Pending is the outcome being persisted or shown in the reveal pause.
	Pending *Outcome

	// PickSeq numbers the latest pick request. Pick results carrying an
	// older number are stale and dropped.
	PickSeq int

	// Notice is a user-facing status line such as "library empty".
	Notice string

	// Err is the most recent error reported by the engine.
	Err error
}

// NewState returns an idle state in mode m.
func NewState(m Mode) State {
	if !m.Valid() {
		m = ModeFollow
	}
	return State{Mode: m, Phase: PhaseIdle}
}

// AcceptsInput reports whether typed input is currently processed.
func (s State) AcceptsInput() bool {
	return s.Phase == PhasePresenting && !s.Locked
}

// NoticeLibraryEmpty is shown when the scheduler has no word to present.
const NoticeLibraryEmpty = "library empty"
