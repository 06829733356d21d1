package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wordiz/internal/recorder"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// HistorySize is how many recent answers the engine keeps for display.
const HistorySize = 5

// Picker selects the next word from a library.
type Picker interface {
	PickNext(ctx context.Context, lib words.Library) (words.Word, bool, error)
}

// AnswerRecorder persists a judged answer.
type AnswerRecorder interface {
	RecordAnswer(ctx context.Context, a recorder.Answer) (*store.MasteryRecord, error)
}

// LibrarySource loads libraries by name. store.LibraryRepo satisfies it.
type LibrarySource interface {
	Get(ctx context.Context, name string) (*words.Library, error)
	All(ctx context.Context) ([]words.Library, error)
}

// AfterAnswerFunc runs after an answer was recorded without error.
type AfterAnswerFunc func(ctx context.Context, o Outcome, rec *store.MasteryRecord) error

// HistoryEntry is one recorded answer of this session.
type HistoryEntry struct {
	Word    words.Word
	Correct bool
	Mode    Mode
	At      time.Time
}

// Summary holds the totals of this session.
type Summary struct {
	SessionID string
	Duration  time.Duration
	Answered  int
	Correct   int
	Accuracy  float64
}

// Engine drives the state machine against the scheduler and the recorder.
// Dispatch applies events synchronously; Execute runs the blocking effects
// they request and returns the resulting event. The convenience methods
// (PickNext, SubmitAnswer, ...) loop the two until no effect is left.
// Engine is safe for use from multiple goroutines.
type Engine struct {
	picker      Picker
	recorder    AnswerRecorder
	libs        LibrarySource
	logger      *log.Logger
	afterAnswer AfterAnswerFunc
	now         func() time.Time

	mu        sync.Mutex
	state     State
	err       error
	library   string
	origin    map[string]string // word key -> library name, for the all scope
	sessionID string
	started   time.Time
	history   []HistoryEntry
	answered  int
	correct   int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger for non-fatal failures.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMode sets the initial mode.
func WithMode(m Mode) EngineOption {
	return func(e *Engine) { e.state = NewState(m) }
}

// WithAfterAnswer sets a hook that runs after every recorded answer.
func WithAfterAnswer(fn AfterAnswerFunc) EngineOption {
	return func(e *Engine) { e.afterAnswer = fn }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) EngineOption {
	return func(e *Engine) { e.sessionID = id }
}

// NewEngine creates an idle engine.
func NewEngine(picker Picker, rec AnswerRecorder, libs LibrarySource, opts ...EngineOption) *Engine {
	e := &Engine{
		picker:    picker,
		recorder:  rec,
		libs:      libs,
		logger:    log.New(io.Discard, "", 0),
		now:       time.Now,
		state:     NewState(ModeFollow),
		sessionID: uuid.New().String(),
	}
	for _, o := range opts {
		o(e)
	}
	e.started = e.now()
	return e
}

// State returns a snapshot of the session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state
	s.Err = e.err
	return s
}

// SessionID returns the id stamped on every practice event of this session.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Library returns the name of the library being practiced.
func (e *Engine) Library() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.library
}

// ClearErr forgets the last reported error. Call it before a new user
// action so State().Err only describes that action.
func (e *Engine) ClearErr() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = nil
}

// SetLibrary selects the library used by subsequent picks.
func (e *Engine) SetLibrary(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.library = name
}

// History returns the most recent answers, newest first.
func (e *Engine) History() []HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]HistoryEntry, len(e.history))
	copy(out, e.history)
	return out
}

// Summary returns the totals of this session so far.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	sum := Summary{
		SessionID: e.sessionID,
		Duration:  e.now().Sub(e.started),
		Answered:  e.answered,
		Correct:   e.correct,
	}
	if e.answered > 0 {
		sum.Accuracy = float64(e.correct) / float64(e.answered)
	}
	return sum
}

// Dispatch applies ev and returns the effects that need Execute. Effects
// that do not block (errors, reveal, input toggling) are handled here.
func (e *Engine) Dispatch(ev Event) []Effect {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, effects := Transition(e.state, ev)
	e.state = next

	var pending []Effect
	for _, eff := range effects {
		switch eff := eff.(type) {
		case ReportError:
			e.err = eff.Err
			e.logger.Printf("warning: %v", eff.Err)
		case ShowAnswer, DisableInput:
			// Reflected in the state's phase.
		default:
			pending = append(pending, eff)
		}
	}
	return pending
}

// Execute runs a blocking effect and returns the event it produced.
func (e *Engine) Execute(ctx context.Context, eff Effect) Event {
	switch eff := eff.(type) {
	case PickNext:
		return e.pick(ctx, eff.Seq)
	case RecordAnswer:
		return e.record(ctx, eff.Outcome)
	}
	return nil
}

func (e *Engine) pick(ctx context.Context, seq int) Event {
	lib, err := e.loadLibrary(ctx)
	if err != nil {
		return PickFailed{Seq: seq, Err: err}
	}
	w, ok, err := e.picker.PickNext(ctx, lib)
	if err != nil {
		return PickFailed{Seq: seq, Err: err}
	}
	if !ok {
		return LibraryEmpty{Seq: seq}
	}
	return WordPicked{Seq: seq, Word: w}
}

// loadLibrary reloads the selected library so imports made during the
// session are picked up. The all scope is the union of every library.
func (e *Engine) loadLibrary(ctx context.Context) (words.Library, error) {
	name := e.Library()

	if words.IsAllScope(name) {
		all, err := e.libs.All(ctx)
		if err != nil {
			return words.Library{}, fmt.Errorf("load libraries: %w", err)
		}
		origin := make(map[string]string)
		for _, l := range all {
			for _, w := range l.Words {
				if _, ok := origin[w.Key()]; !ok {
					origin[w.Key()] = l.Name
				}
			}
		}
		e.mu.Lock()
		e.origin = origin
		e.mu.Unlock()
		return words.Library{Name: words.ScopeAll, Words: words.Union(all)}, nil
	}

	lib, err := e.libs.Get(ctx, name)
	if err != nil {
		return words.Library{}, fmt.Errorf("load library %q: %w", name, err)
	}
	if lib == nil {
		return words.Library{}, fmt.Errorf("library %q not found", name)
	}
	return *lib, nil
}

func (e *Engine) record(ctx context.Context, o Outcome) Event {
	e.mu.Lock()
	lib := e.library
	if words.IsAllScope(lib) {
		lib = e.origin[o.Word.Key()]
	}
	e.mu.Unlock()

	rec, err := e.recorder.RecordAnswer(ctx, recorder.Answer{
		Word:      o.Word,
		Library:   lib,
		Correct:   o.Correct,
		Mode:      string(o.Mode),
		SessionID: e.sessionID,
	})

	e.mu.Lock()
	e.answered++
	if o.Correct {
		e.correct++
	}
	e.history = append([]HistoryEntry{{Word: o.Word, Correct: o.Correct, Mode: o.Mode, At: e.now()}}, e.history...)
	if len(e.history) > HistorySize {
		e.history = e.history[:HistorySize]
	}
	e.mu.Unlock()

	if err == nil && e.afterAnswer != nil {
		if herr := e.afterAnswer(ctx, o, rec); herr != nil {
			e.logger.Printf("warning: after answer: %v", herr)
		}
	}
	return AnswerPersisted{Err: err}
}

// run dispatches evs in order and executes effects until the machine
// settles. Events produced by effects queue behind the given ones.
func (e *Engine) run(ctx context.Context, evs ...Event) State {
	e.ClearErr()

	queue := append([]Event(nil), evs...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, eff := range e.Dispatch(next) {
			if out := e.Execute(ctx, eff); out != nil {
				queue = append(queue, out)
			}
		}
	}
	return e.State()
}

// PickNext selects libraryName and presents its next word.
func (e *Engine) PickNext(ctx context.Context, libraryName string) State {
	e.SetLibrary(libraryName)
	return e.run(ctx, Start{})
}

// SubmitAnswer replaces the input with raw and commits it.
func (e *Engine) SubmitAnswer(ctx context.Context, raw string) State {
	return e.run(ctx, InputChanged{Text: raw}, Submit{})
}

// Input replaces the input buffer. In follow mode this judges once the
// input is as long as the headword.
func (e *Engine) Input(ctx context.Context, text string) State {
	return e.run(ctx, InputChanged{Text: text})
}

// Reveal shows the meaning in review mode.
func (e *Engine) Reveal() State {
	return e.run(context.Background(), Reveal{})
}

// Grade commits a review-mode verdict.
func (e *Engine) Grade(ctx context.Context, mastered bool) State {
	return e.run(ctx, SelfGrade{Mastered: mastered})
}

// DismissReveal ends the reveal pause and presents the next word.
func (e *Engine) DismissReveal(ctx context.Context) State {
	return e.run(ctx, Continue{})
}

// Next skips the current word, ends a reveal pause or retries an idle pick.
func (e *Engine) Next(ctx context.Context) State {
	return e.run(ctx, Next{})
}

// SwitchMode changes the interaction mode.
func (e *Engine) SwitchMode(ctx context.Context, m Mode) State {
	return e.run(ctx, SwitchMode{Mode: m})
}
