package spacedrep

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// InvalidLibraryError reports a library entry the scheduler cannot present.
type InvalidLibraryError struct {
	Library string
	Index   int
	Reason  string
}

func (e *InvalidLibraryError) Error() string {
	return fmt.Sprintf("invalid library %q: entry %d: %s", e.Library, e.Index, e.Reason)
}

// Scheduler picks the next word to present from a library.
type Scheduler struct {
	progress store.ProgressRepo
	dueLimit int
	now      func() time.Time
	intn     func(n int) int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDueLimit sets how many due records are fetched per pick.
func WithDueLimit(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.dueLimit = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithRand overrides the random index source used for the fallback pick.
func WithRand(intn func(n int) int) Option {
	return func(s *Scheduler) { s.intn = intn }
}

// NewScheduler creates a scheduler reading mastery records from progress.
func NewScheduler(progress store.ProgressRepo, opts ...Option) *Scheduler {
	s := &Scheduler{
		progress: progress,
		dueLimit: DefaultDueLimit,
		now:      time.Now,
		intn:     rand.IntN,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// PickNext selects the next word from lib. The least-mastered due word in
// the library wins; when none is due a uniformly random library word is
// returned. ok is false only for an empty library.
func (s *Scheduler) PickNext(ctx context.Context, lib words.Library) (w words.Word, ok bool, err error) {
	if lib.Empty() {
		return words.Word{}, false, nil
	}
	for i, lw := range lib.Words {
		if !lw.Valid() {
			return words.Word{}, false, &InvalidLibraryError{
				Library: lib.Name,
				Index:   i,
				Reason:  "blank headword or meaning",
			}
		}
	}

	due, err := s.progress.Due(ctx, s.now(), s.dueLimit)
	if err != nil {
		return words.Word{}, false, fmt.Errorf("pick next: %w", err)
	}

	keys := lib.KeySet()
	for _, rec := range due {
		if _, in := keys[rec.Key()]; in {
			return rec.Word(), true, nil
		}
	}

	return lib.Words[s.intn(len(lib.Words))], true, nil
}
