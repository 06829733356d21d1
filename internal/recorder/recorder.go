// Package recorder persists judged answers: it applies the spaced-repetition
// update rule to the word's mastery record and appends a practice event.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// DayLayout formats the calendar day stored on practice events.
const DayLayout = "2006-01-02"

// DayKey returns the local calendar day of t.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(DayLayout)
}

// Answer is one judged attempt.
type Answer struct {
	Word      words.Word
	Library   string
	Correct   bool
	Mode      string
	SessionID string
}

// Recorder writes mastery records and practice events.
type Recorder struct {
	progress store.ProgressRepo
	events   store.EventRepo
	now      func() time.Time
}

// New creates a Recorder over the given repositories.
func New(progress store.ProgressRepo, events store.EventRepo) *Recorder {
	return &Recorder{progress: progress, events: events, now: time.Now}
}

// WithClock returns a copy of r that reads time from now.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	cp := *r
	cp.now = now
	return &cp
}

// RecordAnswer updates the mastery record for a.Word and appends a practice
// event. Both writes are attempted even if the first fails; the returned
// error joins every failure. The updated record is returned whenever it
// could be computed.
func (r *Recorder) RecordAnswer(ctx context.Context, a Answer) (*store.MasteryRecord, error) {
	now := r.now()

	var errs []error

	existing, err := r.progress.Get(ctx, a.Word.Key())
	if err != nil {
		// Keep going from the default record so the event is still written.
		errs = append(errs, fmt.Errorf("load mastery record: %w", err))
		existing = nil
	}
	rec := spacedrep.GetOrCreate(existing, a.Word)
	spacedrep.ApplyAnswer(rec, a.Correct, now)

	if err == nil {
		if err := r.progress.Upsert(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("save mastery record: %w", err))
		}
	}

	ev := &store.PracticeEvent{
		Day:       DayKey(now),
		Timestamp: now,
		Headword:  a.Word.Headword,
		Meaning:   a.Word.Meaning,
		Library:   a.Library,
		Correct:   a.Correct,
		CharCount: a.Word.CharCount(),
		SessionID: a.SessionID,
		Mode:      a.Mode,
	}
	if err := r.events.AppendPracticeEvent(ctx, ev); err != nil {
		errs = append(errs, fmt.Errorf("append practice event: %w", err))
	}

	return rec, errors.Join(errs...)
}
