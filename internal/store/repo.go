package store

import (
	"context"
	"time"

	"github.com/abhisek/wordiz/internal/words"
)

// MasteryRecord is the spaced-repetition state of one distinct word.
type MasteryRecord struct {
	Headword     string
	Meaning      string
	Bucket       int
	SeenCount    int
	CorrectCount int
	WrongCount   int
	LastSeenAt   *time.Time
	NextReviewAt *time.Time
}

// Word returns the identity of the record.
func (r *MasteryRecord) Word() words.Word {
	return words.New(r.Headword, r.Meaning)
}

// Key returns the identity key of the record.
func (r *MasteryRecord) Key() string {
	return r.Word().Key()
}

// Accuracy returns correct/seen, or 0 when the word was never answered.
func (r *MasteryRecord) Accuracy() float64 {
	if r.SeenCount == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.SeenCount)
}

// ProgressRepo reads and writes mastery records.
type ProgressRepo interface {
	// Get returns the record for key, or nil if the word was never answered.
	Get(ctx context.Context, key string) (*MasteryRecord, error)

	// All returns every record ordered by identity key.
	All(ctx context.Context) ([]*MasteryRecord, error)

	// Upsert inserts or replaces the record for its identity key.
	Upsert(ctx context.Context, rec *MasteryRecord) error

	// Due returns up to limit records whose next review is unset or at or
	// before now, least-mastered bucket first.
	Due(ctx context.Context, now time.Time, limit int) ([]*MasteryRecord, error)
}

// PracticeEvent is one judged answer. Events are never modified.
type PracticeEvent struct {
	ID        int64
	Day       string
	Timestamp time.Time
	Headword  string
	Meaning   string
	Library   string
	Correct   bool
	CharCount int
	SessionID string
	Mode      string
}

// Word returns the identity of the answered word.
func (e *PracticeEvent) Word() words.Word {
	return words.New(e.Headword, e.Meaning)
}

// EventRepo provides append and query access to practice events.
type EventRepo interface {
	// AppendPracticeEvent stores ev and sets its ID.
	AppendPracticeEvent(ctx context.Context, ev *PracticeEvent) error

	// EventsByDate returns all events of a calendar day in append order.
	EventsByDate(ctx context.Context, day string) ([]PracticeEvent, error)

	// EventsSince returns events with timestamp >= since in append order.
	EventsSince(ctx context.Context, since time.Time) ([]PracticeEvent, error)

	// Recent returns the newest events first.
	Recent(ctx context.Context, limit int) ([]PracticeEvent, error)

	// Count returns the total number of events.
	Count(ctx context.Context) (int, error)
}

// LibrarySummary describes a library without loading its words.
type LibrarySummary struct {
	Name       string
	WordCount  int
	ImportedAt time.Time
}

// SearchResult is a word found in a library.
type SearchResult struct {
	Word    words.Word
	Library string
}

// LibraryRepo stores imported word libraries.
type LibraryRepo interface {
	// Save creates or replaces the library with the given name.
	Save(ctx context.Context, lib words.Library) error

	// Get returns the library, or nil if none has that name.
	Get(ctx context.Context, name string) (*words.Library, error)

	// All returns every library with its words, ordered by name.
	All(ctx context.Context) ([]words.Library, error)

	// Summaries lists libraries with word counts, ordered by name.
	Summaries(ctx context.Context) ([]LibrarySummary, error)

	// Delete removes a library and its words.
	Delete(ctx context.Context, name string) error

	// Search finds words whose headword contains query (ignoring case)
	// or whose meaning contains query.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// SettingsRepo stores named scalar values.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	GetInt(ctx context.Context, key string, def int) (int, error)
	SetInt(ctx context.Context, key string, value int) error
}

// Achievement is a progress-bar goal.
type Achievement struct {
	ID          string
	Position    int
	Title       string
	Description string
	Progress    int
	MaxProgress int
	Unlocked    bool
}

// AchievementRepo stores achievement progress.
type AchievementRepo interface {
	// SeedIfEmpty inserts defs when no achievement exists yet.
	SeedIfEmpty(ctx context.Context, defs []Achievement) error

	// All returns every achievement in display order.
	All(ctx context.Context) ([]Achievement, error)

	// Get returns the achievement, or nil if id is unknown.
	Get(ctx context.Context, id string) (*Achievement, error)

	// Put replaces an existing achievement.
	Put(ctx context.Context, a Achievement) error
}
