package spacedrep

import (
	"time"

	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// NewRecord returns the default mastery record for a word that has never
// been answered: bucket 0, no counts, never seen.
func NewRecord(w words.Word) *store.MasteryRecord {
	return &store.MasteryRecord{Headword: w.Headword, Meaning: w.Meaning}
}

// GetOrCreate returns rec, or a fresh default record for w when rec is nil.
func GetOrCreate(rec *store.MasteryRecord, w words.Word) *store.MasteryRecord {
	if rec == nil {
		return NewRecord(w)
	}
	return rec
}

// ApplyAnswer updates rec in place for one judged answer at now.
// A correct answer moves the word up one bucket, an incorrect one down,
// and the next review is scheduled from the resulting bucket.
func ApplyAnswer(rec *store.MasteryRecord, correct bool, now time.Time) {
	rec.SeenCount++
	seen := now
	rec.LastSeenAt = &seen

	if correct {
		rec.CorrectCount++
		rec.Bucket = ClampBucket(rec.Bucket + 1)
	} else {
		rec.WrongCount++
		rec.Bucket = ClampBucket(rec.Bucket - 1)
	}

	next := now.Add(IntervalFor(rec.Bucket))
	rec.NextReviewAt = &next
}

// IsDue reports whether rec should be reviewed at now. A record that was
// never scheduled is always due.
func IsDue(rec *store.MasteryRecord, now time.Time) bool {
	if rec.NextReviewAt == nil {
		return true
	}
	return !now.Before(*rec.NextReviewAt)
}

// DaysUntilReview returns whole days until the next review, 0 if due.
func DaysUntilReview(rec *store.MasteryRecord, now time.Time) int {
	if IsDue(rec, now) {
		return 0
	}
	hours := rec.NextReviewAt.Sub(now).Hours()
	days := int(hours / 24)
	if hours > float64(days*24) {
		days++
	}
	return days
}

// ReviewStatus describes a word's review status for display.
type ReviewStatus string

const (
	ReviewNew       ReviewStatus = "new"
	ReviewDue       ReviewStatus = "due"
	ReviewScheduled ReviewStatus = "scheduled"
)

// Status returns the review status of rec, treating nil as a new word.
func Status(rec *store.MasteryRecord, now time.Time) ReviewStatus {
	switch {
	case rec == nil || rec.SeenCount == 0:
		return ReviewNew
	case IsDue(rec, now):
		return ReviewDue
	default:
		return ReviewScheduled
	}
}
