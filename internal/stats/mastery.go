package stats

import (
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

const (
	// MasteredBucket is the bucket at which a word counts as mastered.
	MasteredBucket = 4

	// MasteredMinSeen and MasteredMinAccuracy are the alternative criterion:
	// enough answers at a high enough accuracy.
	MasteredMinSeen     = 3
	MasteredMinAccuracy = 0.85
)

// IsMastered reports whether rec counts as mastered.
func IsMastered(rec *store.MasteryRecord) bool {
	if rec.Bucket >= MasteredBucket {
		return true
	}
	return rec.SeenCount >= MasteredMinSeen && rec.Accuracy() >= MasteredMinAccuracy
}

// MasteryStats describes learning progress over a set of words.
type MasteryStats struct {
	TotalImported int `json:"totalImported"`
	Seen          int `json:"seen"`
	Mastered      int `json:"mastered"`
	Learning      int `json:"learning"`
	Coverage      int `json:"coverage"`
	AccuracyAll   int `json:"accuracyAll"`
}

// ComputeMasteryStats classifies the records of scopeWords. Duplicate scope
// words count once.
func ComputeMasteryStats(scopeWords []words.Word, records []*store.MasteryRecord) MasteryStats {
	scope := make(map[string]struct{}, len(scopeWords))
	for _, w := range scopeWords {
		scope[w.Key()] = struct{}{}
	}

	ms := MasteryStats{TotalImported: len(scope)}
	var correct, attempts int
	for _, rec := range records {
		if _, ok := scope[rec.Key()]; !ok {
			continue
		}
		if rec.SeenCount > 0 {
			ms.Seen++
		}
		if IsMastered(rec) {
			ms.Mastered++
		}
		correct += rec.CorrectCount
		attempts += rec.CorrectCount + rec.WrongCount
	}

	ms.Learning = max(0, ms.Seen-ms.Mastered)
	ms.Coverage = Percent(ms.Seen, ms.TotalImported, 0)
	ms.AccuracyAll = Percent(correct, attempts, 100)
	return ms
}

// LearningStats are global totals over every mastery record.
type LearningStats struct {
	TotalWords    int `json:"totalWords"`
	Accuracy      int `json:"accuracy"`
	MasteredWords int `json:"masteredWords"`
	LearningWords int `json:"learningWords"`
}

// ComputeLearningStats totals every record regardless of library.
func ComputeLearningStats(records []*store.MasteryRecord) LearningStats {
	var ls LearningStats
	var correct, attempts int
	for _, rec := range records {
		ls.TotalWords++
		if IsMastered(rec) {
			ls.MasteredWords++
		}
		correct += rec.CorrectCount
		attempts += rec.CorrectCount + rec.WrongCount
	}
	ls.Accuracy = Percent(correct, attempts, 100)
	ls.LearningWords = max(0, ls.TotalWords-ls.MasteredWords)
	return ls
}
