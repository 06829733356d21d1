// Package stats turns practice events and mastery records into the
// numbers shown to the learner: daily summary, rolling speed, best speed,
// streak and mastery coverage.
package stats

import (
	"math"

	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// DailySummary counts the answers of one calendar day.
type DailySummary struct {
	Total    int `json:"total"`
	Right    int `json:"right"`
	Wrong    int `json:"wrong"`
	Accuracy int `json:"accuracy"`
}

// Summarize counts events in library scope. Accuracy is a rounded
// percentage and is 100 when there are no events.
func Summarize(events []store.PracticeEvent, library string) DailySummary {
	var sum DailySummary
	for _, ev := range events {
		if !inScope(ev.Library, library) {
			continue
		}
		sum.Total++
		if ev.Correct {
			sum.Right++
		}
	}
	sum.Wrong = sum.Total - sum.Right
	sum.Accuracy = Percent(sum.Right, sum.Total, 100)
	return sum
}

// Percent returns round(part/total*100), or empty when total is 0.
func Percent(part, total, empty int) int {
	if total == 0 {
		return empty
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// inScope reports whether an event from library belongs to scope.
func inScope(library, scope string) bool {
	return words.IsAllScope(scope) || library == scope
}
