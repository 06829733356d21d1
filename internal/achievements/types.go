// Package achievements maps statistics onto a fixed set of progress-bar
// achievements.
package achievements

import "github.com/abhisek/wordiz/internal/store"

// Achievement ids.
const (
	FirstWord  = "first_word"
	DailyGoal  = "daily_goal"
	WordMaster = "word_master"
	SpeedTyper = "speed_typer"
	PerfectDay = "perfect_day"
)

// Definitions returns the five achievements in display order with no
// progress.
func Definitions() []store.Achievement {
	return []store.Achievement{
		{ID: FirstWord, Position: 0, Title: "First Steps", Description: "Answer your first word", MaxProgress: 1},
		{ID: DailyGoal, Position: 1, Title: "Persistence", Description: "Practice 7 days in a row", MaxProgress: 7},
		{ID: WordMaster, Position: 2, Title: "Word Master", Description: "Master 100 words", MaxProgress: 100},
		{ID: SpeedTyper, Position: 3, Title: "Speed Typer", Description: "Reach a typing speed of 50 WPM", MaxProgress: 50},
		{ID: PerfectDay, Position: 4, Title: "Perfect Day", Description: "Answer everything right in one day", MaxProgress: 1},
	}
}

// Icon returns the display icon for an achievement id.
func Icon(id string) string {
	switch id {
	case FirstWord:
		return "🌱"
	case DailyGoal:
		return "🔥"
	case WordMaster:
		return "📚"
	case SpeedTyper:
		return "⚡"
	case PerfectDay:
		return "🏆"
	default:
		return "✦"
	}
}

// Percent returns how far a is toward unlocking, 0..100.
func Percent(a store.Achievement) int {
	if a.MaxProgress <= 0 {
		return 0
	}
	return min(100, max(0, a.Progress*100/a.MaxProgress))
}
