package stats

import (
	"time"

	"github.com/abhisek/wordiz/internal/recorder"
	"github.com/abhisek/wordiz/internal/words"
)

// Settings keys.
const (
	keyStreak        = "streak"
	keyLastActiveDay = "last_active_day"
	keyBestSpeed     = "best_speed:"
)

// BestSpeedKey returns the settings key of the best speed for scope.
func BestSpeedKey(scope string) string {
	if words.IsAllScope(scope) {
		scope = words.ScopeAll
	}
	return keyBestSpeed + scope
}

// Settings are the persisted scalars behind the streak and best speed.
type Settings struct {
	Streak        int
	LastActiveDay string
	BestSpeed     map[string]int
}

// Best returns the recorded best speed for scope.
func (s Settings) Best(scope string) int {
	return s.BestSpeed[BestSpeedKey(scope)]
}

// WithBest returns a copy of s with the best speed for scope set to v.
func (s Settings) WithBest(scope string, v int) Settings {
	m := make(map[string]int, len(s.BestSpeed)+1)
	for k, b := range s.BestSpeed {
		m[k] = b
	}
	m[BestSpeedKey(scope)] = v
	s.BestSpeed = m
	return s
}

// DaysBetween returns the number of calendar days from one day key to
// another. ok is false when either key does not parse.
func DaysBetween(from, to string) (int, bool) {
	a, err := time.Parse(recorder.DayLayout, from)
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(recorder.DayLayout, to)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// SettleStreak folds today's activity into prev. A gap of two or more days
// since the last active day breaks the run; a new day extends it. The last
// active day is always stamped with today, so repeated calls on one day
// count once. broken reports that a previous run was reset.
func SettleStreak(prev Settings, today string) (next Settings, broken bool) {
	next = prev
	if prev.LastActiveDay != "" {
		if gap, ok := DaysBetween(prev.LastActiveDay, today); ok && gap >= 2 {
			broken = next.Streak > 0
			next.Streak = 0
		}
	}
	if prev.LastActiveDay != today {
		next.Streak++
	}
	next.LastActiveDay = today
	return next, broken
}

// CurrentStreak is the streak as of today without settling: a run whose
// last active day is two or more days old has already ended.
func CurrentStreak(s Settings, today string) int {
	if s.LastActiveDay == "" {
		return 0
	}
	if gap, ok := DaysBetween(s.LastActiveDay, today); ok && gap >= 2 {
		return 0
	}
	return s.Streak
}
