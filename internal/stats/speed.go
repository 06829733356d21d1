package stats

import (
	"math"
	"time"

	"github.com/abhisek/wordiz/internal/recorder"
	"github.com/abhisek/wordiz/internal/store"
)

const (
	// DefaultSpeedWindow is the trailing window of the rolling speed.
	DefaultSpeedWindow = 5 * time.Minute

	// CharsPerWord converts typed characters into words.
	CharsPerWord = 5

	// MinSpeedMinutes floors the divisor of the rolling speed.
	MinSpeedMinutes = 0.25
)

// RollingSpeed estimates words per minute over the window ending at now.
// Only events of now's calendar day in scope count. Characters are divided
// by CharsPerWord; when no event carries a character count the number of
// events is used instead.
func RollingSpeed(events []store.PracticeEvent, now time.Time, window time.Duration, scope string) float64 {
	today := recorder.DayKey(now)
	since := now.Add(-window)

	var n, chars int
	for _, ev := range events {
		if ev.Day != today || ev.Timestamp.Before(since) || !inScope(ev.Library, scope) {
			continue
		}
		n++
		chars += max(0, ev.CharCount)
	}

	minutes := math.Max(MinSpeedMinutes, window.Minutes())
	if chars > 0 {
		return float64(chars) / CharsPerWord / minutes
	}
	return float64(n) / minutes
}

// SpeedValue is the displayed, stored form of a rolling speed.
func SpeedValue(speed float64) int {
	return max(0, int(math.Round(speed)))
}

// RecordBestSpeed returns the new best speed given the previous best and
// the current rolling speed.
func RecordBestSpeed(prevBest int, current float64) int {
	return max(prevBest, SpeedValue(current))
}
