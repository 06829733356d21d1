package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/wordiz/internal/recorder"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// LibraryReader loads libraries. store.LibraryRepo satisfies it.
type LibraryReader interface {
	Get(ctx context.Context, name string) (*words.Library, error)
	All(ctx context.Context) ([]words.Library, error)
}

// Aggregator computes statistics from the store.
type Aggregator struct {
	progress store.ProgressRepo
	events   store.EventRepo
	libs     LibraryReader
	settings store.SettingsRepo
	now      func() time.Time
	window   time.Duration
	goal     int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithSpeedWindow sets the rolling speed window.
func WithSpeedWindow(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.window = d
		}
	}
}

// WithDailyGoal sets the daily answer goal.
func WithDailyGoal(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.goal = n
		}
	}
}

// NewAggregator creates an Aggregator over the given repositories.
func NewAggregator(progress store.ProgressRepo, events store.EventRepo, libs LibraryReader, settings store.SettingsRepo, opts ...Option) *Aggregator {
	a := &Aggregator{
		progress: progress,
		events:   events,
		libs:     libs,
		settings: settings,
		now:      time.Now,
		window:   DefaultSpeedWindow,
		goal:     DefaultDailyGoal,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Today returns the current calendar day key.
func (a *Aggregator) Today() string {
	return recorder.DayKey(a.now())
}

// DailyGoal returns the configured daily answer goal.
func (a *Aggregator) DailyGoal() int {
	return a.goal
}

// DailySummary counts the answers of day, optionally filtered by library.
func (a *Aggregator) DailySummary(ctx context.Context, day, library string) (DailySummary, error) {
	evs, err := a.events.EventsByDate(ctx, day)
	if err != nil {
		return DailySummary{}, fmt.Errorf("daily summary: %w", err)
	}
	return Summarize(evs, library), nil
}

// RollingSpeed estimates the current typing speed in scope.
func (a *Aggregator) RollingSpeed(ctx context.Context, scope string) (float64, error) {
	now := a.now()
	evs, err := a.events.EventsByDate(ctx, recorder.DayKey(now))
	if err != nil {
		return 0, fmt.Errorf("rolling speed: %w", err)
	}
	return RollingSpeed(evs, now, a.window, scope), nil
}

// ScopeWords returns the words of library scope, or of every library for
// the all scope.
func (a *Aggregator) ScopeWords(ctx context.Context, scope string) ([]words.Word, error) {
	if words.IsAllScope(scope) {
		libs, err := a.libs.All(ctx)
		if err != nil {
			return nil, err
		}
		return words.Union(libs), nil
	}
	lib, err := a.libs.Get(ctx, scope)
	if err != nil || lib == nil {
		return nil, err
	}
	return lib.Words, nil
}

// MasteryStats classifies the words in scope.
func (a *Aggregator) MasteryStats(ctx context.Context, scope string) (MasteryStats, error) {
	scopeWords, err := a.ScopeWords(ctx, scope)
	if err != nil {
		return MasteryStats{}, fmt.Errorf("mastery stats: %w", err)
	}
	recs, err := a.progress.All(ctx)
	if err != nil {
		return MasteryStats{}, fmt.Errorf("mastery stats: %w", err)
	}
	return ComputeMasteryStats(scopeWords, recs), nil
}

// LearningStats totals every mastery record.
func (a *Aggregator) LearningStats(ctx context.Context) (LearningStats, error) {
	recs, err := a.progress.All(ctx)
	if err != nil {
		return LearningStats{}, fmt.Errorf("learning stats: %w", err)
	}
	return ComputeLearningStats(recs), nil
}

// LoadSettings reads the streak scalars and the best speed of each scope.
func (a *Aggregator) LoadSettings(ctx context.Context, scopes ...string) (Settings, error) {
	var s Settings
	var err error
	if s.Streak, err = a.settings.GetInt(ctx, keyStreak, 0); err != nil {
		return Settings{}, err
	}
	if s.LastActiveDay, _, err = a.settings.Get(ctx, keyLastActiveDay); err != nil {
		return Settings{}, err
	}
	s.BestSpeed = make(map[string]int, len(scopes))
	for _, scope := range scopes {
		key := BestSpeedKey(scope)
		if s.BestSpeed[key], err = a.settings.GetInt(ctx, key, 0); err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}

// Streak returns the current streak without settling it.
func (a *Aggregator) Streak(ctx context.Context) (int, error) {
	s, err := a.LoadSettings(ctx)
	if err != nil {
		return 0, fmt.Errorf("streak: %w", err)
	}
	return CurrentStreak(s, a.Today()), nil
}

// SettleStreak counts today as active and persists the result.
func (a *Aggregator) SettleStreak(ctx context.Context) (Settings, bool, error) {
	prev, err := a.LoadSettings(ctx)
	if err != nil {
		return Settings{}, false, fmt.Errorf("settle streak: %w", err)
	}
	next, broken := SettleStreak(prev, a.Today())
	if err := a.settings.SetInt(ctx, keyStreak, next.Streak); err != nil {
		return Settings{}, false, fmt.Errorf("settle streak: %w", err)
	}
	if err := a.settings.Set(ctx, keyLastActiveDay, next.LastActiveDay); err != nil {
		return Settings{}, false, fmt.Errorf("settle streak: %w", err)
	}
	return next, broken, nil
}

// BestSpeed returns the recorded best speed for scope.
func (a *Aggregator) BestSpeed(ctx context.Context, scope string) (int, error) {
	n, err := a.settings.GetInt(ctx, BestSpeedKey(scope), 0)
	if err != nil {
		return 0, fmt.Errorf("best speed: %w", err)
	}
	return n, nil
}

// RecordBestSpeed raises the best speed for scope to the current rolling
// speed when it is higher, and returns the best.
func (a *Aggregator) RecordBestSpeed(ctx context.Context, scope string) (int, error) {
	cur, err := a.RollingSpeed(ctx, scope)
	if err != nil {
		return 0, err
	}
	prev, err := a.BestSpeed(ctx, scope)
	if err != nil {
		return 0, err
	}
	best := RecordBestSpeed(prev, cur)
	if best != prev {
		if err := a.settings.SetInt(ctx, BestSpeedKey(scope), best); err != nil {
			return 0, fmt.Errorf("best speed: %w", err)
		}
	}
	return best, nil
}

// Overview is everything the statistics view shows for one scope.
type Overview struct {
	Scope     string        `json:"scope"`
	Day       string        `json:"day"`
	Today     DailySummary  `json:"today"`
	Speed     int           `json:"speed"`
	BestSpeed int           `json:"bestSpeed"`
	Streak    int           `json:"streak"`
	Goal      int           `json:"goal"`
	GoalPct   int           `json:"goalPercent"`
	Mastery   MasteryStats  `json:"mastery"`
	Learning  LearningStats `json:"learning"`
}

// Overview computes one refresh of the statistics view. The best speed of
// scope is raised as a side effect, as on every refresh.
func (a *Aggregator) Overview(ctx context.Context, scope string) (Overview, error) {
	if words.IsAllScope(scope) {
		scope = words.ScopeAll
	}
	o := Overview{Scope: scope, Day: a.Today(), Goal: a.goal}

	var err error
	if o.Today, err = a.DailySummary(ctx, o.Day, scope); err != nil {
		return Overview{}, err
	}
	speed, err := a.RollingSpeed(ctx, scope)
	if err != nil {
		return Overview{}, err
	}
	o.Speed = SpeedValue(speed)
	if o.BestSpeed, err = a.RecordBestSpeed(ctx, scope); err != nil {
		return Overview{}, err
	}
	if o.Streak, err = a.Streak(ctx); err != nil {
		return Overview{}, err
	}
	if o.Mastery, err = a.MasteryStats(ctx, scope); err != nil {
		return Overview{}, err
	}
	if o.Learning, err = a.LearningStats(ctx); err != nil {
		return Overview{}, err
	}
	o.GoalPct = GoalProgress(o.Today.Total, o.Goal)
	return o, nil
}
