package achievements

import (
	"context"
	"fmt"

	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
)

// Apply sets the progress of a, clamped to [0, MaxProgress]. Reaching the
// maximum unlocks it. Progress follows the statistics down again, but an
// unlocked achievement never locks again.
func Apply(a store.Achievement, progress int) store.Achievement {
	a.Progress = min(a.MaxProgress, max(0, progress))
	a.Unlocked = a.Unlocked || a.Progress >= a.MaxProgress
	return a
}

// Inputs are the statistics the achievements are computed from.
type Inputs struct {
	WordsSeen int
	Streak    int
	Mastered  int
	BestSpeed int
	Today     stats.DailySummary
}

// Progress returns the progress each achievement should have for in.
func Progress(in Inputs) map[string]int {
	first := 0
	if in.WordsSeen > 0 {
		first = 1
	}
	perfect := 0
	if in.Today.Total > 0 && in.Today.Accuracy == 100 {
		perfect = 1
	}
	return map[string]int{
		FirstWord:  first,
		DailyGoal:  min(in.Streak, 7),
		WordMaster: in.Mastered,
		SpeedTyper: in.BestSpeed,
		PerfectDay: perfect,
	}
}

// Tracker persists achievement progress.
type Tracker struct {
	repo store.AchievementRepo
}

// NewTracker creates a Tracker over repo.
func NewTracker(repo store.AchievementRepo) *Tracker {
	return &Tracker{repo: repo}
}

// All returns every achievement, seeding the definitions on first use.
func (t *Tracker) All(ctx context.Context) ([]store.Achievement, error) {
	if err := t.repo.SeedIfEmpty(ctx, Definitions()); err != nil {
		return nil, fmt.Errorf("seed achievements: %w", err)
	}
	return t.repo.All(ctx)
}

// Update applies progress to achievement id. unlocked is true only when
// this call unlocked it. Unknown ids are ignored.
func (t *Tracker) Update(ctx context.Context, id string, progress int) (a *store.Achievement, unlocked bool, err error) {
	cur, err := t.repo.Get(ctx, id)
	if err != nil || cur == nil {
		return nil, false, err
	}
	next := Apply(*cur, progress)
	if next != *cur {
		if err := t.repo.Put(ctx, next); err != nil {
			return nil, false, fmt.Errorf("update achievement %s: %w", id, err)
		}
	}
	return &next, next.Unlocked && !cur.Unlocked, nil
}

// Refresh recomputes all five achievements from in and returns the ones
// unlocked by this call.
func (t *Tracker) Refresh(ctx context.Context, in Inputs) ([]store.Achievement, error) {
	if err := t.repo.SeedIfEmpty(ctx, Definitions()); err != nil {
		return nil, fmt.Errorf("seed achievements: %w", err)
	}

	progress := Progress(in)
	var unlocked []store.Achievement
	for _, def := range Definitions() {
		a, newly, err := t.Update(ctx, def.ID, progress[def.ID])
		if err != nil {
			return unlocked, err
		}
		if newly {
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked, nil
}

// InputsFrom gathers Inputs from the aggregator: global learning totals,
// the settled streak, the best speed over all libraries and today's summary.
func InputsFrom(ctx context.Context, agg *stats.Aggregator) (Inputs, error) {
	ls, err := agg.LearningStats(ctx)
	if err != nil {
		return Inputs{}, err
	}
	streak, err := agg.Streak(ctx)
	if err != nil {
		return Inputs{}, err
	}
	best, err := agg.BestSpeed(ctx, "")
	if err != nil {
		return Inputs{}, err
	}
	today, err := agg.DailySummary(ctx, agg.Today(), "")
	if err != nil {
		return Inputs{}, err
	}
	return Inputs{
		WordsSeen: ls.TotalWords,
		Streak:    streak,
		Mastered:  ls.MasteredWords,
		BestSpeed: best,
		Today:     today,
	}, nil
}
