package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abhisek/wordiz/internal/achievements"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/library"
	"github.com/abhisek/wordiz/internal/recorder"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// NewServices wires the engine and its collaborators over st.
func NewServices(st *store.Store, cfg config.Config, logger *log.Logger) screen.Services {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	libs := st.LibraryRepo()
	progress := st.ProgressRepo()
	events := st.EventRepo()

	sched := spacedrep.NewScheduler(progress, spacedrep.WithDueLimit(cfg.DueLimit))
	rec := recorder.New(progress, events)
	agg := stats.NewAggregator(progress, events, libs, st.SettingsRepo(),
		stats.WithSpeedWindow(cfg.SpeedWindow),
		stats.WithDailyGoal(cfg.DailyGoal),
	)
	tracker := achievements.NewTracker(st.AchievementRepo())

	return screen.Services{
		Config:       cfg,
		Libraries:    libs,
		Progress:     progress,
		Events:       events,
		Stats:        agg,
		Achievements: tracker,
		Importer:     library.NewImporter(libs),
		Logger:       logger,
		NewEngine: func(libraryName string, mode session.Mode) *session.Engine {
			e := session.NewEngine(sched, rec, libs,
				session.WithLogger(logger),
				session.WithMode(mode),
				session.WithAfterAnswer(AfterAnswer(agg, tracker, libraryName, logger)),
			)
			e.SetLibrary(libraryName)
			return e
		},
	}
}

// AfterAnswer returns the hook run after every recorded answer: it settles
// the streak, raises the best speeds of scope and of every library, and
// refreshes achievement progress.
func AfterAnswer(agg *stats.Aggregator, tracker *achievements.Tracker, scope string, logger *log.Logger) session.AfterAnswerFunc {
	return func(ctx context.Context, o session.Outcome, _ *store.MasteryRecord) error {
		if _, broken, err := agg.SettleStreak(ctx); err != nil {
			return err
		} else if broken {
			logger.Printf("streak reset on %s", agg.Today())
		}

		scopes := []string{words.ScopeAll}
		if !words.IsAllScope(scope) {
			scopes = append(scopes, scope)
		}
		for _, sc := range scopes {
			if _, err := agg.RecordBestSpeed(ctx, sc); err != nil {
				return err
			}
		}

		in, err := achievements.InputsFrom(ctx, agg)
		if err != nil {
			return fmt.Errorf("achievement inputs: %w", err)
		}
		unlocked, err := tracker.Refresh(ctx, in)
		if err != nil {
			return err
		}
		for _, a := range unlocked {
			logger.Printf("achievement unlocked: %s", a.Title)
		}
		return nil
	}
}

// OpenLog opens the log file named by the config, or returns a logger that
// discards when none is set. The returned close function is never nil.
func OpenLog(cfg config.Config) (*log.Logger, func() error, error) {
	if cfg.LogFile == "" {
		return log.New(io.Discard, "", 0), func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "wordiz ", log.LstdFlags), f.Close, nil
}
