package screen

import (
	"io"
	"log"

	"github.com/abhisek/wordiz/internal/achievements"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/library"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
)

// EngineFactory starts a practice session on a library in a mode.
type EngineFactory func(libraryName string, mode session.Mode) *session.Engine

// Services bundles the collaborators screens need. Screens receive it by
// value; the pointers inside are shared.
type Services struct {
	Config       config.Config
	Libraries    store.LibraryRepo
	Progress     store.ProgressRepo
	Events       store.EventRepo
	Stats        *stats.Aggregator
	Achievements *achievements.Tracker
	Importer     *library.Importer
	NewEngine    EngineFactory
	Logger       *log.Logger
}

// Log returns the configured logger or one that discards.
func (s Services) Log() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return s.Logger
}
