package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/words"
)

// Config holds runtime settings for the practice engine and the UI.
type Config struct {
	// DBPath is the SQLite file. Empty means the default data dir.
	DBPath string

	// Library is the library practiced on start. Default: all libraries.
	Library string

	// Mode is the starting interaction mode. Default: follow.
	Mode session.Mode

	// DailyGoal is the number of answers per day counted as a full goal.
	DailyGoal int

	// DueLimit caps how many due records the scheduler inspects per pick.
	DueLimit int

	// SpeedWindow is the rolling window for typing speed. Default: 5m.
	SpeedWindow time.Duration

	// RefreshInterval is how often live statistics are recomputed.
	RefreshInterval time.Duration

	// LogFile receives engine warnings while the TUI owns the terminal.
	LogFile string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Library:         words.ScopeAll,
		Mode:            session.ModeFollow,
		DailyGoal:       stats.DefaultDailyGoal,
		DueLimit:        spacedrep.DefaultDueLimit,
		SpeedWindow:     stats.DefaultSpeedWindow,
		RefreshInterval: 5 * time.Second,
	}
}

// LoadDotEnv loads variables from a .env file in the working directory.
// A missing file is not an error; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values. Malformed values are reported.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	if p := os.Getenv("WORDIZ_DB"); p != "" {
		cfg.DBPath = p
	}
	if l := os.Getenv("WORDIZ_LIBRARY"); l != "" {
		cfg.Library = l
	}
	if m := os.Getenv("WORDIZ_MODE"); m != "" {
		mode, err := session.ParseMode(m)
		if err != nil {
			errs = append(errs, fmt.Errorf("WORDIZ_MODE: %w", err))
		} else {
			cfg.Mode = mode
		}
	}
	if v := os.Getenv("WORDIZ_DAILY_GOAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("WORDIZ_DAILY_GOAL: not an integer: %q", v))
		} else {
			cfg.DailyGoal = n
		}
	}
	if v := os.Getenv("WORDIZ_DUE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("WORDIZ_DUE_LIMIT: not an integer: %q", v))
		} else {
			cfg.DueLimit = n
		}
	}
	if v := os.Getenv("WORDIZ_SPEED_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("WORDIZ_SPEED_WINDOW: %w", err))
		} else {
			cfg.SpeedWindow = d
		}
	}
	if v := os.Getenv("WORDIZ_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("WORDIZ_REFRESH_INTERVAL: %w", err))
		} else {
			cfg.RefreshInterval = d
		}
	}
	if f := os.Getenv("WORDIZ_LOG_FILE"); f != "" {
		cfg.LogFile = f
	}

	return cfg, errors.Join(errs...)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("unknown mode: %q", c.Mode)
	}
	if c.DailyGoal <= 0 {
		return fmt.Errorf("daily goal must be positive, got %d", c.DailyGoal)
	}
	if c.DueLimit <= 0 {
		return fmt.Errorf("due limit must be positive, got %d", c.DueLimit)
	}
	if c.SpeedWindow < time.Minute {
		return fmt.Errorf("speed window must be at least 1m, got %s", c.SpeedWindow)
	}
	if c.RefreshInterval < time.Second {
		return fmt.Errorf("refresh interval must be at least 1s, got %s", c.RefreshInterval)
	}
	return nil
}
