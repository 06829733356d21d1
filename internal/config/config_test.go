package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/words"
)

var envVars = []string{
	"WORDIZ_DB", "WORDIZ_LIBRARY", "WORDIZ_MODE", "WORDIZ_DAILY_GOAL",
	"WORDIZ_DUE_LIMIT", "WORDIZ_SPEED_WINDOW", "WORDIZ_REFRESH_INTERVAL",
	"WORDIZ_LOG_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, words.ScopeAll, cfg.Library)
	assert.Equal(t, session.ModeFollow, cfg.Mode)
	assert.Equal(t, 50, cfg.DailyGoal)
	assert.Equal(t, 200, cfg.DueLimit)
	assert.Equal(t, 5*time.Minute, cfg.SpeedWindow)
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORDIZ_DB", "/tmp/w.db")
	t.Setenv("WORDIZ_LIBRARY", "cet4")
	t.Setenv("WORDIZ_MODE", "Dictation")
	t.Setenv("WORDIZ_DAILY_GOAL", "80")
	t.Setenv("WORDIZ_DUE_LIMIT", "20")
	t.Setenv("WORDIZ_SPEED_WINDOW", "10m")
	t.Setenv("WORDIZ_REFRESH_INTERVAL", "2s")
	t.Setenv("WORDIZ_LOG_FILE", "/tmp/w.log")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{
		DBPath:          "/tmp/w.db",
		Library:         "cet4",
		Mode:            session.ModeDictation,
		DailyGoal:       80,
		DueLimit:        20,
		SpeedWindow:     10 * time.Minute,
		RefreshInterval: 2 * time.Second,
		LogFile:         "/tmp/w.log",
	}, cfg)
}

func TestFromEnvMalformed(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORDIZ_MODE", "shout")
	t.Setenv("WORDIZ_DAILY_GOAL", "lots")
	t.Setenv("WORDIZ_SPEED_WINDOW", "soon")

	cfg, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORDIZ_MODE")
	assert.Contains(t, err.Error(), "WORDIZ_DAILY_GOAL")
	assert.Contains(t, err.Error(), "WORDIZ_SPEED_WINDOW")
	// Bad values leave defaults in place.
	assert.Equal(t, session.ModeFollow, cfg.Mode)
	assert.Equal(t, 50, cfg.DailyGoal)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Mode = "x" }},
		{"zero goal", func(c *Config) { c.DailyGoal = 0 }},
		{"zero due limit", func(c *Config) { c.DueLimit = 0 }},
		{"short window", func(c *Config) { c.SpeedWindow = time.Second }},
		{"fast refresh", func(c *Config) { c.RefreshInterval = time.Millisecond }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("WORDIZ_LIBRARY=fromfile\nWORDIZ_DAILY_GOAL=30\n"), 0o644))

	// godotenv never overrides a variable that is set, even to "".
	os.Unsetenv("WORDIZ_LIBRARY")
	os.Unsetenv("WORDIZ_DAILY_GOAL")

	require.NoError(t, LoadDotEnv(path))
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.Library)
	assert.Equal(t, 30, cfg.DailyGoal)
}

func TestLoadDotEnvMissing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
