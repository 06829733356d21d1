package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/store"
)

// cfg is loaded before every command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "wordiz",
	Short: "Vocabulary drills in the terminal",
	Long:  "Wordiz: terminal vocabulary drilling with spaced repetition, live statistics and achievements.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.Options{Splash: true})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDIZ_DB env var)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(librariesCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env, then the environment, then the --db flag.
func loadConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	c, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DBPath = p
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg = c
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then WORDIZ_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
