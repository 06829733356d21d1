package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/achievements"
	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/store"
)

// withServices opens the store, wires the services and runs fn.
func withServices(ctx context.Context, fn func(st *store.Store, svc screen.Services) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	logger, closeLog, err := app.OpenLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := st.AchievementRepo().SeedIfEmpty(ctx, achievements.Definitions()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: seed achievements: %v\n", err)
	}

	return fn(st, app.NewServices(st, cfg, logger))
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, opts app.Options) error {
	return withServices(cmd.Context(), func(_ *store.Store, svc screen.Services) error {
		return app.Run(svc, opts)
	})
}
