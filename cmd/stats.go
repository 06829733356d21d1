package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, _ := cmd.Flags().GetString("library")
		if scope == "" {
			scope = words.ScopeAll
		}
		watch, _ := cmd.Flags().GetBool("watch")

		return withServices(cmd.Context(), func(_ *store.Store, svc screen.Services) error {
			out := cmd.OutOrStdout()
			if !watch {
				ov, err := svc.Stats.Overview(cmd.Context(), scope)
				if err != nil {
					return err
				}
				printOverview(out, ov)
				return printAchievements(cmd.Context(), out, svc)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return svc.Stats.Watch(ctx, scope, cfg.RefreshInterval, svc.Logger, func(ov stats.Overview) {
				// Clear the screen and redraw.
				fmt.Fprint(out, "\033[H\033[2J")
				printOverview(out, ov)
				fmt.Fprintf(out, "\nRefreshing every %s. Press Ctrl+C to stop.\n", cfg.RefreshInterval)
			})
		})
	},
}

func init() {
	statsCmd.Flags().StringP("library", "l", "", "Library scope (default: all libraries)")
	statsCmd.Flags().BoolP("watch", "w", false, "Refresh continuously")
}

func printOverview(w io.Writer, ov stats.Overview) {
	scope := ov.Scope
	if words.IsAllScope(scope) {
		scope = "all libraries"
	}
	fmt.Fprintf(w, "Statistics for %s on %s\n", scope, ov.Day)
	fmt.Fprintln(w, strings.Repeat("─", 48))
	fmt.Fprintf(w, "%-16s %d (%d right, %d wrong)\n", "Today", ov.Today.Total, ov.Today.Right, ov.Today.Wrong)
	fmt.Fprintf(w, "%-16s %d%%\n", "Accuracy", ov.Today.Accuracy)
	fmt.Fprintf(w, "%-16s %d/%d (%d%%)\n", "Daily goal", ov.Today.Total, ov.Goal, ov.GoalPct)
	fmt.Fprintf(w, "%-16s %d wpm (best %d)\n", "Speed", ov.Speed, ov.BestSpeed)
	fmt.Fprintf(w, "%-16s %d days\n", "Streak", ov.Streak)
	fmt.Fprintf(w, "%-16s %d imported, %d seen, %d learning, %d mastered\n", "Words",
		ov.Mastery.TotalImported, ov.Mastery.Seen, ov.Mastery.Learning, ov.Mastery.Mastered)
	fmt.Fprintf(w, "%-16s %d%% coverage, %d%% accuracy\n", "Mastery", ov.Mastery.Coverage, ov.Mastery.AccuracyAll)
}

func printAchievements(ctx context.Context, w io.Writer, svc screen.Services) error {
	all, err := svc.Achievements.All(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Achievements")
	fmt.Fprintln(w, strings.Repeat("─", 48))
	for _, a := range all {
		status := fmt.Sprintf("%d/%d", a.Progress, a.MaxProgress)
		if a.Unlocked {
			status = "unlocked"
		}
		fmt.Fprintf(w, "%-14s %-36s %s\n", a.Title, a.Description, status)
	}
	return nil
}
