package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/library"
	"github.com/abhisek/wordiz/internal/recorder"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export libraries and learning totals to a JSON backup",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		path := library.BackupFileName(recorder.DayKey(now))
		if len(args) == 1 {
			path = args[0]
		}
		return withServices(cmd.Context(), func(_ *store.Store, svc screen.Services) error {
			b, err := library.Export(cmd.Context(), svc.Libraries, svc.Stats, now)
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
			if err := library.WriteBackup(f, b); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d libraries to %s\n", len(b.Libraries), path)
			return nil
		})
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore FILE",
	Short: "Restore libraries from a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open backup: %w", err)
		}
		defer f.Close()

		b, err := library.ReadBackup(f)
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(_ *store.Store, svc screen.Services) error {
			n, err := svc.Importer.Restore(cmd.Context(), b)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d libraries from %s (exported %s)\n",
				n, args[0], b.ExportDate.Format("2006-01-02"))
			return nil
		})
	},
}
