package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "List imported word libraries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(_ *store.Store, svc screen.Services) error {
			sums, err := svc.Libraries.Summaries(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sums) == 0 {
				fmt.Fprintln(out, "No libraries yet. Import one with: wordiz import FILE")
				return nil
			}

			fmt.Fprintf(out, "%-30s  %6s  %s\n", "Name", "Words", "Imported")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			total := 0
			for _, s := range sums {
				total += s.WordCount
				fmt.Fprintf(out, "%-30s  %6d  %s\n", s.Name, s.WordCount, s.ImportedAt.Format("2006-01-02 15:04"))
			}
			fmt.Fprintf(out, "\n%d libraries, %d words\n", len(sums), total)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a word list (.txt en:zh lines, .csv, .json or .xlsx)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		return withServices(cmd.Context(), func(_ *store.Store, svc screen.Services) error {
			lib, err := svc.Importer.ImportFile(cmd.Context(), args[0], name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words into %q\n", lib.WordCount(), lib.Name)
			return nil
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search words by headword or meaning",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		limit, _ := cmd.Flags().GetInt("limit")
		return withServices(cmd.Context(), func(_ *store.Store, svc screen.Services) error {
			results, err := svc.Libraries.Search(cmd.Context(), query, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No words match %q\n", query)
				return nil
			}
			now := time.Now()
			for _, r := range results {
				status, err := reviewStatus(cmd.Context(), svc.Progress, r.Word, now)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-24s  %-24s  %-20s  %s\n", r.Word.Headword, r.Word.Meaning, r.Library, status)
			}
			fmt.Fprintf(out, "\n%d results\n", len(results))
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add LIBRARY HEADWORD MEANING",
	Short: "Add a single word to a library, creating the library if needed",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := words.New(strings.TrimSpace(args[1]), strings.TrimSpace(args[2]))
		if !w.Valid() {
			return fmt.Errorf("headword and meaning must not be blank")
		}
		return withServices(cmd.Context(), func(_ *store.Store, svc screen.Services) error {
			lib, err := svc.Importer.AddToLibrary(cmd.Context(), args[0], w)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q now has %d words\n", lib.Name, lib.WordCount())
			return nil
		})
	},
}

// reviewStatus describes when w is next due, e.g. "new", "due" or "in 3d".
func reviewStatus(ctx context.Context, progress store.ProgressRepo, w words.Word, now time.Time) (string, error) {
	rec, err := progress.Get(ctx, w.Key())
	if err != nil {
		return "", err
	}
	status := spacedrep.Status(rec, now)
	if status == spacedrep.ReviewScheduled {
		return fmt.Sprintf("in %dd (bucket %d)", spacedrep.DaysUntilReview(rec, now), rec.Bucket), nil
	}
	return string(status), nil
}

func init() {
	importCmd.Flags().StringP("name", "n", "", "Library name (default: the file name)")
	searchCmd.Flags().Int("limit", 50, "Maximum number of results")
}
