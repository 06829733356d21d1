package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Delete all progress, practice history, streaks and achievements. Libraries are kept unless --libraries is given.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		withLibs, _ := cmd.Flags().GetBool("libraries")
		if !yes {
			return errors.New("reset deletes all learning data; pass --yes to confirm")
		}
		return withServices(cmd.Context(), func(st *store.Store, _ screen.Services) error {
			if err := st.Reset(cmd.Context(), withLibs); err != nil {
				return err
			}
			what := "Progress, history and achievements"
			if withLibs {
				what += " and libraries"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s were reset.\n", what)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
	resetCmd.Flags().Bool("libraries", false, "Also delete imported libraries")
}
