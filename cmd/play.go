package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:     "practice",
	Aliases: []string{"play"},
	Short:   "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _ := cmd.Flags().GetString("library")

		var mode session.Mode
		if m, _ := cmd.Flags().GetString("mode"); m != "" {
			parsed, err := session.ParseMode(m)
			if err != nil {
				return err
			}
			mode = parsed
		}

		return runApp(cmd, app.Options{Practice: true, Library: lib, Mode: mode})
	},
}

func init() {
	practiceCmd.Flags().StringP("library", "l", "", "Library to practice (default: all libraries, or WORDIZ_LIBRARY)")
	practiceCmd.Flags().StringP("mode", "m", "", "Interaction mode: follow, review or dictation (default: WORDIZ_MODE)")
}
