package cli

import (
	"github.com/spf13/cobra"

	"github.com/mahideveloper1/Video-editor-assignment/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subchat",
	Short: "Chat-driven subtitle editor for videos",
	Long: `Subchat is a video editing service driven by natural language.

Upload a video, then add and style subtitles through chat messages like
"Add 'Hello World' from 1:30 to 1:35 with red color". Silent stretches
can be detected and cut out, with subtitle timestamps remapped to match.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
