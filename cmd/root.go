package cmd

import (
	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/logging"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "chordex",
	Short: "Names chords from MIDI notes",
	Long: `chordex names the chord formed by a set of sounding MIDI notes, ranking
alternative readings with a confidence score. Notes can come from the command
line, a MIDI file, a live MIDI input or the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "log level (debug, info, warn, error)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
