package cmd

import (
	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/server"
	"github.com/jsphweid/chordex/velocity"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetListenAddr(), "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the HTTP API",
	Long:  `Serves stateless chord detection and per-session detectors over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := server.New(velocity.DefaultConfig())
		cobra.CheckErr(err)
		cobra.CheckErr(s.ListenAndServe(serveAddr))
	},
}
