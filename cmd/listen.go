package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/detector"
	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/logging"
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/midi"
	"github.com/jsphweid/chordex/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	listenPort     int
	listenDebounce time.Duration
	listenKey      string
	listenPorts    bool
)

func init() {
	listenCmd.Flags().IntVarP(&listenPort, "port", "p", constants.GetMidiInPort(), "MIDI input port number")
	listenCmd.Flags().DurationVar(&listenDebounce, "debounce", constants.GetDebounce(), "quiet time before naming a chord")
	listenCmd.Flags().StringVarP(&listenKey, "key", "k", "", "key context")
	listenCmd.Flags().BoolVar(&listenPorts, "list", false, "list MIDI input ports and exit")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Names chords played on a MIDI input",
	Long:  `Listens to a MIDI input port and logs every chord played on it.`,
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(listen())
	},
}

func listen() error {
	defer gomidi.CloseDriver()
	log := logging.For("listen")

	if listenPorts {
		for i, in := range gomidi.GetInPorts() {
			log.Infof("%d: %s", i, in.String())
		}
		return nil
	}

	k, err := key.Parse(listenKey)
	if err != nil {
		return err
	}
	d := detector.Default()
	d.SetKey(k)

	last := ""
	l := midi.NewListener(d, listenDebounce, func(best model.Candidate, ok bool, notes model.Notes) {
		if !ok {
			last = ""
			return
		}
		if best.Name == last {
			return
		}
		last = best.Name
		log.WithFields(logrus.Fields{
			"chord":      best.Name,
			"confidence": best.Confidence,
			"mask":       mask.FromNotes(notes).String(),
		}).Info("chord")
	})

	stop, err := l.Listen(listenPort)
	if err != nil {
		return err
	}
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
