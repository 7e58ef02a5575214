package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsphweid/chordex/detector"
	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/logging"
	"github.com/jsphweid/chordex/midi"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/sample"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	analyzeKey      string
	analyzeAutoKey  bool
	analyzeJSON     bool
	analyzeStart    uint64
	analyzeMaxNotes int
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeKey, "key", "k", "", `key context, e.g. "G" or "E minor"`)
	analyzeCmd.Flags().BoolVar(&analyzeAutoKey, "auto-key", false, "estimate the key from the whole file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print JSON")
	analyzeCmd.Flags().Uint64Var(&analyzeStart, "start-tick", 0, "analyze from this tick on")
	analyzeCmd.Flags().IntVar(&analyzeMaxNotes, "max-notes", 0, "stop each track after this many note messages, 0 for all")
	analyzeCmd.MarkFlagsMutuallyExclusive("key", "auto-key")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Prints the chord changes of a MIDI file",
	Long:  `Replays a Standard MIDI File and prints every change of the best chord label.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(analyze(args[0]))
	},
}

func analyzeFile(path string, k key.Context, autoKey bool) ([]model.TimedChord, key.Context, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, k, err
	}
	if analyzeStart > 0 || analyzeMaxNotes > 0 {
		s = sample.Create(s, analyzeStart, analyzeMaxNotes)
	}
	events, err := midi.ReadEvents(s)
	if err != nil {
		return nil, k, fmt.Errorf("%s: %w", path, err)
	}
	if autoKey {
		var score float64
		k, score = key.Estimate(midi.PitchClassHistogram(events))
		logging.For("analyze").WithFields(logrus.Fields{
			"file":  path,
			"key":   k.String(),
			"score": score,
		}).Debug("estimated key")
	}

	d := detector.Default()
	d.SetKey(k)
	timeline, err := midi.Timeline(events, d)
	return timeline, k, err
}

func analyze(path string) error {
	k, err := key.Parse(analyzeKey)
	if err != nil {
		return err
	}
	timeline, k, err := analyzeFile(path, k, analyzeAutoKey)
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(timeline)
	}
	if k.IsSet() {
		fmt.Printf("key: %v\n", k)
	}
	for _, c := range timeline {
		fmt.Printf("%10.3fs  %-16s %6.3f\n", float64(c.Offset)/1e6, c.Name, c.Confidence)
	}
	return nil
}
