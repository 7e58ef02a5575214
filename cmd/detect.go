package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/detector"
	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/spf13/cobra"
)

type detectOptions struct {
	key         string
	max         int
	detailed    bool
	noSlash     bool
	velocity    int
	insensitive bool
	json        bool
}

var detectOpts detectOptions

func init() {
	f := detectCmd.Flags()
	f.StringVarP(&detectOpts.key, "key", "k", "", `key context, e.g. "C" or "A minor"`)
	f.IntVarP(&detectOpts.max, "max", "n", constants.DefaultMaxCandidates, "maximum number of candidates, 0 for all")
	f.BoolVar(&detectOpts.detailed, "detailed", false, "include ambiguous equivalent readings")
	f.BoolVar(&detectOpts.noSlash, "no-slash", false, "disable slash chord naming")
	f.IntVar(&detectOpts.velocity, "velocity", 80, "velocity for every note")
	f.BoolVar(&detectOpts.insensitive, "no-velocity", false, "ignore velocity when filtering melody notes")
	f.BoolVar(&detectOpts.json, "json", false, "print JSON")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect NOTE...",
	Short: "Names the chord formed by the given notes",
	Long: `Names the chord formed by the given notes. Notes are MIDI numbers (60)
or scientific pitch names (C4, F#3, Bb2).`,
	Example: "  chordex detect C3 E4 G4 --key C\n  chordex detect 59 62 67 --json",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(detect(args, detectOpts))
	},
}

func detect(args []string, opts detectOptions) error {
	d := detector.Default()
	d.SetVelocitySensitive(!opts.insensitive)
	d.SetSlashChordDetection(!opts.noSlash)
	if opts.key != "" {
		k, err := key.Parse(opts.key)
		if err != nil {
			return err
		}
		d.SetKey(k)
	}
	for _, arg := range args {
		note, err := mask.ParseNote(arg)
		if err != nil {
			return err
		}
		if err := d.NoteOn(int(note), opts.velocity); err != nil {
			return err
		}
	}

	var res []model.Candidate
	if opts.detailed {
		res = d.DetectDetailed(opts.max)
	} else {
		res = d.DetectAlternatives(opts.max)
	}

	if opts.json {
		out := model.DetectResponse{Mask: d.CurrentMask().String(), Candidates: res}
		if len(res) > 0 {
			out.Best = &res[0]
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	if len(res) == 0 {
		fmt.Printf("no chord found for %v\n", d.CurrentMask())
		return nil
	}
	for i, c := range res {
		fmt.Printf("%d. %-16s %6.3f  %s\n", i+1, c.Name, c.Confidence, c.Interpretation)
	}
	return nil
}
