package cmd

import (
	"fmt"

	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/roots"
	"github.com/jsphweid/chordex/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [NOTE...]",
	Short: "Inspects the chord table",
	Long: `Without arguments, prints every chord table entry. With notes, prints how
the pitch class set is seen by the root estimator and the table.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			inspectTable()
			return
		}
		cobra.CheckErr(inspectNotes(args))
	},
}

func inspectTable() {
	for _, e := range table.Entries() {
		fmt.Printf("%-8s %-28v %.2f  %v\n", "C"+e.Quality, e.Pattern, e.Confidence, e.Flags)
	}
	fmt.Printf("%d entries\n", table.Len())
}

func inspectNotes(args []string) error {
	var notes []uint8
	for _, arg := range args {
		note, err := mask.ParseNote(arg)
		if err != nil {
			return err
		}
		notes = append(notes, note)
	}
	m := mask.FromNotes(notes)
	low := notes[0]
	for _, n := range notes {
		low = min(low, n)
	}
	bass := mask.PitchClass(int(low))

	fmt.Printf("mask: %v\n", m)
	fmt.Printf("bass: %s\n", mask.NoteName(bass))
	fmt.Printf("estimated root: %s\n", mask.NoteName(roots.EstimateRoot(m, bass)))

	fmt.Println("root candidates:")
	for _, c := range roots.AllCandidates(m, bass) {
		fmt.Printf("  %-3s %.3f  %v\n", mask.NoteName(c.Root), c.Confidence, c.Reasons)
	}

	fmt.Println("table hits:")
	for _, root := range m.PitchClasses() {
		if e, ok := table.LookupAt(m, root); ok {
			fmt.Printf("  %-8s %.2f\n", e.Name(root), e.Confidence)
		}
	}
	if eq, ok := table.FindEquivalence(m); ok {
		name, _ := eq.Resolve(bass)
		fmt.Printf("equivalence: %s = %s, reads as %s\n", eq.LabelA, eq.LabelB, name)
	}
	return nil
}
