package cmd

import (
	"fmt"

	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/file"
	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/logging"
	"github.com/jsphweid/chordex/midi"
	"github.com/jsphweid/chordex/util"
	"github.com/spf13/cobra"
)

var (
	reportMax     int
	reportTop     int
	reportAutoKey bool
)

func init() {
	reportCmd.Flags().IntVar(&reportMax, "max-files", 0, "stop after this many files, 0 for all")
	reportCmd.Flags().IntVar(&reportTop, "top", 20, "number of chord labels to print")
	reportCmd.Flags().BoolVar(&reportAutoKey, "auto-key", false, "estimate the key of each file")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [DIR]",
	Short: "Creates a report",
	Long: `Analyzes every MIDI file below DIR (or $MEDIA_PATH) and prints how often
each chord label occurs.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if reportTop < 0 {
			cobra.CheckErr(fmt.Errorf("--top must not be negative: %d", reportTop))
		}
		dir := constants.GetMediaDir()
		if len(args) == 1 {
			dir = args[0]
		}
		cobra.CheckErr(report(dir))
	},
}

type chordsReport struct {
	numFiles  int
	numFailed int
	changes   []int
	perFile   map[uint32]int
	counts    map[string]int
}

func analyzeAll(dir string) (chordsReport, map[uint32]string, error) {
	report := chordsReport{
		perFile: make(map[uint32]int),
		counts:  make(map[string]int),
	}
	paths, err := util.GatherAllMidiPaths(dir, reportMax)
	if err != nil {
		return report, nil, err
	}
	fileNumMap := file.CreateFileNumMap(paths)

	log := logging.For("report")
	for _, num := range util.GetKeys(fileNumMap) {
		path := fileNumMap[num]
		timeline, _, err := analyzeFile(path, key.None(), reportAutoKey)
		if err != nil {
			log.WithError(err).WithField("file", path).Warn("skipping file")
			report.numFailed++
			continue
		}
		report.numFiles++
		report.changes = append(report.changes, len(timeline))
		report.perFile[num] = len(timeline)
		for name, n := range midi.CountChords(timeline) {
			report.counts[name] += n
		}
	}
	return report, fileNumMap, nil
}

func report(dir string) error {
	report, fileNumMap, err := analyzeAll(dir)
	if err != nil {
		return err
	}

	fmt.Printf("files analyzed: %v\n", report.numFiles)
	fmt.Printf("files skipped: %v\n", report.numFailed)
	fmt.Printf("chord changes: %v\n", util.Sum(report.changes))
	fmt.Printf("distinct labels: %v\n", len(report.counts))

	fmt.Println("most common chords:")
	labels := util.GetKeysSortedByValue(report.counts)
	for _, name := range labels[:util.Min(reportTop, len(labels))] {
		fmt.Printf("  %-16s %v\n", name, report.counts[name])
	}

	fmt.Println("busiest files:")
	nums := util.GetKeysSortedByValue(report.perFile)
	for _, num := range nums[:util.Min(reportTop, len(nums))] {
		fmt.Printf("  %-6d %-40s %v\n", num, fileNumMap[num], report.perFile[num])
	}
	return nil
}
