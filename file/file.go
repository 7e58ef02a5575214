package file

import (
	"sort"

	"github.com/jsphweid/chordex/model"
)

// CreateFileNumMap numbers paths in sorted order so a directory always
// produces the same numbering.
func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	res := make(model.FileNumToMidiPath)
	for i, v := range sorted {
		res[model.FileNum(i)] = v
	}
	return res
}
