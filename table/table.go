package table

import (
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
)

// Entry is one root-normalized chord shape: the root is always bit 0 of Pattern.
type Entry struct {
	Pattern    mask.Mask
	Quality    string
	Confidence float64
	Flags      model.Quality
}

// Name labels the entry when rooted on pc.
func (e Entry) Name(root int) string {
	return mask.NoteName(root) + e.Quality
}

// At returns the pattern transposed so that its root sits on pc root.
func (e Entry) At(root int) mask.Mask {
	return e.Pattern.Transpose(root)
}

type shape struct {
	intervals  []int
	quality    string
	confidence float64
	flags      model.Quality
}

const (
	maj  = model.Major
	mnr  = model.Minor
	sev  = model.Seventh
	msev = model.MinorSeventh
	dom  = model.Dominant
	ext  = model.Extended
)

var shapes = []shape{
	{[]int{0, 4, 7}, "", 1.0, maj},
	{[]int{0, 3, 7}, "m", 1.0, mnr},
	{[]int{0, 3, 6}, "dim", 0.8, mnr | model.Diminished},
	{[]int{0, 4, 8}, "aug", 0.8, maj | model.Augmented},
	{[]int{0, 2, 7}, "sus2", 0.75, model.Suspended},
	{[]int{0, 5, 7}, "sus4", 0.75, model.Suspended},
	{[]int{0, 7}, "5", 0.6, 0},

	{[]int{0, 4, 7, 10}, "7", 0.95, maj | sev | dom},
	{[]int{0, 4, 7, 11}, "maj7", 0.95, maj | sev},
	{[]int{0, 3, 7, 10}, "m7", 0.95, mnr | sev | msev},
	{[]int{0, 3, 7, 11}, "mMaj7", 0.8, mnr | sev},
	{[]int{0, 3, 6, 9}, "dim7", 0.85, mnr | sev | msev | model.Diminished},
	{[]int{0, 3, 6, 10}, "m7♭5", 0.9, mnr | sev | msev},
	{[]int{0, 4, 6, 10}, "7♭5", 0.7, maj | sev | dom},
	{[]int{0, 4, 8, 10}, "7#5", 0.75, maj | sev | dom | model.Augmented},
	{[]int{0, 4, 8, 11}, "maj7#5", 0.7, maj | sev | model.Augmented},
	{[]int{0, 5, 7, 10}, "7sus4", 0.8, sev | model.Suspended},
	{[]int{0, 2, 7, 10}, "7sus2", 0.7, sev | model.Suspended},
	{[]int{0, 4, 7, 9}, "6", 0.9, maj | model.Sixth},
	{[]int{0, 3, 7, 9}, "m6", 0.85, mnr | model.Sixth},
	{[]int{0, 2, 4, 7}, "add9", 0.85, maj | ext},
	{[]int{0, 2, 3, 7}, "madd9", 0.8, mnr | ext},
	{[]int{0, 4, 5, 7}, "add11", 0.7, maj | ext},

	{[]int{0, 2, 4, 7, 10}, "9", 0.85, maj | sev | dom | ext},
	{[]int{0, 2, 4, 7, 11}, "maj9", 0.85, maj | sev | ext},
	{[]int{0, 2, 3, 7, 10}, "m9", 0.85, mnr | sev | msev | ext},
	{[]int{0, 2, 4, 7, 9}, "6/9", 0.8, maj | model.Sixth | ext},
	{[]int{0, 1, 4, 7, 10}, "7♭9", 0.75, maj | sev | dom | ext},
	{[]int{0, 3, 4, 7, 10}, "7#9", 0.75, maj | sev | dom | ext},
	{[]int{0, 4, 6, 7, 10}, "7#11", 0.7, maj | sev | dom | ext},
	{[]int{0, 2, 4, 5, 7, 10}, "11", 0.7, maj | sev | dom | ext},
	{[]int{0, 2, 3, 5, 7, 10}, "m11", 0.75, mnr | sev | msev | ext},
	{[]int{0, 2, 4, 7, 9, 10}, "13", 0.7, maj | sev | dom | ext},
}

var entries, byPattern, byQuality = build()

// build indexes the shapes; byPattern holds index+1 into entries, 0 meaning
// no entry.
func build() ([]Entry, [1 << 12]uint8, map[string]int) {
	var list []Entry
	var index [1 << 12]uint8
	names := make(map[string]int)
	for _, s := range shapes {
		e := Entry{
			Pattern:    mask.FromPitchClasses(s.intervals...),
			Quality:    s.quality,
			Confidence: s.confidence,
			Flags:      s.flags,
		}
		if index[e.Pattern] != 0 {
			panic("duplicate chord table pattern for quality " + s.quality)
		}
		list = append(list, e)
		index[e.Pattern] = uint8(len(list))
		names[e.Quality] = len(list) - 1
	}
	return list, index, names
}

// Lookup finds the entry whose root-normalized pattern equals m exactly.
func Lookup(m mask.Mask) (Entry, bool) {
	idx := byPattern[m&mask.Full]
	if idx == 0 {
		return Entry{}, false
	}
	return entries[idx-1], true
}

// LookupAt rotates m so that root sits on bit 0 and looks the result up.
// A root that is not sounding never matches.
func LookupAt(m mask.Mask, root int) (Entry, bool) {
	if !m.Has(root) {
		return Entry{}, false
	}
	return Lookup(m.Rotate(root))
}

func ByQuality(quality string) (Entry, bool) {
	idx, ok := byQuality[quality]
	if !ok {
		return Entry{}, false
	}
	return entries[idx], true
}

// Entries returns the table in its fixed order.
func Entries() []Entry {
	res := make([]Entry, len(entries))
	copy(res, entries)
	return res
}

func Len() int {
	return len(entries)
}
