package chord

import (
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/table"
)

var sixth, _ = table.ByQuality("6")

func sixthDetector(s *state) []model.Candidate {
	for root := 0; root < 12; root++ {
		if sixth.At(root) != s.in.Mask {
			continue
		}
		conf := 0.40
		if root == s.bass {
			conf = 1.45
		}
		r := entryReading(s, sixth, root, false)
		return []model.Candidate{s.candidate(r, conf, model.InterpretSixth)}
	}
	return nil
}

// each of these three-note masks is both a sus2 and a sus4 chord
var susPairs = []struct {
	mask     mask.Mask
	sus2Root int
	sus4Root int
}{
	{mask.FromPitchClasses(0, 2, 7), 0, 7},
	{mask.FromPitchClasses(2, 4, 9), 2, 9},
	{mask.FromPitchClasses(7, 9, 2), 7, 2},
}

var (
	sus2, _ = table.ByQuality("sus2")
	sus4, _ = table.ByQuality("sus4")
)

func susDetector(s *state) []model.Candidate {
	for _, p := range susPairs {
		if p.mask != s.in.Mask {
			continue
		}
		if s.bass == p.sus4Root {
			r := entryReading(s, sus4, p.sus4Root, false)
			return []model.Candidate{s.candidate(r, 0.6, model.InterpretSuspended)}
		}
		conf := 0.7
		if s.bass == p.sus2Root {
			conf = 1.8
		}
		r := entryReading(s, sus2, p.sus2Root, false)
		return []model.Candidate{s.candidate(r, conf, model.InterpretSuspended)}
	}
	return nil
}

// augmentedDetector and diminishedSeventhDetector only see their masks when
// the symmetric lane is switched off.
func augmentedDetector(s *state) []model.Candidate {
	if !containsMask(augmentedMasks, s.in.Mask) || s.bass < 0 {
		return nil
	}
	r := entryReading(s, augmented, s.bass, false)
	return []model.Candidate{s.candidate(r, 1.2, model.InterpretAugmented)}
}

func diminishedSeventhDetector(s *state) []model.Candidate {
	if !containsMask(diminishedSeventhMasks, s.in.Mask) || s.bass < 0 {
		return nil
	}
	r := entryReading(s, diminishedSeventh, s.bass, false)
	return []model.Candidate{s.candidate(r, 1.25, model.InterpretDiminished7)}
}

var alteredDominants = []template{
	{"7#5", []int{0, 4, 8, 10}, model.Major | model.Seventh | model.Dominant | model.Augmented},
	{"7♭9", []int{0, 1, 4, 7, 10}, model.Major | model.Seventh | model.Dominant | model.Extended},
	{"7#9", []int{0, 3, 4, 7, 10}, model.Major | model.Seventh | model.Dominant | model.Extended},
	{"7#5#9", []int{0, 3, 4, 8, 10}, model.Major | model.Seventh | model.Dominant | model.Augmented | model.Extended},
	{"7#5♭9", []int{0, 1, 4, 8, 10}, model.Major | model.Seventh | model.Dominant | model.Augmented | model.Extended},
}

var alteredTemplate = template{
	"7alt", []int{0, 4, 10, 1, 3, 6, 8}, model.Major | model.Seventh | model.Dominant | model.Extended,
}

func alteredDetector(s *state) []model.Candidate {
	var res []model.Candidate
	for _, root := range s.in.Mask.PitchClasses() {
		rel := s.in.Mask.Rotate(root)
		conf := 0.85
		if root == s.bass {
			conf = 1.2
		}

		matched := false
		for _, t := range alteredDominants {
			if mask.FromPitchClasses(t.intervals...) == rel {
				res = append(res, s.candidate(templateReading(t, root), conf, model.InterpretAltered))
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		alt := mask.FromPitchClasses(alteredTemplate.intervals...)
		if rel.IsSubsetOf(alt) && rel.Count() >= alt.Count()-1 {
			res = append(res, s.candidate(templateReading(alteredTemplate, root), conf, model.InterpretAltered))
		}
	}
	return res
}

func templateReading(t template, root int) reading {
	return reading{
		name:  mask.NoteName(root) + t.name,
		root:  root,
		chord: mask.FromPitchClasses(t.intervals...).Transpose(root),
		flags: t.flags,
	}
}

func equivalenceLane(s *state) []model.Candidate {
	if !s.in.Detailed {
		return nil
	}
	eq, ok := table.FindEquivalence(s.in.Mask)
	if !ok {
		return nil
	}
	name, root := eq.Resolve(s.bass)
	e, _ := table.LookupAt(eq.Mask, root)
	r := reading{
		name:    name,
		root:    root,
		chord:   eq.Mask,
		flags:   e.Flags,
		slashed: s.bass >= 0 && s.bass != root,
	}
	return []model.Candidate{s.candidate(r, 25.0, model.InterpretAmbiguous)}
}
