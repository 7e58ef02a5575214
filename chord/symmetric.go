package chord

import (
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/table"
)

var (
	augmented, _         = table.ByQuality("aug")
	diminishedSeventh, _ = table.ByQuality("dim7")

	// every transposition of an equal-interval shape is one of these
	augmentedMasks         = symmetricMasks(augmented, 4)
	diminishedSeventhMasks = symmetricMasks(diminishedSeventh, 3)
)

func symmetricMasks(e table.Entry, n int) []mask.Mask {
	res := make([]mask.Mask, n)
	for root := 0; root < n; root++ {
		res[root] = e.At(root)
	}
	return res
}

func containsMask(list []mask.Mask, m mask.Mask) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}

func isSymmetric(m mask.Mask) bool {
	return containsMask(augmentedMasks, m) || containsMask(diminishedSeventhMasks, m)
}

// symmetricLane names an augmented or diminished seventh chord after the
// member closest above the bass, the bass itself winning outright. It is the
// only reading such a mask gets.
func symmetricLane(s *state) []model.Candidate {
	e := augmented
	if containsMask(diminishedSeventhMasks, s.in.Mask) {
		e = diminishedSeventh
	}
	bass := s.bass
	if bass < 0 {
		bass = s.in.Mask.Lowest()
	}

	best, bestScore := -1, 0
	for _, root := range s.in.Mask.PitchClasses() {
		score := -mask.PitchClass(root - bass)
		if root == bass {
			score += 100
		}
		if best < 0 || score > bestScore {
			best, bestScore = root, score
		}
	}

	r := reading{
		name:  e.Name(best),
		root:  best,
		chord: e.At(best),
		flags: e.Flags,
	}
	if best != bass && s.bass >= 0 {
		r.slashed = true
		r.name += "/" + mask.NoteName(bass)
	}
	return []model.Candidate{s.candidate(r, float64(bestScore)*100, model.InterpretSymmetric)}
}
