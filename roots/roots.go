package roots

import (
	"sort"

	"github.com/jsphweid/chordex/mask"
)

// Candidate is a pitch class scored as a possible chord root.
type Candidate struct {
	Root       int
	Confidence float64
	Reasons    []string
}

const (
	bassScore        = 10.0
	thirdFifthScore  = 8.0
	fifthScore       = 5.0
	thirdScore       = 3.0
	maxCommonBonus   = 3.0
	commonBonusTaper = 0.5
	numCommonRoots   = 6

	// bass + third and fifth + the largest common-root bonus
	maxScore = bassScore + thirdFifthScore + maxCommonBonus
)

// C, G, F, D, A, E, B, D♭, G♭, B♭, E♭, A♭
var frequencyOrder = [12]int{0, 7, 5, 2, 9, 4, 11, 1, 6, 10, 3, 8}

func hasThird(m mask.Mask, root int) bool {
	return m.Has(root+3) || m.Has(root+4)
}

func hasFifth(m mask.Mask, root int) bool {
	return m.Has(root + 7)
}

// EstimateRoot picks a single root: the bass when it is sounding, else the
// first pitch class carrying both a third and a fifth, else the most common
// root present. Returns -1 for an empty mask.
func EstimateRoot(m mask.Mask, bass int) int {
	if bass >= 0 && m.Has(bass) {
		return mask.PitchClass(bass)
	}
	for _, root := range m.PitchClasses() {
		if hasThird(m, root) && hasFifth(m, root) {
			return root
		}
	}
	for _, root := range frequencyOrder {
		if m.Has(root) {
			return root
		}
	}
	return -1
}

// AllCandidates scores every sounding pitch class as a root, best first.
// Confidence is the raw score divided by the highest attainable score.
func AllCandidates(m mask.Mask, bass int) []Candidate {
	var res []Candidate
	for _, root := range m.PitchClasses() {
		var score float64
		var reasons []string

		if bass >= 0 && root == mask.PitchClass(bass) {
			score += bassScore
			reasons = append(reasons, "bass")
		}
		third, fifth := hasThird(m, root), hasFifth(m, root)
		switch {
		case third && fifth:
			score += thirdFifthScore
			reasons = append(reasons, "third+fifth")
		case fifth:
			score += fifthScore
			reasons = append(reasons, "fifth")
		case third:
			score += thirdScore
			reasons = append(reasons, "third")
		}
		if bonus := commonBonus(root); bonus > 0 {
			score += bonus
			reasons = append(reasons, "common")
		}

		res = append(res, Candidate{Root: root, Confidence: score / maxScore, Reasons: reasons})
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Confidence > res[j].Confidence
	})
	return res
}

// Confidence looks up one root's score, zero when it is not a candidate.
func Confidence(candidates []Candidate, root int) float64 {
	for _, c := range candidates {
		if c.Root == root {
			return c.Confidence
		}
	}
	return 0
}

func commonBonus(root int) float64 {
	for i := 0; i < numCommonRoots; i++ {
		if frequencyOrder[i] == root {
			return maxCommonBonus - float64(i)*commonBonusTaper
		}
	}
	return 0
}
