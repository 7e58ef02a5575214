package chord

import (
	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/roots"
	"github.com/jsphweid/chordex/velocity"
)

// Input is everything one detection call looks at.
type Input struct {
	Mask mask.Mask
	// pitch class of the lowest sounding note, -1 when unknown
	Bass    int
	Key     key.Context
	Weights *velocity.Weights

	SlashDetection bool
	SymmetricLane  bool
	// adds the ambiguous-equivalence reading
	Detailed bool
}

// NewInput returns an Input with slash detection and the symmetric lane on.
func NewInput(m mask.Mask, bass int) Input {
	return Input{
		Mask:           m,
		Bass:           bass,
		SlashDetection: true,
		SymmetricLane:  true,
	}
}

type state struct {
	in    Input
	bass  int
	roots []roots.Candidate
}

func newState(in Input) *state {
	s := &state{in: in, bass: -1}
	if in.SlashDetection && in.Bass >= 0 && in.Mask.Has(in.Bass) {
		s.bass = mask.PitchClass(in.Bass)
	}
	s.roots = roots.AllCandidates(in.Mask, s.bass)
	return s
}

type lane func(s *state) []model.Candidate

// standardLanes run in this order; later lanes only add names that are new
// or lift the confidence of ones already found.
var standardLanes = []lane{
	halfDiminishedLane,
	extendedLane,
	directLane,
	bassRootLane,
	inversionLane,
	subsetLane,
	supersetLane,
	transpositionLane,
	sixthDetector,
	susDetector,
	augmentedDetector,
	diminishedSeventhDetector,
	alteredDetector,
	diatonicLane,
	rootlessLane,
	polychordLane,
	equivalenceLane,
}

type laneKind int

const (
	laneStandard laneKind = iota
	laneSymmetric
)

func classify(in Input) laneKind {
	if in.SymmetricLane && isSymmetric(in.Mask) {
		return laneSymmetric
	}
	return laneStandard
}

// Generate ranks every reading of the input, best first. Confidences are
// normalized to sum to 10; an empty result means nothing was recognized.
func Generate(in Input) []model.Candidate {
	in.Mask &= mask.Full
	if in.Mask.IsEmpty() {
		return nil
	}
	s := newState(in)

	var res []model.Candidate
	switch classify(in) {
	case laneSymmetric:
		res = symmetricLane(s)
	default:
		for _, l := range standardLanes {
			res = merge(res, l(s))
		}
		rank(res, in.Key)
	}
	normalize(res)
	return res
}
