package chord

import (
	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/roots"
	"github.com/jsphweid/chordex/table"
	"github.com/jsphweid/chordex/util"
)

const (
	exactMatchFactor = 3.0
	maxDirectBase    = 0.95

	slashBonus          = 2.5
	symmetricSlashBonus = 4.0
	seventhFactor       = 4.0
	minorSeventhFactor  = 2.5
	rootEstimateWeight  = 0.1

	inversionBase = 8.0
)

var halfDiminished, _ = table.ByQuality("m7♭5")

func halfDiminishedLane(s *state) []model.Candidate {
	var res []model.Candidate
	for root := 0; root < 12; root++ {
		shape := halfDiminished.At(root)
		if !shape.IsSubsetOf(s.in.Mask) {
			continue
		}
		conf := 5.0
		if shape == s.in.Mask {
			conf *= 1.5
		}
		r := entryReading(s, halfDiminished, root, false)
		res = append(res, s.candidate(r, conf, model.InterpretHalfDiminished))
	}
	return res
}

type template struct {
	name      string
	intervals []int
	flags     model.Quality
}

var extendedTemplates = []template{
	{"13#11", []int{0, 4, 7, 10, 2, 6, 9}, model.Major | model.Seventh | model.Dominant | model.Extended},
	{"13♭9", []int{0, 4, 7, 10, 1, 9}, model.Major | model.Seventh | model.Dominant | model.Extended},
	{"11#9", []int{0, 3, 4, 7, 10, 5}, model.Major | model.Seventh | model.Dominant | model.Extended},
	{"7#11", []int{0, 4, 7, 10, 6}, model.Major | model.Seventh | model.Dominant | model.Extended},
	{"add2#4", []int{0, 2, 4, 6, 7}, model.Major | model.Extended},
	{"6/9", []int{0, 4, 7, 9, 2}, model.Major | model.Sixth | model.Extended},
}

func extendedLane(s *state) []model.Candidate {
	var res []model.Candidate
	for root := 0; root < 12; root++ {
		for _, t := range extendedTemplates {
			shape := mask.FromPitchClasses(t.intervals...).Transpose(root)
			shared := (shape & s.in.Mask).Count()
			if shared < 4 || shape.Count()-shared > 1 {
				continue
			}
			conf := float64(shared) / float64(shape.Count()) * 3
			if shape == s.in.Mask {
				conf *= 1.5
			}
			r := reading{
				name:  mask.NoteName(root) + t.name,
				root:  root,
				chord: shape,
				flags: t.flags,
			}
			res = append(res, s.candidate(r, conf, model.InterpretExtended))
		}
	}
	return res
}

// directLane reads the raw mask as a C-rooted table shape.
func directLane(s *state) []model.Candidate {
	e, ok := table.Lookup(s.in.Mask)
	if !ok {
		return nil
	}
	const root = 0

	factor := 1.0
	if s.in.Weights != nil {
		factor = util.Clamp(0.5+s.in.Weights.Coverage(e.Pattern), 0.5, 1.5)
	}
	conf := min(e.Confidence*factor, maxDirectBase)

	r := entryReading(s, e, root, true)
	if s.in.Key.IsSet() {
		conf *= s.in.Key.Boost(boostInput(s, r))
	}
	conf *= exactMatchFactor
	if e.Flags.Has(model.Seventh) {
		if s.in.Key.IsSet() {
			conf *= 2
		} else {
			conf *= 1.5
		}
	}
	if s.bass >= 0 {
		switch mask.PitchClass(s.bass - root) {
		case 3, 4:
			conf *= 2.5
		case 7:
			conf *= 2.0
		case 10, 11:
			conf *= 1.8
		}
	}
	interp := model.InterpretDirect
	if r.slashed {
		interp = model.InterpretSlash
	}
	return []model.Candidate{s.candidate(r, conf, interp)}
}

// qualityFactor applies the seventh and minor-seventh multipliers shared by
// the bass/root and inversion lanes.
func qualityFactor(flags model.Quality) float64 {
	f := 1.0
	if flags.Has(model.Seventh) {
		f *= seventhFactor
	}
	if flags.Has(model.MinorSeventh) {
		f *= minorSeventhFactor
	}
	return f
}

// bassRootLane reads the mask on every sounding root. A root other than the
// bass makes the reading a slash chord.
func bassRootLane(s *state) []model.Candidate {
	var res []model.Candidate
	for _, root := range s.in.Mask.PitchClasses() {
		// LookupAt keys on the asked-for root, so symmetric shapes that
		// match on several roots are read once per root
		e, ok := table.LookupAt(s.in.Mask, root)
		if !ok {
			continue
		}
		conf := e.Confidence
		r := entryReading(s, e, root, true)
		if r.slashed {
			if e.Flags.Has(model.Augmented) || e.Flags.Has(model.Diminished) {
				conf += symmetricSlashBonus
			} else {
				conf += slashBonus
			}
		}
		conf *= exactMatchFactor
		conf *= qualityFactor(e.Flags)
		conf *= 1 + roots.Confidence(s.roots, root)*rootEstimateWeight

		interp := model.InterpretDirect
		if r.slashed {
			interp = model.InterpretSlash
		}
		res = append(res, s.candidate(r, conf, interp))
	}
	return res
}

var inversionFactors = map[int]float64{
	3:  4.0, // minor third
	4:  4.0, // major third
	7:  3.5,
	10: 3.0,
	11: 3.0,
	5:  3.2, // sus4
}

func inversionLane(s *state) []model.Candidate {
	if s.bass < 0 {
		return nil
	}
	var res []model.Candidate
	for _, root := range s.in.Mask.PitchClasses() {
		if root == s.bass {
			continue
		}
		factor, ok := inversionFactors[mask.PitchClass(s.bass-root)]
		if !ok {
			continue
		}
		e, ok := table.LookupAt(s.in.Mask, root)
		if !ok {
			continue
		}
		conf := e.Confidence * inversionBase * factor * qualityFactor(e.Flags)
		r := entryReading(s, e, root, true)
		res = append(res, s.candidate(r, conf, model.InterpretInversion))
	}
	return res
}

func boostInput(s *state, r reading) key.BoostInput {
	return key.BoostInput{
		Root:     r.root,
		Quality:  r.flags,
		Mask:     s.in.Mask,
		Bass:     s.bass,
		Slash:    r.slashed,
		Extended: len(r.exts) > 0 || r.flags.Has(model.Extended),
	}
}
