package chord

import (
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/table"
)

// reading is one hypothesis about the sounding notes before it becomes a
// candidate: a shape placed on a root, maybe voiced over a named bass.
type reading struct {
	name    string
	root    int
	chord   mask.Mask // chord tones of the reading
	flags   model.Quality
	slashed bool
	exts    []string
}

func entryReading(s *state, e table.Entry, root int, slashed bool) reading {
	r := reading{
		name:    e.Name(root),
		root:    mask.PitchClass(root),
		chord:   e.At(root),
		flags:   e.Flags,
		slashed: slashed && s.bass >= 0 && s.bass != mask.PitchClass(root),
		exts:    AnalyzeExtensions(root, e, s.in.Mask),
	}
	if r.slashed {
		r.name += "/" + mask.NoteName(s.bass)
	}
	return r
}

func (s *state) candidate(r reading, confidence float64, interp model.Interpretation) model.Candidate {
	c := model.Candidate{
		Name:           r.name,
		Mask:           r.chord,
		Confidence:     confidence,
		Root:           r.root,
		Bass:           -1,
		Interpretation: interp,
		Quality:        r.flags,
		MissingNotes:   mask.Missing(r.chord, s.in.Mask),
		ExtraNotes:     mask.Extra(r.chord, s.in.Mask),
		Extensions:     r.exts,
		MatchScore:     matchScore(r.chord, s.in.Mask),
	}
	if s.bass >= 0 && (r.slashed || s.bass == r.root) {
		c.Bass = s.bass
		c.Mask = c.Mask.Add(s.bass)
	}
	if c.IsSlash() && r.chord.Has(c.Bass) {
		c.IsInversion = true
		c.InversionDegree = inversionDegree(mask.PitchClass(c.Bass - c.Root))
	}
	return c
}

// matchScore is the overlap of the reading and the input over their union.
func matchScore(chord, input mask.Mask) float64 {
	union := (chord | input).Count()
	if union == 0 {
		return 0
	}
	return float64((chord & input).Count()) / float64(union)
}

func inversionDegree(interval int) int {
	switch interval {
	case 3, 4:
		return 1
	case 6, 7, 8:
		return 2
	case 9, 10, 11:
		return 3
	default:
		return 0
	}
}

// AnalyzeExtensions names the notes of m that the shape e rooted on root
// does not account for. A shape with no third reports sus2/sus4 instead of
// add9/add11.
func AnalyzeExtensions(root int, e table.Entry, m mask.Mask) []string {
	rel := m.Rotate(root)
	extra := rel &^ e.Pattern
	if extra.IsEmpty() {
		return nil
	}
	has := func(i int) bool { return extra.Has(i) }
	hasSeventh := rel.Has(10) || rel.Has(11)
	thirdless := !rel.Has(3) && !rel.Has(4) && !e.Flags.Has(model.Suspended)

	var res []string
	if thirdless {
		switch {
		case has(2) && has(5):
			res = append(res, "sus2sus4")
		case has(2):
			res = append(res, "sus2")
		case has(5):
			res = append(res, "sus4")
		}
	} else {
		if has(2) {
			switch {
			case rel.Has(11):
				res = append(res, "maj9")
			case hasSeventh:
				res = append(res, "9")
			default:
				res = append(res, "add9")
			}
		}
		if has(5) {
			res = append(res, "add11")
		}
	}
	if has(9) && !e.Flags.Has(model.Sixth) {
		res = append(res, "add6")
	}
	if !e.Flags.Has(model.Seventh) {
		if has(10) {
			res = append(res, "add7")
		}
		if has(11) {
			res = append(res, "addMaj7")
		}
	}
	if has(8) {
		res = append(res, "#5")
	}
	if has(6) {
		res = append(res, "♭5")
	}
	if has(1) {
		res = append(res, "♭9")
	}
	if has(3) && rel.Has(4) {
		res = append(res, "#9")
	}
	return res
}
