package chord

import (
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/table"
)

const maxSubsetExtra = 5

// subsetLane finds table shapes sitting strictly inside the mask; every
// note they leave unexplained costs a tenth.
func subsetLane(s *state) []model.Candidate {
	var res []model.Candidate
	for _, e := range table.Entries() {
		for root := 0; root < 12; root++ {
			shape := e.At(root)
			if !shape.IsStrictSubsetOf(s.in.Mask) {
				continue
			}
			extra := (s.in.Mask &^ shape).Count()
			if extra >= maxSubsetExtra {
				continue
			}
			conf := e.Confidence * (0.5 - 0.1*float64(extra))
			r := entryReading(s, e, root, false)
			res = append(res, s.candidate(r, conf, model.InterpretSubset))
		}
	}
	return res
}

// supersetLane finds table shapes one or two notes larger than the mask.
func supersetLane(s *state) []model.Candidate {
	var res []model.Candidate
	for _, e := range table.Entries() {
		for root := 0; root < 12; root++ {
			shape := e.At(root)
			if !s.in.Mask.IsStrictSubsetOf(shape) {
				continue
			}
			var factor float64
			switch (shape &^ s.in.Mask).Count() {
			case 1:
				factor = 0.6
			case 2:
				factor = 0.4
			default:
				continue
			}
			r := entryReading(s, e, root, false)
			res = append(res, s.candidate(r, e.Confidence*factor, model.InterpretSuperset))
		}
	}
	return res
}

func transpositionLane(s *state) []model.Candidate {
	if s.in.Mask.Count() < 3 {
		return nil
	}
	var res []model.Candidate
	for k := 1; k < 12; k++ {
		e, ok := table.Lookup(s.in.Mask.Rotate(k))
		if !ok {
			continue
		}
		r := entryReading(s, e, k, false)
		res = append(res, s.candidate(r, e.Confidence*0.5, model.InterpretTransposed))
	}
	return res
}

// identify reads a small set of pitch classes as a single table shape,
// trying each member as the root in ascending order.
func identify(m mask.Mask) (table.Entry, int, bool) {
	for _, root := range m.PitchClasses() {
		if e, ok := table.LookupAt(m, root); ok {
			return e, root, true
		}
	}
	return table.Entry{}, -1, false
}
