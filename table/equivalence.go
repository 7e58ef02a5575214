package table

import (
	"github.com/jsphweid/chordex/mask"
)

// Equivalence is a four-note mask that is the exact table shape for two
// different chord names, e.g. C-E-G-A is both C6 and Am7.
type Equivalence struct {
	Mask   mask.Mask
	RootA  int
	LabelA string
	RootB  int
	LabelB string
}

var equivalences = []Equivalence{
	pair(0, "6", 9, "m7"),
	pair(5, "6", 2, "m7"),
	pair(7, "6", 4, "m7"),
	pair(2, "6", 11, "m7"),
	pair(10, "6", 7, "m7"),
	pair(3, "6", 0, "m7"),
	pair(0, "m6", 9, "m7♭5"),
}

func pair(rootA int, qualityA string, rootB int, qualityB string) Equivalence {
	a, okA := ByQuality(qualityA)
	b, okB := ByQuality(qualityB)
	if !okA || !okB || a.At(rootA) != b.At(rootB) {
		panic("inconsistent equivalence " + a.Name(rootA) + " / " + b.Name(rootB))
	}
	return Equivalence{
		Mask:   a.At(rootA),
		RootA:  rootA,
		LabelA: a.Name(rootA),
		RootB:  rootB,
		LabelB: b.Name(rootB),
	}
}

func Equivalences() []Equivalence {
	res := make([]Equivalence, len(equivalences))
	copy(res, equivalences)
	return res
}

func FindEquivalence(m mask.Mask) (Equivalence, bool) {
	for _, eq := range equivalences {
		if eq.Mask == m {
			return eq, true
		}
	}
	return Equivalence{}, false
}

// Resolve names the equivalence for a given bass: the reading whose root is
// the bass comes first, otherwise both readings are slashed over the bass.
func (eq Equivalence) Resolve(bass int) (name string, root int) {
	switch {
	case bass == eq.RootA:
		return eq.LabelA + " (=" + eq.LabelB + ")", eq.RootA
	case bass == eq.RootB:
		return eq.LabelB + " (=" + eq.LabelA + ")", eq.RootB
	case bass >= 0 && eq.Mask.Has(bass):
		slash := "/" + mask.NoteName(bass)
		return eq.LabelA + slash + " (=" + eq.LabelB + slash + ")", eq.RootA
	default:
		return eq.LabelA + " (=" + eq.LabelB + ")", eq.RootA
	}
}
