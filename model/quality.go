package model

import "strings"

// Quality carries structural facts about a chord quality so callers never
// have to search the display name.
type Quality uint16

const (
	Seventh      Quality = 1 << iota // any seventh degree, diminished seventh included
	MinorSeventh                     // minor third with minor seventh (m7, m7♭5, m9, m11), dim7 too
	Dominant                         // major third with minor seventh
	Augmented
	Diminished
	Suspended
	Sixth
	Extended // ninth or beyond is part of the quality
	Minor    // minor third
	Major    // major third
)

func (q Quality) Has(flag Quality) bool {
	return q&flag == flag
}

func (q Quality) String() string {
	var parts []string
	for _, f := range []struct {
		flag Quality
		name string
	}{
		{Major, "major"},
		{Minor, "minor"},
		{Seventh, "seventh"},
		{MinorSeventh, "minor-seventh"},
		{Dominant, "dominant"},
		{Augmented, "augmented"},
		{Diminished, "diminished"},
		{Suspended, "suspended"},
		{Sixth, "sixth"},
		{Extended, "extended"},
	} {
		if q.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// Interpretation tags which generator produced a candidate.
type Interpretation string

const (
	InterpretDirect         Interpretation = "direct"
	InterpretSlash          Interpretation = "slash"
	InterpretInversion      Interpretation = "inversion"
	InterpretSymmetric      Interpretation = "symmetric"
	InterpretHalfDiminished Interpretation = "half-diminished"
	InterpretExtended       Interpretation = "extended"
	InterpretSubset         Interpretation = "subset"
	InterpretSuperset       Interpretation = "superset"
	InterpretTransposed     Interpretation = "transposed"
	InterpretSixth          Interpretation = "sixth"
	InterpretSuspended      Interpretation = "suspended"
	InterpretAugmented      Interpretation = "augmented"
	InterpretDiminished7    Interpretation = "diminished-seventh"
	InterpretAltered        Interpretation = "altered"
	InterpretDiatonic       Interpretation = "diatonic"
	InterpretRootless       Interpretation = "rootless"
	InterpretPolychord      Interpretation = "polychord"
	InterpretAmbiguous      Interpretation = "ambiguous"
)
