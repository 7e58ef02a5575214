package key

import (
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
)

// Function is a chord's harmonic role in the key.
type Function int

const (
	FunctionOther Function = iota
	FunctionTonic
	FunctionDominant
	FunctionSubdominant
	FunctionSecondary
	FunctionSecondaryDominant
)

func (f Function) String() string {
	switch f {
	case FunctionTonic:
		return "tonic"
	case FunctionDominant:
		return "dominant"
	case FunctionSubdominant:
		return "subdominant"
	case FunctionSecondary:
		return "secondary"
	case FunctionSecondaryDominant:
		return "secondary-dominant"
	default:
		return "other"
	}
}

// IsPrimary reports tonic, dominant and subdominant.
func (f Function) IsPrimary() bool {
	return f == FunctionTonic || f == FunctionDominant || f == FunctionSubdominant
}

var (
	majorDegrees = [12]string{"I", "bII", "ii", "bIII", "iii", "IV", "#IV", "V", "bVI", "vi", "bVII", "vii°"}
	minorDegrees = [12]string{"i", "bII", "ii°", "III", "#III", "iv", "#iv", "v", "VI", "#VI", "VII", "#vii°"}

	// keyed by interval from the tonic, any seventh chord in a major key
	secondaryDominants = map[int]string{
		0:  "V7/IV",
		2:  "V7/V",
		4:  "V7/vi",
		9:  "V7/ii",
		11: "V7/iii",
	}

	majorDegreeBonus = [12]float64{1.0, 0, 0.3, 0, 0.2, 0.8, 0, 0.9, 0, 0.4, 0, 0.1}
	minorDegreeBonus = [12]float64{1.0, 0, 0.1, 0.4, 0, 0.8, 0, 0.9, 0.4, 0, 0.3, 0}

	primaryBonus = map[Function]float64{
		FunctionTonic:       2.0,
		FunctionDominant:    1.5,
		FunctionSubdominant: 1.0,
	}

	// A-C-E heard as a C-rooted chord is a known misreading
	aceMask = mask.FromPitchClasses(9, 0, 4)
)

const (
	tonicInterval       = 0
	subdominantInterval = 5
	dominantInterval    = 7
)

func (k Context) secondaryDominant(root int, q model.Quality) (string, bool) {
	if k.minor || !q.Has(model.Seventh) {
		return "", false
	}
	label, ok := secondaryDominants[k.Interval(root)]
	return label, ok
}

// Roman labels a chord root relative to the key.
func (k Context) Roman(root int, q model.Quality) string {
	if !k.IsSet() {
		return ""
	}
	if label, ok := k.secondaryDominant(root, q); ok {
		return label
	}
	if k.minor {
		return minorDegrees[k.Interval(root)]
	}
	return majorDegrees[k.Interval(root)]
}

func (k Context) Function(root int, q model.Quality) Function {
	if !k.IsSet() {
		return FunctionOther
	}
	if _, ok := k.secondaryDominant(root, q); ok {
		return FunctionSecondaryDominant
	}
	switch k.Interval(root) {
	case tonicInterval:
		return FunctionTonic
	case dominantInterval:
		return FunctionDominant
	case subdominantInterval:
		return FunctionSubdominant
	}
	if k.scale.Has(root) {
		return FunctionSecondary
	}
	return FunctionOther
}

// isSupertonicOrLeading covers ii and vii (VII in minor).
func (k Context) isSupertonicOrLeading(interval int) bool {
	if k.minor {
		return interval == 2 || interval == 10
	}
	return interval == 2 || interval == 11
}

// isSecondaryDegree covers ii, iii and vi (ii, III and VI in minor).
func (k Context) isSecondaryDegree(interval int) bool {
	if k.minor {
		return interval == 2 || interval == 3 || interval == 8
	}
	return interval == 2 || interval == 4 || interval == 9
}

type BoostInput struct {
	Root    int
	Quality model.Quality
	Mask    mask.Mask
	Bass    int
	Slash   bool
	// the label carries add/9 extensions
	Extended bool
}

// Boost is the key-context multiplier for one reading of a chord. It is 1
// when no key is set.
func (k Context) Boost(in BoostInput) float64 {
	if !k.IsSet() {
		return 1
	}
	interval := k.Interval(in.Root)

	boost := 1.0
	if k.minor {
		boost += minorDegreeBonus[interval]
	} else {
		boost += majorDegreeBonus[interval]
	}

	ratio := k.Relevance(in.Mask)
	if ratio >= 0.8 {
		boost += 0.8
	} else if ratio >= 0.6 {
		boost += 0.4 * ratio
	}

	fn := k.Function(in.Root, in.Quality)
	switch {
	case fn.IsPrimary():
		if in.Mask == aceMask && mask.PitchClass(in.Root) == 0 {
			boost *= 0.1
		} else {
			boost += 1.2 + primaryBonus[fn]
		}
	case fn == FunctionSecondary:
		boost += 0.4
	}

	if in.Quality.Has(model.Seventh) {
		switch {
		case fn == FunctionDominant:
			boost += 1.8
		case fn == FunctionTonic:
			boost += 1.5
		case fn == FunctionSubdominant || k.isSupertonicOrLeading(interval):
			boost += 1.2
		case fn == FunctionSecondaryDominant:
			boost += 1.4
		}
	}

	if in.Slash && in.Bass >= 0 {
		boost *= k.slashMultiplier(in.Bass, in.Extended)
	}
	return boost
}

func (k Context) slashMultiplier(bass int, extended bool) float64 {
	m := 0.7
	if k.scale.Has(bass) {
		bassInterval := k.Interval(bass)
		switch {
		case bassInterval == tonicInterval || bassInterval == subdominantInterval || bassInterval == dominantInterval:
			m = 2.5
		case k.isSecondaryDegree(bassInterval):
			m = 2.2
		default:
			m = 2.0
		}
	}
	if extended {
		m *= 1.3
	}
	return m
}
