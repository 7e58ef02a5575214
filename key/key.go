package key

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/chordex/mask"
)

var (
	ErrInvalidTonic = errors.New("tonic must be a pitch class 0-11")
	ErrUnknownKey   = errors.New("unknown key")
)

var (
	majorSteps = []int{0, 2, 4, 5, 7, 9, 11}
	minorSteps = []int{0, 2, 3, 5, 7, 8, 10}
)

// Context is an optional tonic and mode. The zero value is "no key".
// Values are immutable; the scale always matches tonic and mode.
type Context struct {
	tonic int
	minor bool
	scale mask.Mask
}

func None() Context {
	return Context{tonic: -1}
}

func New(tonic int, minor bool) (Context, error) {
	if tonic < 0 || tonic > 11 {
		return None(), fmt.Errorf("%w: %d", ErrInvalidTonic, tonic)
	}
	steps := majorSteps
	if minor {
		steps = minorSteps
	}
	var scale mask.Mask
	for _, s := range steps {
		scale = scale.Add(tonic + s)
	}
	return Context{tonic: tonic, minor: minor, scale: scale}, nil
}

// Parse accepts "C", "C major", "Cmaj", "A minor", "Am", "F#m", "Bb min"...
// An empty string or "none" clears the key.
func Parse(s string) (Context, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return None(), nil
	}
	name, minor := s, false
	lower := strings.ToLower(s)
	for _, suffix := range []struct {
		text  string
		minor bool
	}{{"minor", true}, {"major", false}, {"min", true}, {"maj", false}, {"m", true}} {
		if len(s) > len(suffix.text) && strings.HasSuffix(lower, suffix.text) {
			name = strings.TrimSpace(s[:len(s)-len(suffix.text)])
			minor = suffix.minor
			break
		}
	}
	pc, err := mask.ParsePitchClass(name)
	if err != nil {
		return None(), fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
	return New(pc, minor)
}

func (k Context) IsSet() bool {
	return k.scale != 0
}

func (k Context) Tonic() int {
	if !k.IsSet() {
		return -1
	}
	return k.tonic
}

func (k Context) IsMinor() bool {
	return k.minor
}

func (k Context) Scale() mask.Mask {
	return k.scale
}

func (k Context) String() string {
	if !k.IsSet() {
		return "none"
	}
	if k.minor {
		return mask.NoteName(k.tonic) + " minor"
	}
	return mask.NoteName(k.tonic) + " major"
}

// Interval is the distance in semitones from the tonic up to pc.
func (k Context) Interval(pc int) int {
	return mask.PitchClass(pc - k.tonic)
}

// Degree returns the pitch class of the scale step (0-based) above the tonic.
func (k Context) Degree(step int) int {
	steps := majorSteps
	if k.minor {
		steps = minorSteps
	}
	return mask.PitchClass(k.tonic + steps[step%7])
}

// Relevance is the share of m's pitch classes that are diatonic.
func (k Context) Relevance(m mask.Mask) float64 {
	if m.IsEmpty() || !k.IsSet() {
		return 0
	}
	return float64((m & k.scale).Count()) / float64(m.Count())
}

// DiatonicTriad builds the third and fifth above a scale tone by stacking
// scale steps. ok is false when root is not in the scale.
func (k Context) DiatonicTriad(root int) (third, fifth int, ok bool) {
	if !k.IsSet() || !k.scale.Has(root) {
		return 0, 0, false
	}
	for step := 0; step < 7; step++ {
		if k.Degree(step) == mask.PitchClass(root) {
			return k.Degree(step + 2), k.Degree(step + 4), true
		}
	}
	return 0, 0, false
}
