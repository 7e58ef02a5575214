package mask

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Mask is a set of pitch classes: bit i is set when pitch class i (0=C ... 11=B)
// is sounding.
type Mask uint16

const Full Mask = 0xFFF

var ErrUnknownNote = errors.New("unknown note name")

var noteNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

func FromPitchClasses(pcs ...int) Mask {
	var m Mask
	for _, pc := range pcs {
		m = m.Add(pc)
	}
	return m
}

// FromNotes reduces MIDI note numbers to their pitch classes.
func FromNotes(notes []uint8) Mask {
	var m Mask
	for _, n := range notes {
		m = m.Add(int(n))
	}
	return m
}

func PitchClass(n int) int {
	return ((n % 12) + 12) % 12
}

func (m Mask) Add(pc int) Mask {
	return m | 1<<PitchClass(pc)
}

func (m Mask) Remove(pc int) Mask {
	return m &^ (1 << PitchClass(pc))
}

func (m Mask) Has(pc int) bool {
	if pc < 0 {
		return false
	}
	return m&(1<<PitchClass(pc)) != 0
}

func (m Mask) Count() int {
	return bits.OnesCount16(uint16(m & Full))
}

func (m Mask) IsEmpty() bool {
	return m&Full == 0
}

// PitchClasses lists the members in ascending order.
func (m Mask) PitchClasses() []int {
	res := make([]int, 0, m.Count())
	for pc := 0; pc < 12; pc++ {
		if m.Has(pc) {
			res = append(res, pc)
		}
	}
	return res
}

// Lowest is the smallest member, or -1 for an empty mask.
func (m Mask) Lowest() int {
	if m.IsEmpty() {
		return -1
	}
	return bits.TrailingZeros16(uint16(m))
}

// Rotate re-expresses the mask relative to root: every member b moves to
// (b - root + 12) mod 12, so root lands on bit 0.
func (m Mask) Rotate(root int) Mask {
	r := PitchClass(root)
	if r == 0 {
		return m & Full
	}
	v := uint16(m & Full)
	return Mask((v>>r | v<<(12-r)) & uint16(Full))
}

// Transpose is the inverse of Rotate: bit b moves to (b + root) mod 12.
func (m Mask) Transpose(root int) Mask {
	return m.Rotate(12 - PitchClass(root))
}

func (m Mask) IsSubsetOf(other Mask) bool {
	return m&^other == 0
}

func (m Mask) IsStrictSubsetOf(other Mask) bool {
	return m != other && m.IsSubsetOf(other)
}

func (m Mask) Intersect(other Mask) Mask {
	return m & other
}

func (m Mask) String() string {
	names := make([]string, 0, m.Count())
	for _, pc := range m.PitchClasses() {
		names = append(names, noteNames[pc])
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Missing lists the pitch classes expected but not present in input.
func Missing(expected, input Mask) []int {
	return (expected &^ input).PitchClasses()
}

// Extra lists the pitch classes present in input but not expected.
func Extra(expected, input Mask) []int {
	return (input &^ expected).PitchClasses()
}

func NoteName(pc int) string {
	return noteNames[PitchClass(pc)]
}

var noteLetters = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParsePitchClass accepts names like "C", "f#", "Bb", "Db", "E♭".
func ParsePitchClass(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, s)
	}
	pc, ok := noteLetters[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, s)
	}
	for _, r := range s[1:] {
		switch r {
		case '#', '♯':
			pc++
		case 'b', '♭':
			pc--
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownNote, s)
		}
	}
	return PitchClass(pc), nil
}

// ParseNote parses either a MIDI note number ("60") or a scientific pitch
// name ("C4", "F#3", "Bb-1") into a MIDI note number.
func ParseNote(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("%w: %q out of range", ErrUnknownNote, s)
		}
		return uint8(n), nil
	}
	split := len(s)
	for i := 1; i < len(s); i++ {
		if s[i] == '-' || (s[i] >= '0' && s[i] <= '9') {
			split = i
			break
		}
	}
	if split == len(s) {
		return 0, fmt.Errorf("%w: %q has no octave", ErrUnknownNote, s)
	}
	if _, err := ParsePitchClass(s[:split]); err != nil {
		return 0, err
	}
	octave, err := strconv.Atoi(s[split:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, s)
	}
	// accidentals may cross the octave boundary (B#3 = C4), so count from the letter
	note := (octave+1)*12 + noteLetters[strings.ToUpper(s[:1])[0]]
	for _, r := range s[1:split] {
		switch r {
		case '#', '♯':
			note++
		case 'b', '♭':
			note--
		}
	}
	if note < 0 || note > 127 {
		return 0, fmt.Errorf("%w: %q out of range", ErrUnknownNote, s)
	}
	return uint8(note), nil
}
