package model

import (
	"fmt"

	"github.com/jsphweid/chordex/mask"
)

type Notes = []uint8

// Candidate is one interpretation of the sounding pitch classes.
type Candidate struct {
	Name            string         `json:"name"`
	Mask            mask.Mask      `json:"mask"`
	Confidence      float64        `json:"confidence"`
	Root            int            `json:"root"`
	Bass            int            `json:"bass"`
	IsInversion     bool           `json:"is_inversion"`
	InversionDegree int            `json:"inversion_degree"`
	Interpretation  Interpretation `json:"interpretation"`
	Quality         Quality        `json:"-"`
	MissingNotes    []int          `json:"missing_notes"`
	ExtraNotes      []int          `json:"extra_notes"`
	Extensions      []string       `json:"extensions,omitempty"`
	MatchScore      float64        `json:"match_score"`
}

// IsSlash reports whether the candidate is voiced over a bass other than its root.
func (c Candidate) IsSlash() bool {
	return c.Bass >= 0 && c.Bass != c.Root
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (%.3f)", c.Name, c.Confidence)
}

// TimedChord is a label change in a note stream, offset in microseconds.
type TimedChord struct {
	Offset     int64   `json:"offset"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Notes      []int   `json:"notes"`
}

// NoteEvent is a single note-on or note-off with its absolute offset.
type NoteEvent struct {
	Offset    int64
	IsNoteOff bool
	Note      uint8
	Velocity  uint8
}
