package midi

import (
	"github.com/jsphweid/chordex/detector"
	"github.com/jsphweid/chordex/model"
)

func apply(d *detector.Detector, evt model.NoteEvent) error {
	if evt.IsNoteOff {
		return d.NoteOff(int(evt.Note))
	}
	return d.NoteOn(int(evt.Note), int(evt.Velocity))
}

// Timeline replays sorted events through d and records a chord every time
// the best label changes. Events sharing an offset are applied together
// before detecting.
func Timeline(events []model.NoteEvent, d *detector.Detector) ([]model.TimedChord, error) {
	if len(events) == 0 {
		return nil, ErrNoNotes
	}

	var res []model.TimedChord
	var last string
	for i := 0; i < len(events); {
		offset := events[i].Offset
		for ; i < len(events) && events[i].Offset == offset; i++ {
			if err := apply(d, events[i]); err != nil {
				return res, err
			}
		}

		best, ok := d.DetectBest()
		if !ok {
			last = ""
			continue
		}
		if best.Name == last {
			continue
		}
		last = best.Name
		res = append(res, model.TimedChord{
			Offset:     offset,
			Name:       best.Name,
			Confidence: best.Confidence,
			Notes:      ints(d.ActiveNotes()),
		})
	}
	return res, nil
}

// CountChords tallies how often each label starts in a timeline.
func CountChords(timeline []model.TimedChord) map[string]int {
	res := make(map[string]int)
	for _, c := range timeline {
		res[c.Name]++
	}
	return res
}

func ints(notes model.Notes) []int {
	res := make([]int, len(notes))
	for i, n := range notes {
		res[i] = int(n)
	}
	return res
}

// PitchClassHistogram sums how long each pitch class sounds, in
// microseconds. Notes still held at the end are ignored.
func PitchClassHistogram(events []model.NoteEvent) [12]float64 {
	var res [12]float64
	started := make(map[uint8]int64)
	for _, evt := range events {
		if !evt.IsNoteOff {
			if _, ok := started[evt.Note]; !ok {
				started[evt.Note] = evt.Offset
			}
			continue
		}
		if start, ok := started[evt.Note]; ok {
			res[evt.Note%12] += float64(evt.Offset - start)
			delete(started, evt.Note)
		}
	}
	return res
}
