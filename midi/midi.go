package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/chordex/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrNoNotes = errors.New("no note events")

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = &blank, errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("reading midi file %s: %w", filepath, err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("parsing midi file %s: %w", filepath, err)
	}
	return res, nil
}

// ReadEvents flattens every track into note-on/off events with absolute
// offsets in microseconds. At equal offsets note-offs come first so a
// repeated note is released before it is struck again.
func ReadEvents(s *smf.SMF) ([]model.NoteEvent, error) {
	var events []model.NoteEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, model.NoteEvent{
					Offset:    s.TimeAt(absTicks),
					IsNoteOff: velocity == 0,
					Note:      key,
					Velocity:  velocity,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, model.NoteEvent{
					Offset:    s.TimeAt(absTicks),
					IsNoteOff: true,
					Note:      key,
				})
			}
		}
	}
	if len(events) == 0 {
		return nil, ErrNoNotes
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Offset != events[j].Offset {
			return events[i].Offset < events[j].Offset
		}
		return events[i].IsNoteOff && !events[j].IsNoteOff
	})
	return events, nil
}

// messageEvent converts a live message; ok is false for anything that is
// not a note.
func messageEvent(msg gomidi.Message) (model.NoteEvent, bool) {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		return model.NoteEvent{Note: key, Velocity: velocity}, true
	case msg.GetNoteEnd(&channel, &key):
		return model.NoteEvent{Note: key, IsNoteOff: true}, true
	default:
		return model.NoteEvent{}, false
	}
}
