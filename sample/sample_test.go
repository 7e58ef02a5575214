package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type noteAt struct {
	tick uint64
	key  uint8
	on   bool
}

func notes(track smf.Track) []noteAt {
	var res []noteAt
	var abs uint64
	for _, evt := range track {
		abs += uint64(evt.Delta)
		var ch, key, vel uint8
		switch {
		case evt.Message.GetNoteOn(&ch, &key, &vel):
			res = append(res, noteAt{abs, key, true})
		case evt.Message.GetNoteOff(&ch, &key, &vel):
			res = append(res, noteAt{abs, key, false})
		}
	}
	return res
}

func threeNotes() *smf.SMF {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 80))
	tr.Add(96, midi.NoteOff(0, 60))
	tr.Add(0, midi.NoteOn(0, 64, 80))
	tr.Add(96, midi.NoteOff(0, 64))
	tr.Add(0, midi.NoteOn(0, 67, 80))
	tr.Add(96, midi.NoteOff(0, 67))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(96)
	s.Add(tr)
	return s
}

func TestCreate(t *testing.T) {
	res := Create(threeNotes(), 96, 0)
	require.Len(t, res.Tracks, 1)
	assert.Equal(t, smf.MetricTicks(96), res.TimeFormat)

	assert.Equal(t, []noteAt{
		{0, 60, false},
		{0, 64, true},
		{96, 64, false},
		{96, 67, true},
		{192, 67, false},
	}, notes(res.Tracks[0]))
}

func TestCreateMaxNotes(t *testing.T) {
	res := Create(threeNotes(), 0, 3)
	require.Len(t, res.Tracks, 1)
	track := res.Tracks[0]

	assert.Equal(t, []noteAt{
		{0, 60, true},
		{96, 60, false},
		{96, 64, true},
	}, notes(track))
	// closed right after the last note
	assert.Len(t, track, 4)
}
