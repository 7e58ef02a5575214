package sample

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Create cuts an excerpt out of mf starting at ticksOffset. Non-note events
// before the offset (tempo, meter, program changes) are kept at tick 0; notes
// before it are dropped. With maxNotes > 0 each track is closed after that
// many note messages.
func Create(mf *smf.SMF, ticksOffset uint64, maxNotes int) *smf.SMF {
	res := smf.New()
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks, last uint64
		var numNoteOnOff int
	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			isNote := evt.Message.Is(midi.NoteOnMsg) || evt.Message.Is(midi.NoteOffMsg)

			var at uint64
			if absTicks >= ticksOffset {
				at = absTicks - ticksOffset
			} else if isNote {
				continue
			}
			evt.Delta = uint32(at - last)
			last = at
			newTrack = append(newTrack, evt)

			if isNote {
				numNoteOnOff++
				if maxNotes > 0 && numNoteOnOff >= maxNotes {
					newTrack.Close(0)
					break TrackEventLoop
				}
			}
		}

		res.Add(newTrack)
	}

	return res
}
