package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/chordex/detector"
	"github.com/jsphweid/chordex/logging"
	"github.com/jsphweid/chordex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func newDetector() *detector.Detector {
	return detector.Default(detector.WithLogger(logging.Discard()))
}

// C major for a quarter, then G/B for a quarter
func progression() *smf.SMF {
	clock := smf.MetricTicks(96)
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 80))
	tr.Add(0, gomidi.NoteOn(0, 64, 80))
	tr.Add(0, gomidi.NoteOn(0, 67, 80))
	tr.Add(clock.Ticks4th(), gomidi.NoteOff(0, 60))
	tr.Add(0, gomidi.NoteOff(0, 64))
	tr.Add(0, gomidi.NoteOn(0, 59, 80))
	tr.Add(0, gomidi.NoteOn(0, 62, 80))
	tr.Add(clock.Ticks4th(), gomidi.NoteOff(0, 59))
	tr.Add(0, gomidi.NoteOff(0, 62))
	tr.Add(0, gomidi.NoteOff(0, 67))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	s.Add(tr)
	return s
}

func TestReadEvents(t *testing.T) {
	events, err := ReadEvents(progression())
	require.NoError(t, err)
	require.Len(t, events, 10)

	assert := assert.New(t)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(events[i-1].Offset, events[i].Offset)
	}
	// the releases at the second beat sort ahead of the new notes
	assert.True(events[3].IsNoteOff)
	assert.True(events[4].IsNoteOff)
	assert.False(events[5].IsNoteOff)
	assert.Greater(events[3].Offset, int64(0))
	assert.Equal(uint8(80), events[0].Velocity)
}

func TestReadEventsEmpty(t *testing.T) {
	var tr smf.Track
	tr.Close(0)
	s := smf.New()
	s.Add(tr)
	_, err := ReadEvents(s)
	assert.ErrorIs(t, err, ErrNoNotes)
}

func TestReadMidiFile(t *testing.T) {
	var buf bytes.Buffer
	_, err := progression().WriteTo(&buf)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "progression.mid")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	s, err := ReadMidiFile(path)
	require.NoError(t, err)
	events, err := ReadEvents(s)
	require.NoError(t, err)
	assert.Len(t, events, 10)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTimeline(t *testing.T) {
	events := []model.NoteEvent{
		{Offset: 0, Note: 60, Velocity: 80},
		{Offset: 0, Note: 64, Velocity: 80},
		{Offset: 0, Note: 67, Velocity: 80},
		// same notes, new voicing of nothing: no new label
		{Offset: 100, Note: 72, Velocity: 80},
		{Offset: 200, IsNoteOff: true, Note: 60},
		{Offset: 200, IsNoteOff: true, Note: 64},
		{Offset: 200, IsNoteOff: true, Note: 72},
		{Offset: 200, Note: 59, Velocity: 80},
		{Offset: 200, Note: 62, Velocity: 80},
		{Offset: 300, IsNoteOff: true, Note: 59},
		{Offset: 300, IsNoteOff: true, Note: 62},
		{Offset: 300, IsNoteOff: true, Note: 67},
		{Offset: 400, Note: 59, Velocity: 80},
		{Offset: 400, Note: 62, Velocity: 80},
		{Offset: 400, Note: 67, Velocity: 80},
	}
	timeline, err := Timeline(events, newDetector())
	require.NoError(t, err)

	var labels []string
	for _, c := range timeline {
		labels = append(labels, c.Name)
	}
	assert.Equal(t, []string{"C", "G/B", "G/B"}, labels)
	assert.Equal(t, int64(200), timeline[1].Offset)
	assert.Equal(t, []int{59, 62, 67}, timeline[1].Notes)

	assert.Equal(t, map[string]int{"C": 1, "G/B": 2}, CountChords(timeline))

	_, err = Timeline(nil, newDetector())
	assert.ErrorIs(t, err, ErrNoNotes)
}

func TestPitchClassHistogram(t *testing.T) {
	events := []model.NoteEvent{
		{Offset: 0, Note: 60, Velocity: 80},
		{Offset: 0, Note: 72, Velocity: 80},
		{Offset: 100, IsNoteOff: true, Note: 72},
		{Offset: 200, IsNoteOff: true, Note: 60},
		{Offset: 200, Note: 67, Velocity: 80},
		// never released
		{Offset: 300, Note: 64, Velocity: 80},
		{Offset: 400, IsNoteOff: true, Note: 67},
	}
	h := PitchClassHistogram(events)
	assert.Equal(t, 300.0, h[0])
	assert.Equal(t, 200.0, h[7])
	assert.Equal(t, 0.0, h[4])
}

func TestMessageEvent(t *testing.T) {
	evt, ok := messageEvent(gomidi.NoteOn(0, 60, 90))
	require.True(t, ok)
	assert.Equal(t, model.NoteEvent{Note: 60, Velocity: 90}, evt)

	evt, ok = messageEvent(gomidi.NoteOff(0, 60))
	require.True(t, ok)
	assert.True(t, evt.IsNoteOff)

	// note on with zero velocity is a release
	evt, ok = messageEvent(gomidi.NoteOn(0, 60, 0))
	require.True(t, ok)
	assert.True(t, evt.IsNoteOff)

	_, ok = messageEvent(gomidi.ControlChange(0, 64, 127))
	assert.False(t, ok)
}

func TestListenerDebounces(t *testing.T) {
	var mu sync.Mutex
	var got []string
	l := NewListener(newDetector(), 10*time.Millisecond, func(best model.Candidate, ok bool, notes model.Notes) {
		mu.Lock()
		defer mu.Unlock()
		if ok {
			got = append(got, best.Name)
		}
	})
	l.log = logging.Discard()

	for _, note := range []uint8{60, 64, 67} {
		l.Handle(gomidi.NoteOn(0, note, 80))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"C"}, got)
	mu.Unlock()
}
