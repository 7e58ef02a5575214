package midi

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordex/detector"
	"github.com/jsphweid/chordex/logging"
	"github.com/jsphweid/chordex/model"
	"github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// ChordFunc receives the best candidate after a burst of note events has
// settled. ok is false when nothing is recognized.
type ChordFunc func(best model.Candidate, ok bool, notes model.Notes)

// Listener feeds live MIDI into a detector. Detection waits until no note
// has arrived for the debounce delay, so a strummed chord is named once.
type Listener struct {
	mu        sync.Mutex
	det       *detector.Detector
	debounced func(f func())
	onChord   ChordFunc
	log       *logrus.Entry
}

func NewListener(det *detector.Detector, delay time.Duration, onChord ChordFunc) *Listener {
	return &Listener{
		det:       det,
		debounced: debounce.New(delay),
		onChord:   onChord,
		log:       logging.For("listener"),
	}
}

// Handle applies one message. Anything other than note on/off is ignored.
func (l *Listener) Handle(msg gomidi.Message) {
	evt, ok := messageEvent(msg)
	if !ok {
		return
	}

	l.mu.Lock()
	err := apply(l.det, evt)
	l.mu.Unlock()
	if err != nil {
		l.log.WithError(err).Warn("dropping note event")
		return
	}
	l.debounced(l.detect)
}

func (l *Listener) detect() {
	l.mu.Lock()
	best, ok := l.det.DetectBest()
	notes := l.det.ActiveNotes()
	l.mu.Unlock()
	l.onChord(best, ok, notes)
}

// Listen opens input port n and handles its messages until stop is called.
// A driver must be registered by the caller.
func (l *Listener) Listen(port int) (stop func(), err error) {
	in, err := gomidi.InPort(port)
	if err != nil {
		return nil, fmt.Errorf("opening midi in port %d: %w", port, err)
	}
	l.log.WithField("port", in.String()).Info("listening")

	stop, err = gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		l.Handle(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("listening to midi in port %d: %w", port, err)
	}
	return stop, nil
}
